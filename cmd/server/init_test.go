package main

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezvirumon/user-billing-server/config"
)

func TestInitEvents_WithoutAMQPAndWithSMTP(t *testing.T) {
	cfg := testConfig()
	cfg.SMTP_Host = "smtp.example.com"
	cfg.SMTP_Port = 587
	cfg.SMTP_From = "billing@example.com"

	bus, pub := InitEvents(cfg)
	require.NotNil(t, bus)
	assert.Nil(t, pub)
	bus.Close()
}

func TestStartWorkers_DisabledLeavesGroupEmpty(t *testing.T) {
	var wg sync.WaitGroup
	err := StartWorkers(context.Background(), &wg, &config.Configuration{}, &Services{}, nil)
	require.NoError(t, err)
	wg.Wait()
}
