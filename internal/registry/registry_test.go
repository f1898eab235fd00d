package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezvirumon/user-billing-server/internal/common"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry[int]()

	isNew, err := r.Register("customers", 1)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = r.Register("customers", 2)
	require.NoError(t, err)
	assert.False(t, isNew)

	v, ok := r.Get("customers")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, err = r.Register("", 3)
	assert.True(t, errors.Is(err, common.ErrRequiredField))
}

func TestRegistry_MustGet(t *testing.T) {
	r := NewRegistry[string]()
	_, err := r.MustGet("monthly_reports")
	assert.True(t, errors.Is(err, common.ErrNotFound))

	_, _ = r.Register("monthly_reports", "col")
	v, err := r.MustGet("monthly_reports")
	require.NoError(t, err)
	assert.Equal(t, "col", v)
}

func TestRegistry_NamesSorted(t *testing.T) {
	r := NewRegistry[int]()
	assert.Empty(t, r.Names())

	_, _ = r.Register("b", 1)
	_, _ = r.Register("a", 2)
	_, _ = r.Register("b", 3)
	assert.Equal(t, []string{"a", "b"}, r.Names())
}
