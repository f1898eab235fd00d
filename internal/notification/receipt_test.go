package notification

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/gomail.v2"

	"github.com/rezvirumon/user-billing-server/internal/api/customer/models"
	"github.com/rezvirumon/user-billing-server/internal/events"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, m...)
	return f.err
}

func paidCustomer() models.Customer {
	paidAt := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)
	return models.Customer{
		ID:            primitive.NewObjectID(),
		Name:          "John Doe",
		Email:         "john@example.com",
		Bill:          100,
		Payments:      []models.Payment{{Amount: 100, Date: paidAt.AddDate(0, 0, -1)}, {Amount: 50, Date: paidAt, Receiver: "bob"}},
		Due:           0,
		LastPayDate:   &paidAt,
		PaymentStatus: models.PaymentStatusAdvanced,
	}
}

func TestBuildReceipt(t *testing.T) {
	m := &ReceiptMailer{from: "billing@example.com"}

	msg, err := m.BuildReceipt(paidCustomer())
	require.NoError(t, err)
	assert.Equal(t, []string{"billing@example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"john@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{ReceiptSubject}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Hello John Doe,")
	assert.Contains(t, buf.String(), "We received your payment of 50.00 on 2024-06-02.")
	assert.Contains(t, buf.String(), "Received by: bob")
	assert.Contains(t, buf.String(), "Status: Advanced")
}

func TestBuildReceipt_RequiresEmailAndPayment(t *testing.T) {
	m := &ReceiptMailer{from: "billing@example.com"}

	c := paidCustomer()
	c.Email = " "
	_, err := m.BuildReceipt(c)
	assert.Error(t, err)

	c = paidCustomer()
	c.Payments = nil
	_, err = m.BuildReceipt(c)
	assert.Error(t, err)
}

func TestHandler_SendsOnlyForPayments(t *testing.T) {
	sender := &fakeSender{}
	m := &ReceiptMailer{sender: sender, from: "billing@example.com"}

	bus := events.NewBus()
	bus.Subscribe(m.Handler())

	c := paidCustomer()
	bus.Emit(context.Background(), events.Event{Name: events.CustomerUpdated, DocumentID: c.ID.Hex(), Document: c})
	bus.Emit(context.Background(), events.Event{Name: events.PaymentAppended, DocumentID: c.ID.Hex(), Document: c})
	bus.Emit(context.Background(), events.Event{Name: events.PaymentAppended, DocumentID: "x", Document: "not a customer"})
	bus.Close()

	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"john@example.com"}, sender.sent[0].GetHeader("To"))
}

func TestHandler_SendFailureIsLogged(t *testing.T) {
	sender := &fakeSender{err: errors.New("535 authentication failed")}
	m := &ReceiptMailer{sender: sender, from: "billing@example.com"}

	assert.NotPanics(t, func() {
		m.Handler()(context.Background(), events.Event{Name: events.PaymentAppended, Document: paidCustomer()})
	})
	assert.Len(t, sender.sent, 1)
}

func TestNewReceiptMailer_UsesDialer(t *testing.T) {
	m := NewReceiptMailer(SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "u", Password: "p", From: "billing@example.com"})

	d, ok := m.sender.(*gomail.Dialer)
	require.True(t, ok)
	assert.Equal(t, "smtp.example.com", d.Host)
	assert.Equal(t, 587, d.Port)
	assert.Equal(t, "u", d.Username)
}
