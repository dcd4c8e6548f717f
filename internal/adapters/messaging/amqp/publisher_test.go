package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func (m *mockChannel) Close() error {
	return m.Called().Error(0)
}

func TestPublishOperationCommitted(t *testing.T) {
	ch := new(mockChannel)
	p := &Publisher{ch: ch, exchange: "wallet.operations"}
	event := domain.OperationCommitted{
		Reference:      "t-1",
		Kind:           domain.OperationTransfer,
		TransactionID:  "tx-1",
		OwnerID:        "alice",
		SourceWalletID: "wa",
		TargetWalletID: "wb",
		Amount:         domain.NewMoney(4000, "USD"),
		CommittedAt:    time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	var published amqp091.Publishing
	ch.On("PublishWithContext", mock.Anything, "wallet.operations", "operation.transfer.committed", false, false, mock.Anything).
		Run(func(args mock.Arguments) { published = args.Get(5).(amqp091.Publishing) }).
		Return(nil).Once()

	require.NoError(t, p.PublishOperationCommitted(context.Background(), event))

	ch.AssertExpectations(t)
	assert.Equal(t, "t-1", published.MessageId)
	assert.Equal(t, amqp091.Persistent, published.DeliveryMode)
	var decoded domain.OperationCommitted
	require.NoError(t, json.Unmarshal(published.Body, &decoded))
	assert.Equal(t, event, decoded)
}

func TestPublishOperationCommitted_Error(t *testing.T) {
	ch := new(mockChannel)
	p := &Publisher{ch: ch, exchange: "wallet.operations"}
	ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, false, false, mock.Anything).
		Return(errors.New("channel closed"))

	err := p.PublishOperationCommitted(context.Background(), domain.OperationCommitted{Kind: domain.OperationDeposit})

	assert.ErrorContains(t, err, "publish message")
}

func TestRoutingKey(t *testing.T) {
	assert.Equal(t, "operation.bill_payment.committed", RoutingKey(domain.OperationBillPayment))
	assert.Equal(t, "operation.deposit.committed", RoutingKey(domain.OperationDeposit))
	assert.Equal(t, "operation.withdrawal.committed", RoutingKey(domain.OperationWithdrawal))
}
