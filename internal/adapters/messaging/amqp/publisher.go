package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/wallet_ledger_app/internal/core/ports/services"
	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// RoutingKey returns the routing key an operation kind is published under,
// e.g. "operation.transfer.committed".
func RoutingKey(kind domain.OperationKind) string {
	switch kind {
	case domain.OperationTransfer:
		return "operation.transfer.committed"
	case domain.OperationBillPayment:
		return "operation.bill_payment.committed"
	case domain.OperationDeposit:
		return "operation.deposit.committed"
	default:
		return "operation.withdrawal.committed"
	}
}

// channel is the part of *amqp091.Channel the publisher needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher announces committed operations on a topic exchange.
type Publisher struct {
	conn     *amqp091.Connection
	mu       sync.Mutex
	ch       channel
	exchange string
}

// NewPublisher dials url and declares a durable topic exchange.
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

var _ portssvc.EventPublisher = (*Publisher)(nil)

// PublishOperationCommitted publishes event as a persistent JSON message. The message id is
// the operation reference so consumers can deduplicate.
func (p *Publisher) PublishOperationCommitted(ctx context.Context, event domain.OperationCommitted) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	key := RoutingKey(event.Kind)
	p.mu.Lock()
	err = p.ch.PublishWithContext(
		ctx,
		p.exchange, // exchange
		key,        // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    event.Reference,
			Timestamp:    event.CommittedAt,
			Body:         body,
		},
	)
	p.mu.Unlock()
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	slog.DebugContext(ctx, "Published operation event",
		"reference", event.Reference,
		"exchange", p.exchange,
		"routing_key", key)
	return nil
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
