package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

// Publisher forwards audit records to a durable RabbitMQ queue on the
// default exchange.
type Publisher struct {
	url   string
	queue string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(url, queue string) *Publisher {
	return &Publisher{
		url:   url,
		queue: queue,
	}
}

// Append publishes rec. A broken connection is dropped and redialled on the
// next call.
func (p *Publisher) Append(ctx context.Context, rec domain.AuditRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    rec.ID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err = ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		p.reset()
		return fmt.Errorf("ch.PublishWithContext -> %w", err)
	}

	return nil
}

func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("amqp.Dial -> %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("conn.Channel -> %w", err)
	}
	if _, err = ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("ch.QueueDeclare -> %w", err)
	}

	zap.L().Info("audit publisher connected", zap.String("queue", p.queue))
	p.conn, p.ch = conn, ch

	return ch, nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn, p.ch = nil, nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.reset()
	return nil
}
