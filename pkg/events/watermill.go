// Package events provides the pub/sub EventBus built on Watermill.
//
// Two transports are available:
//   - in-process (NewEventBus): a Go channel fan-out. Every subscriber receives
//     every message; nothing survives a restart.
//   - PostgreSQL (NewSQLEventBus): Watermill's SQL transport on the storage
//     database. Subscribers share a consumer group, so processes writing to the
//     same database (the API and the CLI) feed a single notification stream.
//
// Handlers should be idempotent. On failure the bus retries up to 3 times with
// exponential backoff before giving up.
//
// OTel context propagation: trace context is injected into message metadata on Publish
// and extracted in Subscribe.
package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/ghuser/pricetrack/pkg/config"
	"github.com/ghuser/pricetrack/pkg/logger"
)

const (
	maxRetries      = 3
	shutdownTimeout = 30 * time.Second
	errBufferSize   = 100
)

var retryBaseDelay = time.Second

// Transport names reported by EventBus.Transport.
const (
	TransportChannel = "gochannel"
	TransportSQL     = "postgres"
)

// ErrClosed is returned by Publish, Subscribe and Ping once Close has been called.
var ErrClosed = errors.New("events: bus closed")

// EventBus publishes and consumes Watermill messages.
type EventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	transport  string
	db         *sql.DB // set for the SQL transport only; owned by the caller
	log        logger.Logger
	wg         sync.WaitGroup
	closed     atomic.Bool

	// nackOnFailure hands failed messages back to the transport for redelivery.
	// The channel transport redelivers a Nacked message immediately and forever,
	// so there a failed message is acked and reported instead.
	nackOnFailure bool
}

// NewEventBus returns an in-process bus. cfg.NotificationFeedSize bounds the
// per-subscriber output buffer.
func NewEventBus(cfg *config.Config, log logger.Logger) *EventBus {
	buffer := int64(cfg.NotificationFeedSize)
	if buffer <= 0 {
		buffer = 1
	}
	ch := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: buffer}, &slogAdapter{log: log})
	return &EventBus{
		publisher:  ch,
		subscriber: ch,
		transport:  TransportChannel,
		log:        log,
	}
}

// NewSQLEventBus returns a bus backed by Watermill's PostgreSQL schema on db.
// Schema tables are created automatically on first use. db stays open after
// Close.
//
// All processes sharing cfg.ServiceName share a ConsumerGroup, so each
// message is processed by exactly one subscriber.
func NewSQLEventBus(db *sql.DB, cfg *config.Config, log logger.Logger) (*EventBus, error) {
	wlog := &slogAdapter{log: log}

	pub, err := watermillsql.NewPublisher(
		db,
		watermillsql.PublisherConfig{
			SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
			AutoInitializeSchema: true,
		},
		wlog,
	)
	if err != nil {
		return nil, fmt.Errorf("events: new publisher: %w", err)
	}

	sub, err := watermillsql.NewSubscriber(
		db,
		watermillsql.SubscriberConfig{
			SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
			OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
			InitializeSchema: true,
			ConsumerGroup:    cfg.ServiceName + "-consumer",
		},
		wlog,
	)
	if err != nil {
		_ = pub.Close()
		return nil, fmt.Errorf("events: new subscriber: %w", err)
	}

	return &EventBus{
		publisher:     pub,
		subscriber:    sub,
		transport:     TransportSQL,
		db:            db,
		log:           log,
		nackOnFailure: true,
	}, nil
}

// Transport reports which transport backs the bus.
func (q *EventBus) Transport() string {
	return q.transport
}

// Publish sends one or more messages to the given topic.
// OTel trace context from ctx is injected into each message's metadata so
// the receiving subscriber can restore the trace and continue the span tree.
func (q *EventBus) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	if q.closed.Load() {
		return ErrClosed
	}
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for _, msg := range msgs {
		for k, v := range carrier {
			msg.Metadata.Set(k, v)
		}
	}
	if err := q.publisher.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe registers handler to process messages from topic asynchronously.
// The handler receives a context with the publisher's OTel trace restored from
// message metadata.
//
// Ack/Nack is managed by the bus:
//   - handler returns nil   → Ack
//   - handler returns error → retried up to 3× with exponential backoff (1s, 2s, 4s)
//   - all retries exhausted → error forwarded to the returned channel
//
// The returned error channel is buffered (capacity 100). Callers must drain it:
//
//	errCh, err := bus.Subscribe(ctx, topic, handler)
//	go func() { for err := range errCh { log.ErrorContext(ctx, "subscriber error", "error", err) } }()
//
// All in-flight handlers complete before Close() returns.
func (q *EventBus) Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error) {
	if q.closed.Load() {
		return nil, ErrClosed
	}
	ch, err := q.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}

	errCh := make(chan error, errBufferSize)
	propagator := otel.GetTextMapPropagator()

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		defer close(errCh)

		for msg := range ch {
			carrier := propagation.MapCarrier{}
			for k, v := range msg.Metadata {
				carrier[k] = v
			}
			msgCtx := propagator.Extract(ctx, carrier)

			err := retryWithBackoff(msgCtx, msg, handler, maxRetries, retryBaseDelay, q.log)
			if err == nil {
				msg.Ack()
				continue
			}
			if q.nackOnFailure {
				msg.Nack()
			} else {
				msg.Ack()
			}
			select {
			case errCh <- err:
			default:
				q.log.ErrorContext(msgCtx, "events: error channel full, dropping error",
					"error", err, "topic", topic)
			}
		}
	}()

	return errCh, nil
}

// retryWithBackoff calls handler up to maxRetries times with exponential backoff.
// Returns nil on first success; returns the last error after all retries exhaust.
func retryWithBackoff(
	ctx context.Context,
	msg *message.Message,
	handler func(context.Context, *message.Message) error,
	maxRetries int,
	baseDelay time.Duration,
	log logger.Logger,
) error {
	delay := baseDelay
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = handler(ctx, msg); err == nil {
			return nil
		}
		if attempt < maxRetries {
			log.WarnContext(ctx, "events: handler failed, retrying",
				"attempt", attempt,
				"max_retries", maxRetries,
				"next_delay", delay,
				"error", err,
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
	}
	return fmt.Errorf("events: handler failed after %d retries: %w", maxRetries, err)
}

// Ping reports whether the bus can still deliver messages.
func (q *EventBus) Ping(ctx context.Context) error {
	if q.closed.Load() {
		return ErrClosed
	}
	if q.db == nil {
		return nil
	}
	if err := q.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping db: %w", err)
	}
	return nil
}

// Close gracefully shuts down the EventBus.
// Shutdown order: stop subscriber → wait for in-flight handlers (30 s max) →
// close publisher. Calling Close more than once is a no-op.
func (q *EventBus) Close() error {
	if !q.closed.CompareAndSwap(false, true) {
		return nil
	}
	if err := q.subscriber.Close(); err != nil {
		return fmt.Errorf("events: close subscriber: %w", err)
	}

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	select {
	case <-done:
	case <-ctx.Done():
		q.log.Error("events: timed out waiting for in-flight handlers to complete")
	}

	if q.transport == TransportChannel {
		return nil // publisher and subscriber are the same GoChannel
	}
	if err := q.publisher.Close(); err != nil {
		return fmt.Errorf("events: close publisher: %w", err)
	}
	return nil
}

// slogAdapter bridges logger.Logger to watermill.LoggerAdapter.
type slogAdapter struct{ log logger.Logger }

func (a *slogAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.log.Error(msg, append(fieldsToArgs(fields), "error", err)...)
}
func (a *slogAdapter) Info(msg string, fields watermill.LogFields) {
	a.log.Info(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) Debug(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) Trace(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &slogAdapter{log: a.log.With(fieldsToArgs(fields)...)}
}

func fieldsToArgs(fields watermill.LogFields) []any {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}
