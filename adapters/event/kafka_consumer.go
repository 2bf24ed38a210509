package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/skillmatch/internal/application/service"
	"github.com/khoahotran/skillmatch/internal/config"
	"github.com/khoahotran/skillmatch/pkg/logger"
)

const (
	handleMaxTries       = 5
	handleInitialBackoff = 200 * time.Millisecond
	handleMaxBackoff     = 5 * time.Second
)

type ProfileEventHandler func(ctx context.Context, evt service.ProfileEvent) error

type ProfileEventConsumer struct {
	reader *kafka.Reader
	logger logger.Logger

	maxTries       uint
	initialBackoff time.Duration
}

func NewProfileEventConsumer(cfg config.Config, groupID string, log logger.Logger) *ProfileEventConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    TopicProfileEvents,
		GroupID:  groupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	return &ProfileEventConsumer{
		reader:         reader,
		logger:         log,
		maxTries:       handleMaxTries,
		initialBackoff: handleInitialBackoff,
	}
}

// Run blocks until ctx is done. Undecodable messages are committed and skipped.
// A failing handler is retried with backoff; once the tries run out Run returns
// the error with the message uncommitted. FetchMessage never rewinds, so only a
// new reader (a restarted worker) sees that message again.
func (c *ProfileEventConsumer) Run(ctx context.Context, handle ProfileEventHandler) error {
	c.logger.Info("Worker listening", zap.String("topic", TopicProfileEvents))
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			c.logger.Error("Failed to read message from Kafka", err)
			continue
		}

		if err := c.process(ctx, msg, handle); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		c.commit(ctx, msg)
	}
}

// process returns nil when msg may be committed.
func (c *ProfileEventConsumer) process(ctx context.Context, msg kafka.Message, handle ProfileEventHandler) error {
	evt, err := decodeProfileEvent(msg)
	if err != nil {
		c.logger.Warn("Skipping undecodable message", zap.String("key", string(msg.Key)), zap.Error(err))
		return nil
	}

	log := c.logger.With(zap.String("event_type", evt.EventType), zap.String("account_id", evt.AccountID.String()))

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialBackoff
	b.MaxInterval = handleMaxBackoff

	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, handle(ctx, evt)
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(c.maxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Warn("Profile event handler failed, retrying", zap.Duration("retry_in", next), zap.Error(err))
		}),
	)
	if err != nil {
		log.Error("Giving up on profile event", err, zap.Int("partition", msg.Partition), zap.Int64("offset", msg.Offset))
		return fmt.Errorf("handle profile event at partition %d offset %d: %w", msg.Partition, msg.Offset, err)
	}
	return nil
}

func (c *ProfileEventConsumer) commit(ctx context.Context, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.logger.Error("Failed to commit message", err)
	}
}

func (c *ProfileEventConsumer) Close() error {
	return c.reader.Close()
}
