package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/skillmatch/internal/application/service"
	"github.com/khoahotran/skillmatch/internal/domain/account"
	"github.com/khoahotran/skillmatch/pkg/logger"
)

func testConsumer() *ProfileEventConsumer {
	return &ProfileEventConsumer{logger: logger.NewNop(), maxTries: 3, initialBackoff: time.Millisecond}
}

func updatedMessage(t *testing.T) (service.ProfileEvent, []byte) {
	evt := service.ProfileEvent{
		EventType:  service.EventTypeProfileUpdated,
		AccountID:  uuid.New(),
		Role:       account.RoleFreelancer,
		OccurredAt: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC),
	}
	msg, err := encodeProfileEvent(evt)
	require.NoError(t, err)
	return evt, msg.Value
}

func TestConsumerProcess_RetriesUntilHandlerSucceeds(t *testing.T) {
	evt, value := updatedMessage(t)
	calls := 0

	err := testConsumer().process(context.Background(), kafkaMessage(string(value)), func(_ context.Context, got service.ProfileEvent) error {
		calls++
		assert.Equal(t, evt.AccountID, got.AccountID)
		if calls < 3 {
			return errors.New("redis unavailable")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestConsumerProcess_ExhaustedRetriesKeepMessageUncommitted(t *testing.T) {
	_, value := updatedMessage(t)
	failure := errors.New("redis unavailable")
	calls := 0

	err := testConsumer().process(context.Background(), kafkaMessage(string(value)), func(context.Context, service.ProfileEvent) error {
		calls++
		return failure
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, 3, calls)
}

func TestConsumerProcess_UndecodableIsSkipped(t *testing.T) {
	called := false

	err := testConsumer().process(context.Background(), kafkaMessage("not json"), func(context.Context, service.ProfileEvent) error {
		called = true
		return nil
	})

	assert.NoError(t, err)
	assert.False(t, called)
}
