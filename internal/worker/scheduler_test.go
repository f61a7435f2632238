package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"payment-hub/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestScheduler_RunsJobsUntilCancelled(t *testing.T) {
	var fast, failing atomic.Int32
	jobs := []Job{
		{Name: "fast", Interval: 5 * time.Millisecond, Run: func(context.Context, time.Time) (int, error) {
			fast.Add(1)
			return 1, nil
		}},
		{Name: "failing", Interval: 5 * time.Millisecond, Run: func(context.Context, time.Time) (int, error) {
			failing.Add(1)
			return 0, errors.New("boom")
		}},
		{Name: "disabled", Interval: 0, Run: func(context.Context, time.Time) (int, error) {
			t.Error("disabled job must not run")
			return 0, nil
		}},
	}

	s := NewSchedulerWithJobs(jobs, time.Second, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		return fast.Load() >= 3 && failing.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestScheduler_JobTimeout(t *testing.T) {
	deadlines := make(chan bool, 1)
	jobs := []Job{{Name: "slow", Interval: 5 * time.Millisecond, Run: func(ctx context.Context, _ time.Time) (int, error) {
		_, ok := ctx.Deadline()
		select {
		case deadlines <- ok:
		default:
		}
		<-ctx.Done()
		return 0, ctx.Err()
	}}}

	s := NewSchedulerWithJobs(jobs, 20*time.Millisecond, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx) //nolint:errcheck

	select {
	case ok := <-deadlines:
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("job never ran")
	}
}

func TestNewScheduler_WiresEngineJobs(t *testing.T) {
	ctrl := gomock.NewController(t)
	dispatcher := mocks.NewMockCallbackDispatcher(ctrl)
	relay := mocks.NewMockOutboxRelay(ctrl)

	dispatcher.EXPECT().FailExpired(gomock.Any(), gomock.Any()).Return(0, nil).MinTimes(1)
	dispatcher.EXPECT().ReconcileDue(gomock.Any(), gomock.Any()).Return(2, nil).MinTimes(1)
	relay.EXPECT().RelayOnce(gomock.Any(), 50).Return(1, nil).MinTimes(1)

	s := NewScheduler(dispatcher, relay, SchedulerSettings{
		FailExpiredInterval: 5 * time.Millisecond,
		ReconcileInterval:   5 * time.Millisecond,
		OutboxInterval:      5 * time.Millisecond,
		OutboxBatch:         50,
		JobTimeout:          time.Second,
	}, zerolog.Nop())
	require.Len(t, s.jobs, 3)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	require.NoError(t, s.Run(ctx))
}
