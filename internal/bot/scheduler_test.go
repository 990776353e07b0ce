package bot

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/edgard/recapbot/internal/bot/tasks"
	"github.com/edgard/recapbot/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduler_RunsEnabledTasks(t *testing.T) {
	req := require.New(t)
	var enabled, disabled atomic.Int32
	cfg := &config.SchedulerConfig{Tasks: map[string]config.TaskConfig{
		"every_second": {Enabled: true, Schedule: "* * * * * *"},
		"disabled":     {Enabled: false, Schedule: "* * * * * *"},
		"unregistered": {Enabled: true, Schedule: "* * * * * *"},
		"bad_schedule": {Enabled: true, Schedule: "not a cron"},
	}}
	taskMap := map[string]tasks.ScheduledTaskFunc{
		"every_second": func(context.Context) error { enabled.Add(1); return nil },
		"disabled":     func(context.Context) error { disabled.Add(1); return nil },
		"bad_schedule": func(context.Context) error { return nil },
	}

	s, err := NewScheduler(discardLogger(), cfg, taskMap)
	req.NoError(err)
	req.NoError(s.Start())
	req.Error(s.Start())

	req.Eventually(func() bool { return enabled.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	req.NoError(s.Stop())
	req.Zero(disabled.Load())
	req.NoError(s.Stop())
}

func TestScheduler_StopCancelsRunningTask(t *testing.T) {
	req := require.New(t)
	started := make(chan struct{}, 1)
	var cancelled atomic.Bool
	cfg := &config.SchedulerConfig{Tasks: map[string]config.TaskConfig{
		"slow": {Enabled: true, Schedule: "* * * * * *"},
	}}
	taskMap := map[string]tasks.ScheduledTaskFunc{
		"slow": func(ctx context.Context) error {
			select {
			case started <- struct{}{}:
			default:
			}
			<-ctx.Done()
			cancelled.Store(true)
			return ctx.Err()
		},
	}

	s, err := NewScheduler(discardLogger(), cfg, taskMap)
	req.NoError(err)
	req.NoError(s.Start())

	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("task never started")
	}
	req.NoError(s.Stop())
	req.True(cancelled.Load())
}

func TestScheduler_NoTasks(t *testing.T) {
	s, err := NewScheduler(discardLogger(), nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	require.NoError(t, s.Stop())
}
