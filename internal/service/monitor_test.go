package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"herptrack/internal/models"
)

// countingSchedule records evaluator invocations per sweep.
type countingSchedule struct {
	calls atomic.Int64
}

func (c *countingSchedule) EvaluateFeeding(ctx context.Context, petID string) (*models.FeedingSchedule, error) {
	c.calls.Add(1)
	return &models.FeedingSchedule{Risk: models.ScheduleOverdue, ShouldWarn: true}, nil
}
func (c *countingSchedule) EvaluateCalcium(ctx context.Context, petID string) (*models.CalciumSchedule, error) {
	c.calls.Add(1)
	return nil, nil
}
func (c *countingSchedule) EvaluateVitaminD3(ctx context.Context, petID string) (*models.VitaminD3Schedule, error) {
	c.calls.Add(1)
	return nil, nil
}

func TestMonitorRun_SweepsAndStopsOnCancel(t *testing.T) {
	pets := &stubPetRepo{all: []models.Pet{
		{ID: "p1", Name: "Ziggy"},
		{ID: "p2", Name: "Rex"},
	}}
	sched := &countingSchedule{}
	mon := NewMonitorService(pets, sched)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		mon.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	// Wait for at least one full sweep: 2 pets x 3 evaluators.
	deadline := time.After(2 * time.Second)
	for sched.calls.Load() < 6 {
		select {
		case <-deadline:
			t.Fatalf("no complete sweep observed; calls=%d", sched.calls.Load())
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
