package schedule

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEveryRunsImmediatelyAndRepeats(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var n atomic.Int32

	done := make(chan struct{})
	go func() {
		Every(ctx, 10*time.Millisecond, "test", nil, func(context.Context) error {
			if n.Add(1) == 3 {
				cancel()
			}
			return errors.New("keeps going")
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Every did not return after cancel")
	}
	assert.Equal(t, int32(3), n.Load())
}

func TestEveryStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var n atomic.Int32
	Every(ctx, time.Hour, "test", nil, func(context.Context) error {
		n.Add(1)
		return nil
	})
	assert.Equal(t, int32(1), n.Load(), "first run is unconditional")
}
