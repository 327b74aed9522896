package discord

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherRunsTasks(t *testing.T) {
	d := NewDispatcher()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	done := make(chan struct{})
	ok := d.Enqueue(func() { close(done) })
	require.True(t, ok)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task was not executed")
	}
}

func TestEnqueueNeverBlocksProducer(t *testing.T) {
	// No consumer running; fill the queue past capacity.
	d := NewDispatcher()

	accepted := 0
	for i := 0; i < defaultQueueSize*2; i++ {
		if d.Enqueue(func() {}) {
			accepted++
		}
	}

	// The buffer filled up and the surplus was dropped, without blocking.
	assert.Equal(t, defaultQueueSize, accepted)
}

func TestDispatcherStopsOnCancel(t *testing.T) {
	d := NewDispatcher()
	ctx, cancel := context.WithCancel(context.Background())

	stopped := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(stopped)
	}()

	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop")
	}
}
