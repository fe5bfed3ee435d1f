package server

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xhttp "DashPull/pkg/http"
)

func TestRunContextLifecycle(t *testing.T) {
	srv := xhttp.NewServer(nil, xhttp.WithHost("127.0.0.1"), xhttp.WithPort(0))
	app := New(nil, srv)

	var order []string
	app.AddResource("first", func() error { order = append(order, "first"); return nil })
	app.AddResource("second", func() error { order = append(order, "second"); return errors.New("boom") })

	var stopped atomic.Bool
	started := make(chan struct{})
	app.AddTask("ticker", func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		stopped.Store(true)
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.RunContext(ctx) }()

	<-started
	cancel()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.True(t, stopped.Load())
	assert.Equal(t, []string{"second", "first"}, order)
}
