// Package background runs work that must outlive the request that
// started it, such as publishing an order event, and lets the server wait
// for it on shutdown.
package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/sirupsen/logrus"
)

type Background struct {
	wg  sync.WaitGroup
	log logrus.FieldLogger

	ctx    context.Context
	cancel context.CancelFunc
}

func New(log logrus.FieldLogger) *Background {
	ctx, cancel := context.WithCancel(context.Background())
	return &Background{log: log, ctx: ctx, cancel: cancel}
}

// Go runs fn in its own goroutine. fn receives a context that is only
// cancelled when Shutdown gives up waiting. A panic in fn is logged and
// does not bring the server down.
func (b *Background) Go(fn func(ctx context.Context)) {
	b.wg.Add(1)

	go func() {
		defer b.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				b.log.WithFields(logrus.Fields{
					"panic": fmt.Sprint(rec),
					"trace": string(debug.Stack()),
				}).Error("background task panicked")
			}
		}()

		fn(b.ctx)
	}()
}

// Shutdown waits for running tasks. When ctx expires first the tasks'
// context is cancelled and ctx's error is returned.
func (b *Background) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.cancel()
		return nil
	case <-ctx.Done():
		b.cancel()
		return ctx.Err()
	}
}
