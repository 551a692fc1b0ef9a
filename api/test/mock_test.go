package test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"sync"

	"github.com/carriereplus/storefront/events"
)

// mockRaster stands in for the browser and returns a blank bitmap.
type mockRaster struct {
	mu            sync.Mutex
	width, height int
	fail          bool
	calls         int
}

func (m *mockRaster) Rasterize(ctx context.Context, html []byte, selector string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.fail {
		return nil, errors.New("browser crashed")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, m.width, m.height))); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (m *mockRaster) setFail(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = fail
}

type mockPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (m *mockPublisher) Publish(ctx context.Context, e events.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}

func (m *mockPublisher) published() []events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]events.Event(nil), m.events...)
}
