package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrPoolClosed = errors.New("channel pool closed")

// ChannelPool shares a fixed number of channels over one broker
// connection. Every channel declares the durable queue it publishes to.
// A slot whose channel was lost holds nil and is reopened by the next Get,
// redialing the connection if the broker dropped it.
type ChannelPool struct {
	url   string
	queue string
	slots chan *amqp.Channel

	connMu sync.Mutex
	conn   *amqp.Connection
	dial   func(url string) (*amqp.Connection, error)

	mu     sync.Mutex
	closed bool
}

func NewChannelPool(url, queue string, size int) (*ChannelPool, error) {
	return newChannelPool(url, queue, size, amqp.Dial)
}

func newChannelPool(url, queue string, size int, dial func(string) (*amqp.Connection, error)) (*ChannelPool, error) {
	if size < 1 {
		size = 1
	}

	p := &ChannelPool{
		url:   url,
		queue: queue,
		slots: make(chan *amqp.Channel, size),
		dial:  dial,
	}

	for i := 0; i < size; i++ {
		ch, err := p.open()
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("opening channel %d: %w", i, err)
		}
		p.slots <- ch
	}

	return p, nil
}

// connection returns the live broker connection, dialing a new one when
// there is none or the broker closed it.
func (p *ChannelPool) connection() (*amqp.Connection, error) {
	p.connMu.Lock()
	defer p.connMu.Unlock()

	if p.conn != nil && !p.conn.IsClosed() {
		return p.conn, nil
	}

	conn, err := p.dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("connecting to broker: %w", err)
	}
	p.conn = conn
	return conn, nil
}

func (p *ChannelPool) open() (*amqp.Channel, error) {
	conn, err := p.connection()
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		p.queue,
		true,  // durable
		false, // auto delete
		false, // exclusive
		false, // no wait
		nil,
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("declaring queue %s: %w", p.queue, err)
	}

	return ch, nil
}

// Get waits for a free slot. An empty slot, or one whose channel the broker
// closed meanwhile, gets a fresh channel. When that fails the slot goes
// back to the pool so a later Get can retry.
func (p *ChannelPool) Get(ctx context.Context) (*amqp.Channel, error) {
	select {
	case ch, ok := <-p.slots:
		if !ok {
			return nil, ErrPoolClosed
		}
		if ch != nil && !ch.IsClosed() {
			return ch, nil
		}

		ch, err := p.open()
		if err != nil {
			p.release(nil)
			return nil, fmt.Errorf("reopening channel: %w", err)
		}
		return ch, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Put hands the slot taken by Get back. A closed channel frees its slot
// for a replacement instead of shrinking the pool.
func (p *ChannelPool) Put(ch *amqp.Channel) {
	if ch != nil && ch.IsClosed() {
		ch = nil
	}
	p.release(ch)
}

func (p *ChannelPool) release(ch *amqp.Channel) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		if ch != nil {
			ch.Close()
		}
		return
	}

	select {
	case p.slots <- ch:
	default:
		if ch != nil {
			ch.Close()
		}
	}
}

// Len is the number of slots waiting in the pool.
func (p *ChannelPool) Len() int { return len(p.slots) }

func (p *ChannelPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	close(p.slots)
	for ch := range p.slots {
		if ch != nil {
			ch.Close()
		}
	}

	p.connMu.Lock()
	defer p.connMu.Unlock()
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}
