package service

import "sync"

const subscriberBuffer = 8

// Broadcaster fans a latest-state value out to any number of independent
// subscribers. Publishing never blocks: a subscriber that stops draining its
// channel loses intermediate values, which is acceptable because every
// stream the engine exposes is a "latest state" notification, not a
// guaranteed-delivery log.
type Broadcaster[T any] struct {
	mu     sync.Mutex
	subs   map[int]chan T
	nextID int
}

func NewBroadcaster[T any]() *Broadcaster[T] {
	return &Broadcaster[T]{subs: make(map[int]chan T)}
}

// Publish delivers v to every subscriber, dropping it for subscribers whose
// buffer is full.
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- v:
		default:
			// slow subscriber, value dropped
		}
	}
}

// Subscribe registers a new subscriber and returns its channel along with an
// unsubscribe func. The unsubscribe func closes the channel and is safe to
// call more than once.
func (b *Broadcaster[T]) Subscribe() (<-chan T, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan T, subscriberBuffer)
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}

	return ch, cancel
}
