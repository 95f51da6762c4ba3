package events

import (
	"context"
	"sync"

	"github.com/openwallet/market-sync/interfaces"
)

// subscriberBuffer bounds how many undelivered updates a subscriber may
// accumulate before new ones are dropped
const subscriberBuffer = 8

// ISubscription defines the contract for price update subscriptions
type ISubscription interface {
	// Chan returns a read-only channel for self-handling updates
	Chan() <-chan interfaces.PriceUpdate
	// Cancel unsubscribes and closes the channel. Safe for repeated calls
	Cancel()
	// Watch starts a goroutine that calls cb on each update.
	// When parentCtx finishes, the subscription is automatically cancelled.
	Watch(parentCtx context.Context, cb func(interfaces.PriceUpdate)) ISubscription
}

// ISubscriptionManager defines the contract for managing subscriptions
type ISubscriptionManager interface {
	// Subscribe creates a new subscription and returns it
	Subscribe() ISubscription
	// Unsubscribe removes a subscription by its channel
	Unsubscribe(ch chan interfaces.PriceUpdate)
	// Emit delivers the update to all subscribers without blocking:
	// a subscriber with a full buffer misses the update
	Emit(ctx context.Context, update interfaces.PriceUpdate)
}

type Subscription struct {
	ch     chan interfaces.PriceUpdate
	mgr    *SubscriptionManager
	cancel context.CancelFunc
	once   sync.Once
}

// Chan returns a read-only channel for self-handling updates.
func (s *Subscription) Chan() <-chan interfaces.PriceUpdate { return s.ch }

// Cancel unsubscribes and closes the channel. Safe for repeated calls.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		s.mgr.Unsubscribe(s.ch)
	})
}

// Watch starts a goroutine that calls cb on each update.
// When parentCtx finishes, the subscription is automatically cancelled.
func (s *Subscription) Watch(parentCtx context.Context, cb func(interfaces.PriceUpdate)) ISubscription {
	ctx, cancel := context.WithCancel(parentCtx)
	s.cancel = cancel

	go func(ctx context.Context) {
		defer s.Cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case update, ok := <-s.ch:
				if !ok {
					return
				}
				cb(update)
			}
		}
	}(ctx)

	return s
}

type SubscriptionManager struct {
	mu          sync.RWMutex
	subscribers map[chan interfaces.PriceUpdate]struct{}
}

func NewSubscriptionManager() *SubscriptionManager {
	return &SubscriptionManager{
		subscribers: make(map[chan interfaces.PriceUpdate]struct{}),
	}
}

func (m *SubscriptionManager) Subscribe() ISubscription {
	ch := make(chan interfaces.PriceUpdate, subscriberBuffer)

	m.mu.Lock()
	m.subscribers[ch] = struct{}{}
	m.mu.Unlock()

	return &Subscription{ch: ch, mgr: m}
}

func (m *SubscriptionManager) Unsubscribe(ch chan interfaces.PriceUpdate) {
	m.mu.Lock()
	if _, ok := m.subscribers[ch]; ok {
		delete(m.subscribers, ch)
		close(ch)
	}
	m.mu.Unlock()
}

// Emit delivers the update to all subscribers without blocking the caller.
func (m *SubscriptionManager) Emit(ctx context.Context, update interfaces.PriceUpdate) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for sub := range m.subscribers {
		select {
		case <-ctx.Done():
			// Stop delivering when the context is cancelled
			return
		case sub <- update:
			// Delivered
		default:
			// Subscriber buffer full, it misses this update
		}
	}
}

// Count returns the number of active subscribers
func (m *SubscriptionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscribers)
}
