package events

import (
	"context"
	"sync"

	"zipline/models"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange     EventType = "balance_change"
	EventTypeUserCreated       EventType = "user_created"
	EventTypeCartSubmitted     EventType = "cart_submitted"
	EventTypeWagerBatchDecided EventType = "wager_batch_decided"
	EventTypeWagerSettled      EventType = "wager_settled"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a coin balance change that occurred
type BalanceChangeEvent struct {
	UserID          int64
	OldBalance      int64
	NewBalance      int64
	TransactionType models.TransactionType
	ChangeAmount    int64
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// UserCreatedEvent represents a new user creation
type UserCreatedEvent struct {
	UserID        int64
	Username      string
	StartingCoins int64
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// CartSubmittedEvent represents a cart converted into pending wagers
type CartSubmittedEvent struct {
	UserID      int64
	WagerIDs    []int64
	TotalAmount int64
}

func (e CartSubmittedEvent) Type() EventType {
	return EventTypeCartSubmitted
}

// WagerBatchDecidedEvent represents an admin decision on a user's pending batch
type WagerBatchDecidedEvent struct {
	UserID      int64
	Decision    models.Decision
	WagerCount  int
	TotalAmount int64
}

func (e WagerBatchDecidedEvent) Type() EventType {
	return EventTypeWagerBatchDecided
}

// WagerSettledEvent represents an active wager reaching a terminal result
type WagerSettledEvent struct {
	WagerID int64
	UserID  int64
	Result  models.SettleResult
	Payout  int64
}

func (e WagerSettledEvent) Type() EventType {
	return EventTypeWagerSettled
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking the caller
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus holds pending events coupled to a unit of work and
// flushes them to the underlying bus only after a successful commit.
type TransactionalBus struct {
	real    *Bus
	pending []Event // stashed until Flush
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush is called after a successful DB commit
func (b *TransactionalBus) Flush(ctx context.Context) error {
	// Events are processed independently of the transaction lifecycle, so a
	// background context is used in case the request context has expired.
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard is called after a rollback to drop stashed events
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
