// Package workflowtest holds in-memory doubles for testing request kinds.
package workflowtest

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"time"

	"nova-hris/internal/activity"
	"nova-hris/internal/events"
	"nova-hris/internal/messaging/kafka"
	"nova-hris/internal/session"
	"nova-hris/internal/workflow"

	"gorm.io/gorm"
)

// MemoryRepository stores copies of E keyed by id. Writes made through a
// tx-bound copy are visible immediately; it does not model rollback.
type MemoryRepository[E any, P workflow.Record[E]] struct {
	mu        sync.Mutex
	items     map[string]E
	BoundTx   []*sql.Tx
	CreateErr error
	UpdateErr error
}

func NewMemoryRepository[E any, P workflow.Record[E]]() *MemoryRepository[E, P] {
	return &MemoryRepository[E, P]{items: map[string]E{}}
}

func (r *MemoryRepository[E, P]) WithTx(tx *sql.Tx) workflow.Repository[E] {
	r.mu.Lock()
	r.BoundTx = append(r.BoundTx, tx)
	r.mu.Unlock()
	return r
}

func (r *MemoryRepository[E, P]) Put(e E) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[P(&e).Env().ID] = e
}

func (r *MemoryRepository[E, P]) Stored(id string) (E, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	return e, ok
}

func (r *MemoryRepository[E, P]) Create(_ context.Context, e *E) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.Put(*e)
	return nil
}

func (r *MemoryRepository[E, P]) FindByID(_ context.Context, id string) (*E, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (r *MemoryRepository[E, P]) FindByIDForUpdate(ctx context.Context, id string) (*E, error) {
	return r.FindByID(ctx, id)
}

func (r *MemoryRepository[E, P]) Update(_ context.Context, e *E) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	r.Put(*e)
	return nil
}

func (r *MemoryRepository[E, P]) ListByUser(_ context.Context, userID string) ([]E, error) {
	return r.filter(func(env *workflow.Envelope) bool { return env.UserID == userID }), nil
}

func (r *MemoryRepository[E, P]) List(_ context.Context, status string) ([]E, error) {
	return r.filter(func(env *workflow.Envelope) bool { return status == "" || env.Status == status }), nil
}

func (r *MemoryRepository[E, P]) filter(keep func(*workflow.Envelope) bool) []E {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]E, 0, len(r.items))
	for _, e := range r.items {
		e := e
		if keep(P(&e).Env()) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return P(&out[i]).Env().ID > P(&out[j]).Env().ID
	})
	return out
}

// ActivityRecorder implements activity.Service and keeps every entry.
type ActivityRecorder struct {
	mu      sync.Mutex
	Entries []activity.Entry
	Tx      []*sql.Tx
	Err     error
}

func (a *ActivityRecorder) Record(_ context.Context, tx *sql.Tx, e activity.Entry) (activity.Activity, error) {
	if a.Err != nil {
		return activity.Activity{}, a.Err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Entries = append(a.Entries, e)
	a.Tx = append(a.Tx, tx)
	return activity.Activity{ID: "act-" + e.RequestID, UserID: e.UserID, Type: e.Type, Timestamp: e.At}, nil
}

func (a *ActivityRecorder) Feed(context.Context, session.Actor, int) ([]activity.ActivityResponse, error) {
	return nil, nil
}

func (a *ActivityRecorder) Mirror(context.Context, events.ActivitySnapshot) error {
	return nil
}

// OutboxRecorder implements kafka.OutboxRepository for write paths.
type OutboxRecorder struct {
	mu     sync.Mutex
	Events []kafka.OutboxEvent
	Err    error
}

func (o *OutboxRecorder) WithTx(*sql.Tx) kafka.OutboxRepository { return o }

func (o *OutboxRecorder) Create(_ context.Context, event kafka.OutboxEvent) error {
	if o.Err != nil {
		return o.Err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Events = append(o.Events, event)
	return nil
}

func (o *OutboxRecorder) ListPending(context.Context, time.Time, int) ([]kafka.OutboxEvent, error) {
	return nil, errors.New("workflowtest: ListPending not supported")
}

func (o *OutboxRecorder) MarkSent(context.Context, string, time.Time) error { return nil }

func (o *OutboxRecorder) MarkFailed(context.Context, string, string, time.Time) error { return nil }
