package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/pathos-labs/pathos/backend/internal/core/domain"
)

// Subscribe delivers the current shared trail list to onUpdate and re-delivers
// it whenever the store changes. Deliveries are de-duplicated (unchanged id
// sequences are suppressed) and coalesced to at most one per interval, with a
// trailing delivery so the final state always reaches the consumer. The
// returned cancel stops the stream; no callback fires after cancel returns.
func (o *Orchestrator) Subscribe(onUpdate func([]domain.TrailPlan)) (cancel func()) {
	ctx, stop := context.WithCancel(context.Background())
	sub := &subscription{orch: o, onUpdate: onUpdate}
	go sub.run(ctx)

	return func() {
		stop()
		sub.mu.Lock()
		sub.closed = true
		sub.mu.Unlock()
	}
}

type subscription struct {
	orch     *Orchestrator
	onUpdate func([]domain.TrailPlan)

	mu      sync.Mutex
	closed  bool
	lastIDs []string
}

func (s *subscription) run(ctx context.Context) {
	changes := s.orch.repo.Watch(ctx)

	s.deliver(ctx)
	lastDelivery := time.Now()

	var pending *time.Timer
	var pendingCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if pending != nil {
				pending.Stop()
			}
			return

		case _, ok := <-changes:
			if !ok {
				return
			}
			if pendingCh != nil {
				// A delivery is already scheduled; this change rides along.
				continue
			}
			if wait := s.orch.coalesce - time.Since(lastDelivery); wait > 0 {
				pending = time.NewTimer(wait)
				pendingCh = pending.C
				continue
			}
			s.deliver(ctx)
			lastDelivery = time.Now()

		case <-pendingCh:
			pending = nil
			pendingCh = nil
			s.deliver(ctx)
			lastDelivery = time.Now()
		}
	}
}

// deliver loads the list and invokes the callback unless the ordered id
// sequence matches the previous delivery or the subscription is closed.
func (s *subscription) deliver(ctx context.Context) {
	plans, err := s.orch.ListTrails(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("WARN subscription: list trails: %v", err)
		}
		return
	}

	ids := make([]string, len(plans))
	for i, p := range plans {
		ids[i] = p.ID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if idsEqual(ids, s.lastIDs) && s.lastIDs != nil {
		return
	}
	s.lastIDs = ids
	s.onUpdate(plans)
}

func idsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
