// Package autosave debounces draft persistence.
//
// Every draft edit schedules a flush; edits arriving inside the quiet
// period push the flush forward, so a burst of ledger taps produces one
// database write carrying the final state instead of one write per tap.
// Transition handlers flush (or cancel) the pending write explicitly before
// their own transactional write, so an auto-save never lands after an
// eagerly written transition and resurrects stale state.
package autosave

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"fieldservice/internal/core/application/draft"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/ports"
)

// DefaultQuietPeriod is the debounce window applied when none is configured.
const DefaultQuietPeriod = time.Second

// Scheduler owns one debounce timer per order and performs the coalesced
// draft writes when a timer fires.
type Scheduler struct {
	mu     sync.Mutex
	timers map[kernel.UUID]*time.Timer

	// gens invalidates fired timer callbacks. Cancel bumps the order's
	// generation; a callback created under an older generation gives up
	// instead of writing, so stopping a timer that already fired still
	// suppresses its write.
	gens map[kernel.UUID]uint64

	// flights serializes writes per order. A write holds the order's flight
	// lock for the whole snapshot-to-commit span, so Cancel and Flush can
	// wait out a write that is already past the timer map.
	flights map[kernel.UUID]*sync.Mutex

	drafts     *draft.Store
	uowFactory ports.UnitOfWorkFactory
	quiet      time.Duration
	logger     *slog.Logger
}

// NewScheduler creates a scheduler flushing through the given unit of work
// factory. A non-positive quiet period falls back to DefaultQuietPeriod.
func NewScheduler(drafts *draft.Store, uowFactory ports.UnitOfWorkFactory,
	quiet time.Duration, logger *slog.Logger) *Scheduler {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}

	return &Scheduler{
		timers:     make(map[kernel.UUID]*time.Timer),
		gens:       make(map[kernel.UUID]uint64),
		flights:    make(map[kernel.UUID]*sync.Mutex),
		drafts:     drafts,
		uowFactory: uowFactory,
		quiet:      quiet,
		logger:     logger.With("component", "autosave"),
	}
}

// Schedule arms (or re-arms) the debounce timer for the given order. Each
// call pushes the pending flush to one quiet period from now.
func (s *Scheduler) Schedule(orderID kernel.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[orderID]; ok {
		timer.Reset(s.quiet)
		return
	}

	gen := s.gens[orderID]
	s.timers[orderID] = time.AfterFunc(s.quiet, func() {
		s.mu.Lock()
		delete(s.timers, orderID)
		s.mu.Unlock()

		if err := s.flush(context.Background(), orderID, gen); err != nil {
			s.logger.Error("auto-save flush failed",
				"orderID", orderID.String(), "error", err)
		}
	})
}

// Flush cancels any pending timer for the order and writes the draft now.
// It is the synchronous barrier used before a transition: when it returns
// nil, no stale auto-save for this order is still in flight or pending.
func (s *Scheduler) Flush(ctx context.Context, orderID kernel.UUID) error {
	gen := s.cancelTimer(orderID)
	return s.flush(ctx, orderID, gen)
}

// Cancel stops the pending write for the order without flushing. Used when
// the caller is about to persist the draft itself inside its own
// transaction.
//
// Cancel covers both halves of the race with the debounce timer: the
// generation bump makes a callback that fired but has not written yet give
// up, and waiting on the flight lock drains a write already in progress.
// When Cancel returns, no auto-save carrying an older draft snapshot can
// land after the caller's own write.
func (s *Scheduler) Cancel(orderID kernel.UUID) {
	s.cancelTimer(orderID)

	flight := s.flightLock(orderID)
	flight.Lock()
	flight.Unlock() //nolint:staticcheck //taking and releasing the lock waits out an in-flight write
}

// FlushStale writes every dirty draft whose last edit is older than the
// given age. It is the safety net run by the background job: a draft whose
// timer flush failed, or that was edited right before a crash of the flush
// path, still reaches storage eventually.
func (s *Scheduler) FlushStale(ctx context.Context, olderThan time.Duration) {
	cutoff := time.Now().Add(-olderThan)

	for _, d := range s.drafts.All() {
		if !d.Dirty() || d.LastEditAt().After(cutoff) {
			continue
		}

		if err := s.Flush(ctx, d.OrderID()); err != nil {
			s.logger.Error("stale draft flush failed",
				"orderID", d.OrderID().String(), "error", err)
		}
	}
}

// cancelTimer stops and forgets the order's timer and bumps the generation,
// invalidating any callback the old timer already fired. Returns the new
// generation.
func (s *Scheduler) cancelTimer(orderID kernel.UUID) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[orderID]; ok {
		timer.Stop()
		delete(s.timers, orderID)
	}

	s.gens[orderID]++
	return s.gens[orderID]
}

// flightLock returns the write lock for the order, creating it on first use.
func (s *Scheduler) flightLock(orderID kernel.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	flight, ok := s.flights[orderID]
	if !ok {
		flight = &sync.Mutex{}
		s.flights[orderID] = flight
	}
	return flight
}

func (s *Scheduler) flush(ctx context.Context, orderID kernel.UUID, gen uint64) error {
	flight := s.flightLock(orderID)
	flight.Lock()
	defer flight.Unlock()

	s.mu.Lock()
	cancelled := s.gens[orderID] != gen
	s.mu.Unlock()
	if cancelled {
		return nil
	}

	d, ok := s.drafts.Get(orderID)
	if !ok || !d.Dirty() {
		return nil
	}

	notes, items := d.Snapshot()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	if err := uow.OrderRepository().SaveExecutionDraft(ctx, orderID, notes, items); err != nil {
		_ = uow.Rollback(ctx)
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	d.MarkFlushed(notes, items)

	s.logger.Debug("draft flushed",
		"orderID", orderID.String(), "items", len(items))
	return nil
}
