package draft

import (
	"sync"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/pkg/errs"
)

// Draft holds a technician's in-progress, not-yet-persisted execution edits
// for one order: the service notes, the billable line-item ledger, and any
// staged (not yet uploaded) signature drawing.
//
// Ledger mutations are synchronous and local; every mutation recomputes the
// affected item's total and the draft's aggregate value, so no stale derived
// value can ever reach persistence. Persisting the draft is the auto-save
// scheduler's job, never the draft's own.
//
// Draft is safe for concurrent use: user edits, the debounce timer, and
// transition handlers may touch it from different goroutines.
type Draft struct {
	mu sync.Mutex

	orderID       kernel.UUID
	notes         string
	notesEditedAt time.Time
	items         []order.LineItem
	itemsEdited   bool

	// stagedSignature is the raw raster of an in-progress signature drawing.
	// Clearing it never affects an already-persisted signature.
	stagedSignature []byte

	dirty      bool
	lastEditAt time.Time
}

// NewDraft creates an empty draft for the given order.
func NewDraft(orderID kernel.UUID) *Draft {
	return &Draft{orderID: orderID}
}

// OrderID returns the order this draft belongs to.
func (d *Draft) OrderID() kernel.UUID {
	return d.orderID
}

// Seed hydrates the draft from persisted order state. It is used when a
// technician opens an order mid-session; seeding does not mark the draft
// dirty, since nothing has diverged from storage yet.
//
// Seeding is per-field and yields to edits: a draft published to the store
// can receive user writes before the backing read completes, and persisted
// state must never overwrite them. A field that has already been edited
// keeps its staged value.
func (d *Draft) Seed(notes string, items []order.LineItem) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.notesEditedAt.IsZero() {
		d.notes = notes
	}
	if !d.itemsEdited {
		d.items = append([]order.LineItem(nil), items...)
	}
}

// StageNotes overwrites the draft notes using last-write-wins by the
// timestamp of the user action, not by arrival order: a slow, late-arriving
// write carrying an older editedAt never clobbers a newer one.
//
// Returns true if the edit was applied.
func (d *Draft) StageNotes(notes string, editedAt time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if editedAt.Before(d.notesEditedAt) {
		return false
	}

	d.notes = notes
	d.notesEditedAt = editedAt
	d.markDirty()
	return true
}

// AddItem appends a line item to the ledger. When the incoming item
// references the same catalog source (same sourceID and kind) as an existing
// entry, the existing entry's quantity is bumped instead of duplicating the
// row, matching how technicians repeatedly tap an item in the selector.
func (d *Draft) AddItem(item order.LineItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if sourceID := item.SourceID(); sourceID != nil {
		for i, existing := range d.items {
			existingSource := existing.SourceID()
			if existingSource != nil && existingSource.IsEqual(*sourceID) && existing.Kind() == item.Kind() {
				merged, err := existing.WithQuantity(existing.Quantity() + item.Quantity())
				if err != nil {
					return err
				}
				d.items[i] = merged
				d.markItemsDirty()
				return nil
			}
		}
	}

	d.items = append(d.items, item)
	d.markItemsDirty()
	return nil
}

// UpdateQuantity changes the quantity of the identified item. A quantity of
// zero or below is defined as removal: quantities never go non-positive and
// persist.
func (d *Draft) UpdateQuantity(id kernel.UUID, quantity int) error {
	if quantity <= 0 {
		return d.Remove(id)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for i, item := range d.items {
		if item.ID().IsEqual(id) {
			updated, err := item.WithQuantity(quantity)
			if err != nil {
				return err
			}
			d.items[i] = updated
			d.markItemsDirty()
			return nil
		}
	}

	return errs.NewObjectNotFoundError("lineItem", id.String())
}

// UpdatePrice changes the unit price of the identified item.
func (d *Draft) UpdatePrice(id kernel.UUID, unitPrice float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, item := range d.items {
		if item.ID().IsEqual(id) {
			updated, err := item.WithUnitPrice(unitPrice)
			if err != nil {
				return err
			}
			d.items[i] = updated
			d.markItemsDirty()
			return nil
		}
	}

	return errs.NewObjectNotFoundError("lineItem", id.String())
}

// Remove deletes the identified item from the ledger.
func (d *Draft) Remove(id kernel.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, item := range d.items {
		if item.ID().IsEqual(id) {
			d.items = append(d.items[:i], d.items[i+1:]...)
			d.markItemsDirty()
			return nil
		}
	}

	return errs.NewObjectNotFoundError("lineItem", id.String())
}

// Notes returns the current draft notes.
func (d *Draft) Notes() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.notes
}

// Items returns a copy of the current ledger.
func (d *Draft) Items() []order.LineItem {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]order.LineItem(nil), d.items...)
}

// Value returns the ledger's aggregate value, recomputed from the items.
func (d *Draft) Value() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	return order.SumTotals(d.items)
}

// StageSignature stages the raw raster of an in-progress signature drawing.
func (d *Draft) StageSignature(raster []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stagedSignature = append([]byte(nil), raster...)
}

// StagedSignature returns the staged signature raster, or nil if none.
func (d *Draft) StagedSignature() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stagedSignature == nil {
		return nil
	}
	return append([]byte(nil), d.stagedSignature...)
}

// ClearSignature discards the staged drawing. Any already-persisted customer
// signature on the order is untouched.
func (d *Draft) ClearSignature() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stagedSignature = nil
}

// Dirty reports whether the draft has edits not yet flushed to persistence.
func (d *Draft) Dirty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.dirty
}

// LastEditAt returns when the draft was last mutated.
func (d *Draft) LastEditAt() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.lastEditAt
}

// Snapshot returns the notes and a copy of the items as one consistent view,
// for building a persistence payload.
func (d *Draft) Snapshot() (string, []order.LineItem) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.notes, append([]order.LineItem(nil), d.items...)
}

// MarkFlushed records that the current draft state has reached persistence.
// A Snapshot followed by a successful write followed by MarkFlushed may race
// with a new edit; the edit's markDirty runs under the same lock, so a dirty
// draft stays dirty until its latest state is actually written.
func (d *Draft) MarkFlushed(snapshotNotes string, snapshotItems []order.LineItem) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.notes != snapshotNotes || len(d.items) != len(snapshotItems) {
		return
	}
	for i := range d.items {
		if d.items[i] != snapshotItems[i] {
			return
		}
	}

	d.dirty = false
}

// markDirty must be called with the mutex held.
func (d *Draft) markDirty() {
	d.dirty = true
	d.lastEditAt = time.Now()
}

// markItemsDirty must be called with the mutex held.
func (d *Draft) markItemsDirty() {
	d.itemsEdited = true
	d.markDirty()
}
