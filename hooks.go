package assetmap

import (
	"sync"

	"github.com/agentstation/assetmap/pkg/errors"
	"github.com/agentstation/assetmap/pkg/inventory"
)

// Hook function types for run events
type (
	// RowHook is called with a row of the reconciled inventory
	RowHook func(row map[string]string)

	// DegradedHook is called when an optional source contributes nothing
	DegradedHook func(err *errors.SourceError)
)

// Hooks registers callbacks for run events.
type Hooks interface {
	// OnNewlyAdded registers a callback for each synthesized row
	OnNewlyAdded(fn RowHook)

	// OnRemoved registers a callback for each master row no source reported
	OnRemoved(fn RowHook)

	// OnDegraded registers a callback for each degraded source
	OnDegraded(fn DegradedHook)
}

// hooks manages event callbacks for a run
type hooks struct {
	mu           sync.RWMutex
	onNewlyAdded []RowHook
	onRemoved    []RowHook
	onDegraded   []DegradedHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnNewlyAdded registers a callback for each synthesized row
func (h *hooks) OnNewlyAdded(fn RowHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onNewlyAdded = append(h.onNewlyAdded, fn)
}

// OnRemoved registers a callback for each removed row
func (h *hooks) OnRemoved(fn RowHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRemoved = append(h.onRemoved, fn)
}

// OnDegraded registers a callback for each degraded source
func (h *hooks) OnDegraded(fn DegradedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onDegraded = append(h.onDegraded, fn)
}

func (h *hooks) triggerDegraded(err *errors.SourceError) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onDegraded {
		fn(err)
	}
}

// triggerRows walks the reconciled table and fires the row hooks by status
func (h *hooks) triggerRows(t *inventory.Table) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.onNewlyAdded) == 0 && len(h.onRemoved) == 0 {
		return
	}
	for i := 0; i < t.Len(); i++ {
		var fns []RowHook
		switch inventory.Status(t.Value(i, inventory.ColumnStatus)) {
		case inventory.StatusNewlyAdded:
			fns = h.onNewlyAdded
		case inventory.StatusRemoved:
			fns = h.onRemoved
		default:
			continue
		}
		row := t.Row(i)
		for _, fn := range fns {
			fn(row)
		}
	}
}
