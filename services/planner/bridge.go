package planner

import (
	"context"
	"sync"
	"time"

	"smartplates/models"
	"smartplates/utils"

	"go.uber.org/zap"
)

// SaveState is the save-status surfaced to the UI for one plan.
type SaveState string

const (
	SaveIdle   SaveState = "idle"
	SaveSaving SaveState = "saving"
	SaveSaved  SaveState = "saved"
	SaveError  SaveState = "error"
)

// Saver is the remote-store write boundary the bridge flushes to.
type Saver interface {
	Upsert(ctx context.Context, plan *models.MealPlan) error
}

// Bridge debounces plan writes to the remote store. Each plan has a single
// pending-write slot: a newer edit inside the debounce window replaces the
// queued snapshot and restarts the timer, so only the latest state of a
// plan ever reaches the remote store. Saves are optimistic: a failed
// write flips the status to error and leaves local state untouched; the
// next edit's save supersedes it.
type Bridge struct {
	saver       Saver
	debounce    time.Duration
	savedLinger time.Duration
	writeTO     time.Duration

	mu      sync.Mutex
	pending map[string]*pendingWrite
	status  map[string]SaveState
}

type pendingWrite struct {
	timer *time.Timer
	plan  *models.MealPlan
}

// NewBridge creates a bridge flushing to saver after the given debounce
// window.
func NewBridge(saver Saver, debounce time.Duration) *Bridge {
	if debounce <= 0 {
		debounce = 750 * time.Millisecond
	}
	return &Bridge{
		saver:       saver,
		debounce:    debounce,
		savedLinger: 3 * time.Second,
		writeTO:     10 * time.Second,
		pending:     make(map[string]*pendingWrite),
		status:      make(map[string]SaveState),
	}
}

// Save queues the plan for a debounced write. The plan is snapshotted
// immediately so edits made after this call (but before the flush of a
// later Save) cannot bleed into the queued state.
func (b *Bridge) Save(plan *models.MealPlan) {
	snapshot := plan.Clone()

	b.mu.Lock()
	defer b.mu.Unlock()

	if pw, ok := b.pending[plan.ID]; ok {
		// Cancel-and-replace: the older snapshot is superseded.
		pw.timer.Stop()
		pw.plan = snapshot
		pw.timer.Reset(b.debounce)
		return
	}
	pw := &pendingWrite{plan: snapshot}
	planID := plan.ID
	pw.timer = time.AfterFunc(b.debounce, func() { b.flush(planID) })
	b.pending[planID] = pw
}

// flush performs the remote write for whatever snapshot is pending.
func (b *Bridge) flush(planID string) {
	b.mu.Lock()
	pw, ok := b.pending[planID]
	if !ok {
		b.mu.Unlock()
		return
	}
	delete(b.pending, planID)
	snapshot := pw.plan
	b.status[planID] = SaveSaving
	b.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), b.writeTO)
	defer cancel()

	if err := b.saver.Upsert(ctx, snapshot); err != nil {
		utils.GetLogger().Warn("meal plan save failed",
			zap.String("planID", planID), zap.Error(err))
		b.setStatus(planID, SaveError)
		return
	}
	b.setStatus(planID, SaveSaved)

	// Saved reverts to idle after a short linger, unless the state moved
	// on in the meantime.
	time.AfterFunc(b.savedLinger, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.status[planID] == SaveSaved {
			b.status[planID] = SaveIdle
		}
	})
}

func (b *Bridge) setStatus(planID string, st SaveState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status[planID] = st
}

// Status reports the save state for a plan. Plans with no recorded status
// are idle.
func (b *Bridge) Status(planID string) SaveState {
	b.mu.Lock()
	defer b.mu.Unlock()
	if st, ok := b.status[planID]; ok {
		return st
	}
	return SaveIdle
}

// Flush writes any pending snapshot for the plan immediately, bypassing
// the debounce window. Used at shutdown so queued edits are not lost.
func (b *Bridge) Flush(planID string) {
	b.mu.Lock()
	pw, ok := b.pending[planID]
	if ok {
		pw.timer.Stop()
	}
	b.mu.Unlock()
	if ok {
		b.flush(planID)
	}
}

// FlushAll drains every pending write, for graceful shutdown.
func (b *Bridge) FlushAll() {
	b.mu.Lock()
	ids := make([]string, 0, len(b.pending))
	for id, pw := range b.pending {
		pw.timer.Stop()
		ids = append(ids, id)
	}
	b.mu.Unlock()
	for _, id := range ids {
		b.flush(id)
	}
}
