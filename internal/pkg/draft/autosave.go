package draft

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

// DefaultDebounce matches the 2s autosave tick of the submission wizard.
const DefaultDebounce = 2 * time.Second

// Writer is the sink for debounced draft writes. *Store implements it.
type Writer interface {
	Save(ctx context.Context, userID uint, d *Draft) error
}

type pendingSave struct {
	timer *time.Timer
	draft *Draft
}

// Autosaver coalesces rapid draft mutations into a single delayed write
// per user. Each mutation cancels the prior pending write and schedules a
// new one carrying the latest state (last-write-wins, no merge).
type Autosaver struct {
	mu      sync.Mutex
	writer  Writer
	delay   time.Duration
	pending map[uint]*pendingSave
}

// NewAutosaver creates an autosaver writing through w after delay.
func NewAutosaver(w Writer, delay time.Duration) *Autosaver {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Autosaver{
		writer:  w,
		delay:   delay,
		pending: make(map[uint]*pendingSave),
	}
}

// Schedule records the latest draft state and (re)starts the debounce
// timer for the user.
func (a *Autosaver) Schedule(userID uint, d *Draft) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if p, ok := a.pending[userID]; ok {
		p.timer.Stop()
		p.draft = d
		p.timer.Reset(a.delay)
		return
	}

	p := &pendingSave{draft: d}
	p.timer = time.AfterFunc(a.delay, func() {
		a.fire(userID)
	})
	a.pending[userID] = p
}

func (a *Autosaver) fire(userID uint) {
	a.mu.Lock()
	p, ok := a.pending[userID]
	if !ok {
		a.mu.Unlock()
		return
	}
	delete(a.pending, userID)
	d := p.draft
	a.mu.Unlock()

	if err := a.writer.Save(context.Background(), userID, d); err != nil {
		log.Errorf("draft autosave failed for user %d: %v", userID, err)
	}
}

// Flush writes any pending draft for the user immediately. Called on
// explicit submit so the stored draft matches what was submitted.
func (a *Autosaver) Flush(ctx context.Context, userID uint) error {
	a.mu.Lock()
	p, ok := a.pending[userID]
	if ok {
		p.timer.Stop()
		delete(a.pending, userID)
	}
	a.mu.Unlock()

	if !ok {
		return nil
	}
	return a.writer.Save(ctx, userID, p.draft)
}

// Cancel drops any pending write for the user without saving.
func (a *Autosaver) Cancel(userID uint) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if p, ok := a.pending[userID]; ok {
		p.timer.Stop()
		delete(a.pending, userID)
	}
}
