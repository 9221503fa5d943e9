// Package progression is the progression and session state engine: streaks,
// auto-advancement, the day-keyed session ledger, workout templates and the
// active workout, the sync outbox and read-only analytics.
//
// A Tracker owns one *models.State. Every mutating operation runs under the
// tracker's mutex, works on the state in place and is rolled back when it
// fails or when the state cannot be persisted, so callers never observe a
// partial mutation.
package progression

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/misterclayt0n/warrior/internal/models"
)

// Store persists the state after each mutation.
type Store interface {
	Save(ctx context.Context, state *models.State) error
}

type Tracker struct {
	mu     sync.Mutex
	state  *models.State
	store  Store
	logger *slog.Logger
	now    func() time.Time
	loc    *time.Location
	newID  func() string
	notify func()
}

type Option func(*Tracker)

func WithStore(s Store) Option {
	return func(t *Tracker) { t.store = s }
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLocation sets the timezone used to derive today's calendar day.
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) { t.loc = loc }
}

func WithIDs(newID func() string) Option {
	return func(t *Tracker) { t.newID = newID }
}

// withNotify registers a callback fired after a mutation queued sync events.
// It must not block.
func withNotify(fn func()) Option {
	return func(t *Tracker) { t.notify = fn }
}

func New(state *models.State, opts ...Option) *Tracker {
	t := &Tracker{
		state:  state,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
		loc:    time.Local,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.state == nil {
		t.state = SeedState(t.Today(), t.newID)
	}
	return t
}

// Today is the current calendar day in the tracker's location.
func (t *Tracker) Today() string {
	return FormatDay(t.now().In(t.loc))
}

// Snapshot returns a deep copy of the current state.
func (t *Tracker) Snapshot() *models.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone()
}

// Replace swaps the whole state (import) and normalizes it.
func (t *Tracker) Replace(ctx context.Context, state *models.State) (NormalizeReport, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var report NormalizeReport
	err := t.mutate(ctx, func(st *models.State) error {
		*st = *state.Clone()
		report = NormalizeState(st, t.Today(), t.newID)
		return nil
	})
	if err == nil {
		report.log(t.logger)
	}
	return report, err
}

// mutate runs fn on the live state and persists it. On any error the state
// is restored to what it was before the call. Callers hold t.mu.
func (t *Tracker) mutate(ctx context.Context, fn func(st *models.State) error) error {
	backup := t.state.Clone()
	queued := len(t.state.SyncQueue)

	if err := fn(t.state); err != nil {
		*t.state = *backup
		return err
	}

	if t.store != nil {
		if err := t.store.Save(ctx, t.state); err != nil {
			*t.state = *backup
			return fmt.Errorf("Failed to save state: %w", err)
		}
	}

	if len(t.state.SyncQueue) > queued && t.notify != nil {
		t.notify()
	}
	return nil
}

// FindMachine resolves a machine by id or, case-insensitively, by name.
func (t *Tracker) FindMachine(ref string) (models.Machine, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if m := t.state.Machine(ref); m != nil {
		return *m, nil
	}
	for _, m := range t.state.Machines {
		if strings.EqualFold(m.Name, ref) {
			return m, nil
		}
	}
	return models.Machine{}, NotFoundError("machine", ref)
}

// FindWorkout resolves a template by id or, case-insensitively, by name.
func (t *Tracker) FindWorkout(ref string) (models.WorkoutTemplate, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if w := t.state.Workout(ref); w != nil {
		return *w, nil
	}
	for _, w := range t.state.Workouts {
		if strings.EqualFold(w.Name, ref) {
			return w, nil
		}
	}
	return models.WorkoutTemplate{}, NotFoundError("workout", ref)
}

// Repository is a Store that can also load the persisted state.
type Repository interface {
	Store
	// Load returns found=false when nothing has been persisted yet.
	Load(ctx context.Context) (state *models.State, found bool, err error)
}

// Open hydrates a tracker from repo. A first run seeds the state; otherwise
// the loaded state is normalized. Either way the result is saved back when
// it differs from what was stored.
func Open(ctx context.Context, repo Repository, opts ...Option) (*Tracker, error) {
	st, found, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("Failed to load state: %w", err)
	}

	t := New(st, append(opts, WithStore(repo))...)
	if !found {
		t.logger.Info("seeding initial state")
		if err := repo.Save(ctx, t.state); err != nil {
			return nil, fmt.Errorf("Failed to save seed state: %w", err)
		}
		return t, nil
	}

	report := NormalizeState(t.state, t.Today(), t.newID)
	report.log(t.logger)
	if report.Changed() {
		if err := repo.Save(ctx, t.state); err != nil {
			return nil, fmt.Errorf("Failed to save normalized state: %w", err)
		}
	}
	return t, nil
}
