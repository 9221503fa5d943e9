package progression

import (
	"context"
	"fmt"

	"github.com/misterclayt0n/warrior/internal/models"
)

// CreateWorkout adds a template. Machine ids are kept in the given order.
func (t *Tracker) CreateWorkout(ctx context.Context, name string, machineIDs []string) (models.WorkoutTemplate, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w := models.WorkoutTemplate{
		ID:         t.newID(),
		Name:       name,
		MachineIDs: append([]string{}, machineIDs...),
	}
	err := t.mutate(ctx, func(st *models.State) error {
		for _, id := range machineIDs {
			if st.Machine(id) == nil {
				return NotFoundError("machine", id)
			}
		}
		st.Workouts = append(st.Workouts, w)
		return nil
	})
	if err != nil {
		return models.WorkoutTemplate{}, err
	}
	return w, nil
}

func (t *Tracker) RenameWorkout(ctx context.Context, workoutID, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.mutate(ctx, func(st *models.State) error {
		w := st.Workout(workoutID)
		if w == nil {
			return NotFoundError("workout", workoutID)
		}
		w.Name = name
		return nil
	})
}

// AssignMachines replaces the machine list of a template. An in-flight
// workout keeps the list it was started with.
func (t *Tracker) AssignMachines(ctx context.Context, workoutID string, machineIDs []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.mutate(ctx, func(st *models.State) error {
		w := st.Workout(workoutID)
		if w == nil {
			return NotFoundError("workout", workoutID)
		}
		for _, id := range machineIDs {
			if st.Machine(id) == nil {
				return NotFoundError("machine", id)
			}
		}
		w.MachineIDs = append([]string{}, machineIDs...)
		return nil
	})
}

// MoveMachine moves the machine at position from to position to inside a template.
func (t *Tracker) MoveMachine(ctx context.Context, workoutID string, from, to int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.mutate(ctx, func(st *models.State) error {
		w := st.Workout(workoutID)
		if w == nil {
			return NotFoundError("workout", workoutID)
		}
		n := len(w.MachineIDs)
		if from < 0 || from >= n || to < 0 || to >= n {
			return NotFoundError("position", fmt.Sprintf("%d->%d", from, to))
		}
		id := w.MachineIDs[from]
		ids := append(w.MachineIDs[:from:from], w.MachineIDs[from+1:]...)
		ids = append(ids[:to], append([]string{id}, ids[to:]...)...)
		w.MachineIDs = ids
		return nil
	})
}

// ReorderWorkouts sets the order of the template list. ids must name every
// template exactly once.
func (t *Tracker) ReorderWorkouts(ctx context.Context, ids []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.mutate(ctx, func(st *models.State) error {
		if len(ids) != len(st.Workouts) {
			return fmt.Errorf("reorder needs all %d workouts, got %d", len(st.Workouts), len(ids))
		}
		ordered := make([]models.WorkoutTemplate, 0, len(ids))
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			w := st.Workout(id)
			if w == nil {
				return NotFoundError("workout", id)
			}
			if seen[id] {
				return fmt.Errorf("workout %s listed twice", id)
			}
			seen[id] = true
			ordered = append(ordered, *w)
		}
		st.Workouts = ordered
		return nil
	})
}

// DeleteWorkout removes a template. The active workout, if it was started
// from this template, is left alone.
func (t *Tracker) DeleteWorkout(ctx context.Context, workoutID string, confirm bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.mutate(ctx, func(st *models.State) error {
		w := st.Workout(workoutID)
		if w == nil {
			return NotFoundError("workout", workoutID)
		}
		if !confirm {
			return ConfirmationRequiredError("delete workout " + w.Name)
		}
		kept := st.Workouts[:0]
		for _, tmpl := range st.Workouts {
			if tmpl.ID != workoutID {
				kept = append(kept, tmpl)
			}
		}
		st.Workouts = kept
		return nil
	})
}

// Workouts returns the templates in list order.
func (t *Tracker) Workouts() []models.WorkoutTemplate {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone().Workouts
}

// StartWorkout creates the active workout from a template snapshot. Ids that
// no longer resolve to a machine are skipped and repeated ids yield one item.
func (t *Tracker) StartWorkout(ctx context.Context, workoutID, date string) (models.ActiveWorkout, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if date == "" {
		date = t.Today()
	}

	var active models.ActiveWorkout
	err := t.mutate(ctx, func(st *models.State) error {
		if _, err := ParseDay(date); err != nil {
			return err
		}
		if st.ActiveWorkout != nil {
			return ErrWorkoutInProgress
		}
		w := st.Workout(workoutID)
		if w == nil {
			return NotFoundError("workout", workoutID)
		}

		var items []models.WorkoutItem
		seen := make(map[string]bool, len(w.MachineIDs))
		for _, id := range w.MachineIDs {
			if seen[id] || st.Machine(id) == nil {
				continue
			}
			seen[id] = true
			items = append(items, models.WorkoutItem{MachineID: id})
		}
		if len(items) == 0 {
			return EmptyWorkoutError(workoutID)
		}

		active = models.ActiveWorkout{
			ID:          t.newID(),
			WorkoutID:   w.ID,
			WorkoutName: w.Name,
			Date:        date,
			StartedAt:   t.now().UTC(),
			Items:       items,
		}
		st.ActiveWorkout = &active
		return nil
	})
	if err != nil {
		return models.ActiveWorkout{}, err
	}

	t.logger.Info("workout started", "workout", active.WorkoutName, "date", date, "items", len(active.Items))
	return active, nil
}

// ActiveWorkout returns a copy of the in-flight workout.
func (t *Tracker) ActiveWorkout() (models.ActiveWorkout, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.ActiveWorkout == nil {
		return models.ActiveWorkout{}, false
	}
	return *t.state.Clone().ActiveWorkout, true
}

type ItemInput struct {
	Progress string
	Notes    string
	Photo    string

	// Confirm acknowledges marking an item NO.
	Confirm bool
}

type MarkOutcome struct {
	Outcome
	WorkoutCompleted bool
	Record           *models.WorkoutRecord
}

// MarkItem resolves one unset item of the active workout. The result goes
// through the session ledger on the workout's date, so the duplicate-YES
// guard and the streak rules apply as for LogSession. Resolving the last
// item completes the workout.
func (t *Tracker) MarkItem(ctx context.Context, machineID string, result models.Result, in ItemInput) (MarkOutcome, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out MarkOutcome
	err := t.mutate(ctx, func(st *models.State) error {
		aw := st.ActiveWorkout
		if aw == nil {
			return NotFoundError("active workout", "")
		}
		item := unsetItem(aw, machineID)
		if item == nil {
			return NotFoundError("workout item", machineID)
		}
		if result == models.ResultNo && !in.Confirm {
			return ConfirmationRequiredError("mark item NO")
		}

		o, err := t.logSession(st, machineID, result, SessionInput{
			Date:     aw.Date,
			Notes:    in.Notes,
			Photo:    in.Photo,
			Progress: in.Progress,
			Confirm:  in.Confirm,
		})
		if err != nil {
			return err
		}
		out.Outcome = o

		item.Result = result
		item.Progress = in.Progress
		item.Notes = in.Notes
		item.Photo = in.Photo

		if aw.Remaining() > 0 {
			return nil
		}
		rec, err := t.completeWorkout(st)
		if err != nil {
			return err
		}
		out.WorkoutCompleted = true
		out.Record = &rec
		return nil
	})
	if err != nil {
		return MarkOutcome{}, err
	}

	if out.WorkoutCompleted {
		t.logger.Info("workout completed", "workout", out.Record.WorkoutName, "date", out.Record.Date)
	}
	return out, nil
}

func unsetItem(aw *models.ActiveWorkout, machineID string) *models.WorkoutItem {
	for i := range aw.Items {
		if aw.Items[i].MachineID == machineID && aw.Items[i].Result == models.ResultUnset {
			return &aw.Items[i]
		}
	}
	return nil
}

// dropUnsetItems removes the unresolved items whose machine matches drop.
// Resolved items stay so the record keeps what was actually done.
func dropUnsetItems(aw *models.ActiveWorkout, drop func(machineID string) bool) int {
	kept := aw.Items[:0]
	n := 0
	for _, item := range aw.Items {
		if item.Result == models.ResultUnset && drop(item.MachineID) {
			n++
			continue
		}
		kept = append(kept, item)
	}
	aw.Items = kept
	return n
}

// completeWorkout moves the finished active workout into the history.
func (t *Tracker) completeWorkout(st *models.State) (models.WorkoutRecord, error) {
	aw := st.ActiveWorkout
	rec := models.WorkoutRecord{
		ID:          aw.ID,
		WorkoutID:   aw.WorkoutID,
		WorkoutName: aw.WorkoutName,
		Date:        aw.Date,
		CompletedAt: t.now().UTC(),
		Items:       append([]models.WorkoutItem{}, aw.Items...),
	}
	st.WorkoutHistory = append(st.WorkoutHistory, rec)
	if err := t.enqueue(st, models.EventWorkoutComplete, rec); err != nil {
		return models.WorkoutRecord{}, err
	}
	st.ActiveWorkout = nil
	return rec, nil
}

// DiscardWorkout drops the in-flight workout without recording it. Sessions
// already logged through it stay in the ledger.
func (t *Tracker) DiscardWorkout(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.mutate(ctx, func(st *models.State) error {
		if st.ActiveWorkout == nil {
			return NotFoundError("active workout", "")
		}
		st.ActiveWorkout = nil
		return nil
	})
}

// History returns the completed workouts, oldest first.
func (t *Tracker) History() []models.WorkoutRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone().WorkoutHistory
}
