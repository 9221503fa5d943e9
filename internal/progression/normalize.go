package progression

import (
	"log/slog"

	"github.com/misterclayt0n/warrior/internal/models"
)

const DefaultWorkoutName = "Full Workout"

// NormalizeReport lists what NormalizeState changed. Nothing in it is an
// error; it only exists so the losses can be logged.
type NormalizeReport struct {
	PrunedRefs       int
	PrunedItems      int
	SynthesizedID    string
	DiscardedActive  string
	RepairedMachines []string
}

func (r NormalizeReport) Changed() bool {
	return r.PrunedRefs > 0 || r.PrunedItems > 0 || r.SynthesizedID != "" || r.DiscardedActive != "" || len(r.RepairedMachines) > 0
}

func (r NormalizeReport) log(l *slog.Logger) {
	if !r.Changed() {
		return
	}
	l.Warn("state normalized",
		"pruned_refs", r.PrunedRefs,
		"pruned_items", r.PrunedItems,
		"default_workout", r.SynthesizedID,
		"discarded_active_workout", r.DiscardedActive,
		"repaired_machines", r.RepairedMachines,
	)
}

// SeedState builds the first-run state: one machine and one template holding it.
func SeedState(today string, newID func() string) *models.State {
	m := models.Machine{
		ID:                newID(),
		Name:              "Machine 1",
		StreakRequirement: 3,
		AutoAdvance:       true,
		Level:             1,
		CurrentSetup: []models.SetupLine{
			{Weight: "9 plates", Rounds: 1, MinRep: 6, MaxRep: 12},
			{Weight: "7 plates", Rounds: 2, MinRep: 6, MaxRep: 12},
		},
		NextSetup: []models.SetupLine{
			{Weight: "10 plates", Rounds: 1, MinRep: 6, MaxRep: 12},
			{Weight: "8 plates", Rounds: 2, MinRep: 6, MaxRep: 12},
		},
		LevelHistory: []models.LevelEntry{{Date: today, Level: 1}},
	}
	return &models.State{
		Machines: []models.Machine{m},
		Sessions: []models.Session{},
		Workouts: []models.WorkoutTemplate{{
			ID:         newID(),
			Name:       DefaultWorkoutName,
			MachineIDs: []string{m.ID},
		}},
		WorkoutHistory: []models.WorkoutRecord{},
		SyncQueue:      []models.SyncEvent{},
	}
}

// NormalizeState runs once after the state is loaded or imported. It prunes
// template references to deleted machines, synthesizes a default template
// when there are machines but none, repairs machine progression fields and
// drops pending active items whose machine is gone. The active workout itself
// is dropped when its template is gone or nothing is left to resolve.
func NormalizeState(st *models.State, today string, newID func() string) NormalizeReport {
	var report NormalizeReport

	if st.Machines == nil {
		st.Machines = []models.Machine{}
	}
	if st.Sessions == nil {
		st.Sessions = []models.Session{}
	}
	if st.Workouts == nil {
		st.Workouts = []models.WorkoutTemplate{}
	}
	if st.WorkoutHistory == nil {
		st.WorkoutHistory = []models.WorkoutRecord{}
	}
	if st.SyncQueue == nil {
		st.SyncQueue = []models.SyncEvent{}
	}

	for i := range st.Machines {
		if repairMachine(&st.Machines[i], today) {
			report.RepairedMachines = append(report.RepairedMachines, st.Machines[i].ID)
		}
	}

	for i := range st.Workouts {
		w := &st.Workouts[i]
		kept := make([]string, 0, len(w.MachineIDs))
		for _, id := range w.MachineIDs {
			if st.Machine(id) != nil {
				kept = append(kept, id)
			} else {
				report.PrunedRefs++
			}
		}
		w.MachineIDs = kept
	}

	if len(st.Workouts) == 0 && len(st.Machines) > 0 {
		ids := make([]string, len(st.Machines))
		for i, m := range st.Machines {
			ids[i] = m.ID
		}
		w := models.WorkoutTemplate{ID: newID(), Name: DefaultWorkoutName, MachineIDs: ids}
		st.Workouts = append(st.Workouts, w)
		report.SynthesizedID = w.ID
	}

	if aw := st.ActiveWorkout; aw != nil {
		report.PrunedItems = dropUnsetItems(aw, func(id string) bool { return st.Machine(id) == nil })
		if st.Workout(aw.WorkoutID) == nil || aw.Remaining() == 0 {
			report.DiscardedActive = aw.ID
			st.ActiveWorkout = nil
		}
	}

	return report
}

// repairMachine restores the machine invariants: a positive requirement and
// level, and a non-empty level history whose last level matches the machine.
func repairMachine(m *models.Machine, today string) bool {
	changed := false
	if m.StreakRequirement < 1 {
		m.StreakRequirement = 1
		changed = true
	}
	if m.Streak < 0 {
		m.Streak = 0
		changed = true
	}
	if m.Level < 1 {
		m.Level = 1
		changed = true
	}
	if m.CurrentSetup == nil {
		m.CurrentSetup = []models.SetupLine{}
	}
	if m.NextSetup == nil {
		m.NextSetup = []models.SetupLine{}
	}
	if len(m.LevelHistory) == 0 {
		m.LevelHistory = []models.LevelEntry{{Date: today, Level: 1}}
		changed = true
	}
	last := m.LevelHistory[len(m.LevelHistory)-1].Level
	if last > m.Level {
		m.Level = last
		changed = true
	} else if last < m.Level {
		m.LevelHistory = append(m.LevelHistory, models.LevelEntry{Date: today, Level: m.Level})
		changed = true
	}
	return changed
}
