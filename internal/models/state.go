package models

// State is the whole tracker aggregate. It is persisted as one blob and
// owned by a single progression.Tracker at a time.
type State struct {
	Machines       []Machine         `json:"machines" toml:"machines" yaml:"machines"`
	Sessions       []Session         `json:"sessions" toml:"sessions" yaml:"sessions"`
	Workouts       []WorkoutTemplate `json:"workouts" toml:"workouts" yaml:"workouts"`
	WorkoutHistory []WorkoutRecord   `json:"workoutHistory" toml:"workout_history" yaml:"workoutHistory"`
	ActiveWorkout  *ActiveWorkout    `json:"activeWorkout" toml:"active_workout,omitempty" yaml:"activeWorkout"`
	SyncQueue      []SyncEvent       `json:"syncQueue" toml:"sync_queue" yaml:"syncQueue"`
}

func (s *State) Machine(id string) *Machine {
	for i := range s.Machines {
		if s.Machines[i].ID == id {
			return &s.Machines[i]
		}
	}
	return nil
}

func (s *State) Workout(id string) *WorkoutTemplate {
	for i := range s.Workouts {
		if s.Workouts[i].ID == id {
			return &s.Workouts[i]
		}
	}
	return nil
}

// SessionOn returns the session logged for machineID on date, if any.
func (s *State) SessionOn(machineID, date string) *Session {
	for i := range s.Sessions {
		if s.Sessions[i].MachineID == machineID && s.Sessions[i].Date == date {
			return &s.Sessions[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the state. Event payloads are shared since
// they are never mutated after enqueue.
func (s *State) Clone() *State {
	c := &State{
		Machines:       cloneSlice(s.Machines),
		Sessions:       cloneSlice(s.Sessions),
		Workouts:       cloneSlice(s.Workouts),
		WorkoutHistory: cloneSlice(s.WorkoutHistory),
		SyncQueue:      cloneSlice(s.SyncQueue),
	}
	for i := range c.Machines {
		m := &c.Machines[i]
		m.CurrentSetup = cloneSlice(m.CurrentSetup)
		m.NextSetup = cloneSlice(m.NextSetup)
		m.LevelHistory = cloneSlice(m.LevelHistory)
	}
	for i := range c.Workouts {
		c.Workouts[i].MachineIDs = cloneSlice(c.Workouts[i].MachineIDs)
	}
	for i := range c.WorkoutHistory {
		c.WorkoutHistory[i].Items = cloneSlice(c.WorkoutHistory[i].Items)
	}
	if s.ActiveWorkout != nil {
		aw := *s.ActiveWorkout
		aw.Items = cloneSlice(aw.Items)
		c.ActiveWorkout = &aw
	}
	return c
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
