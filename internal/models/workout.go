package models

import "time"

type WorkoutTemplate struct {
	ID         string   `json:"id" toml:"id" yaml:"id"`
	Name       string   `json:"name" toml:"name" yaml:"name"`
	MachineIDs []string `json:"machineIds" toml:"machine_ids" yaml:"machineIds"`
}

type WorkoutItem struct {
	MachineID string `json:"machineId" toml:"machine_id" yaml:"machineId"`
	Result    Result `json:"result" toml:"result" yaml:"result"`
	Progress  string `json:"progress" toml:"progress" yaml:"progress"`
	Notes     string `json:"notes" toml:"notes" yaml:"notes"`
	Photo     string `json:"photo" toml:"photo" yaml:"photo"`
}

// ActiveWorkout is a running instance of a template. Items are copied from
// the template when the workout starts.
type ActiveWorkout struct {
	ID          string        `json:"id" toml:"id" yaml:"id"`
	WorkoutID   string        `json:"workoutId" toml:"workout_id" yaml:"workoutId"`
	WorkoutName string        `json:"workoutName" toml:"workout_name" yaml:"workoutName"`
	Date        string        `json:"date" toml:"date" yaml:"date"`
	StartedAt   time.Time     `json:"startedAt" toml:"started_at" yaml:"startedAt"`
	Items       []WorkoutItem `json:"items" toml:"items" yaml:"items"`
}

// Remaining returns how many items are still unset.
func (a *ActiveWorkout) Remaining() int {
	n := 0
	for _, it := range a.Items {
		if it.Result == ResultUnset {
			n++
		}
	}
	return n
}

// WorkoutRecord is the immutable snapshot appended to the workout history
// when every item of an active workout has a result.
type WorkoutRecord struct {
	ID          string        `json:"id" toml:"id" yaml:"id"`
	WorkoutID   string        `json:"workoutId" toml:"workout_id" yaml:"workoutId"`
	WorkoutName string        `json:"workoutName" toml:"workout_name" yaml:"workoutName"`
	Date        string        `json:"date" toml:"date" yaml:"date"`
	CompletedAt time.Time     `json:"completedAt" toml:"completed_at" yaml:"completedAt"`
	Items       []WorkoutItem `json:"items" toml:"items" yaml:"items"`
}

//
// For TOML parsing only
//

type WorkoutTOML struct {
	Name     string   `toml:"name"`
	Machines []string `toml:"machines"`
}

type WorkoutImport struct {
	Workouts []WorkoutTOML `toml:"workout"`
}
