package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/warrior/internal/models"
)

func TestSeedState(t *testing.T) {
	st := SeedState("2024-03-10", counterIDs())

	require.Len(t, st.Machines, 1)
	m := st.Machines[0]
	assert.Equal(t, "id-1", m.ID)
	assert.Equal(t, 3, m.StreakRequirement)
	assert.True(t, m.AutoAdvance)
	assert.Equal(t, "9 plates", m.CurrentSetup[0].Weight)
	assert.Equal(t, "10 plates", m.NextSetup[0].Weight)

	require.Len(t, st.Workouts, 1)
	assert.Equal(t, DefaultWorkoutName, st.Workouts[0].Name)
	assert.Equal(t, []string{"id-1"}, st.Workouts[0].MachineIDs)
	assert.Nil(t, st.ActiveWorkout)
	assert.NotNil(t, st.SyncQueue)
}

func TestNormalizeState_Clean(t *testing.T) {
	st := testState()
	report := NormalizeState(st, "2024-03-10", counterIDs())
	assert.False(t, report.Changed())
	assert.Equal(t, testState(), st)
}

func TestNormalizeState_PrunesRefsAndDiscardsOrphanActive(t *testing.T) {
	st := testState()
	st.Workouts[0].MachineIDs = []string{"m1", "ghost", "m2", "gone"}
	st.ActiveWorkout = &models.ActiveWorkout{ID: "aw1", WorkoutID: "deleted", Date: "2024-03-09"}

	report := NormalizeState(st, "2024-03-10", counterIDs())

	assert.True(t, report.Changed())
	assert.Equal(t, 2, report.PrunedRefs)
	assert.Equal(t, "aw1", report.DiscardedActive)
	assert.Equal(t, []string{"m1", "m2"}, st.Workouts[0].MachineIDs)
	assert.Nil(t, st.ActiveWorkout)
}

func TestNormalizeState_KeepsActiveWithLiveTemplate(t *testing.T) {
	st := testState()
	st.ActiveWorkout = &models.ActiveWorkout{ID: "aw1", WorkoutID: "w1", Date: "2024-03-09",
		Items: []models.WorkoutItem{{MachineID: "m1"}}}

	report := NormalizeState(st, "2024-03-10", counterIDs())
	assert.False(t, report.Changed())
	assert.NotNil(t, st.ActiveWorkout)
}

func TestNormalizeState_PrunesItemsOfMissingMachines(t *testing.T) {
	st := testState()
	st.ActiveWorkout = &models.ActiveWorkout{ID: "aw1", WorkoutID: "w1", Date: "2024-03-09",
		Items: []models.WorkoutItem{{MachineID: "m1"}, {MachineID: "ghost"}}}

	report := NormalizeState(st, "2024-03-10", counterIDs())
	assert.True(t, report.Changed())
	assert.Equal(t, 1, report.PrunedItems)
	require.NotNil(t, st.ActiveWorkout)
	assert.Equal(t, []models.WorkoutItem{{MachineID: "m1"}}, st.ActiveWorkout.Items)
}

func TestNormalizeState_DiscardsActiveWithNothingPending(t *testing.T) {
	st := testState()
	st.ActiveWorkout = &models.ActiveWorkout{ID: "aw1", WorkoutID: "w1", Date: "2024-03-09",
		Items: []models.WorkoutItem{{MachineID: "m1", Result: models.ResultYes}, {MachineID: "ghost"}}}

	report := NormalizeState(st, "2024-03-10", counterIDs())
	assert.Equal(t, 1, report.PrunedItems)
	assert.Equal(t, "aw1", report.DiscardedActive)
	assert.Nil(t, st.ActiveWorkout)
}

func TestNormalizeState_SynthesizesDefaultTemplate(t *testing.T) {
	st := testState()
	st.Workouts = nil

	report := NormalizeState(st, "2024-03-10", counterIDs())
	assert.Equal(t, "id-1", report.SynthesizedID)
	require.Len(t, st.Workouts, 1)
	assert.Equal(t, DefaultWorkoutName, st.Workouts[0].Name)
	assert.Equal(t, []string{"m1", "m2"}, st.Workouts[0].MachineIDs)
}

func TestNormalizeState_NoMachinesNoTemplate(t *testing.T) {
	st := &models.State{}

	report := NormalizeState(st, "2024-03-10", counterIDs())
	assert.False(t, report.Changed())
	assert.NotNil(t, st.Machines)
	assert.NotNil(t, st.Sessions)
	assert.Empty(t, st.Workouts)
}

func TestNormalizeState_RepairsMachines(t *testing.T) {
	st := &models.State{Machines: []models.Machine{
		{ID: "a", Name: "No history", StreakRequirement: 0, Level: 0},
		{ID: "b", Name: "Behind", StreakRequirement: 2, Level: 3,
			LevelHistory: []models.LevelEntry{{Date: "2024-01-01", Level: 1}}},
		{ID: "c", Name: "Ahead", StreakRequirement: 2, Level: 1,
			LevelHistory: []models.LevelEntry{{Date: "2024-01-01", Level: 1}, {Date: "2024-02-01", Level: 2}}},
	}}

	report := NormalizeState(st, "2024-03-10", counterIDs())
	assert.Equal(t, []string{"a", "b", "c"}, report.RepairedMachines)

	for _, m := range st.Machines {
		assert.GreaterOrEqual(t, m.StreakRequirement, 1)
		require.NotEmpty(t, m.LevelHistory)
		assert.Equal(t, m.Level, m.LevelHistory[len(m.LevelHistory)-1].Level, m.Name)
		assert.NotNil(t, m.CurrentSetup)
	}
	assert.Equal(t, 3, st.Machines[1].Level)
	assert.Equal(t, 2, st.Machines[2].Level)
}
