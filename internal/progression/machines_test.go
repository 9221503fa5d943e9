package progression

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/warrior/internal/models"
)

func TestAddMachine(t *testing.T) {
	tr := newTestTracker(testState())
	ctx := context.Background()

	m, err := tr.AddMachine(ctx, MachineInput{
		Name:              "Row",
		StreakRequirement: 2,
		AutoAdvance:       true,
		CurrentSetup:      setup("30kg"),
		NextSetup:         setup("32.5kg"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, m.Level)
	assert.Equal(t, []models.LevelEntry{{Date: "2024-03-10", Level: 1}}, m.LevelHistory)
	assert.Len(t, tr.Machines(), 3)

	_, err = tr.AddMachine(ctx, MachineInput{Name: " ", StreakRequirement: 2})
	assert.Error(t, err)
	_, err = tr.AddMachine(ctx, MachineInput{Name: "Zero", StreakRequirement: 0})
	assert.Error(t, err)
	assert.Len(t, tr.Machines(), 3)
}

func TestUpdateMachine_KeepsProgression(t *testing.T) {
	st := testState()
	st.Machines[0].Streak = 2
	st.Machines[0].Photo = "data:image/png;base64,AAAA"
	tr := newTestTracker(st)

	m, err := tr.UpdateMachine(context.Background(), "m1", MachineInput{
		Name:              "Leg press 45",
		StreakRequirement: 4,
		CurrentSetup:      setup("30 plates"),
		NextSetup:         setup("32.5 plates"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Leg press 45", m.Name)
	assert.Equal(t, 2, m.Streak)
	assert.Equal(t, 1, m.Level)
	assert.Equal(t, "data:image/png;base64,AAAA", m.Photo)
	assert.False(t, m.AutoAdvance)
	assert.Equal(t, "30 plates", m.CurrentSetup[0].Weight)

	_, err = tr.UpdateMachine(context.Background(), "ghost", MachineInput{Name: "x", StreakRequirement: 1})
	assert.True(t, IsNotFound(err))
}

func TestDeleteMachine_RemovesSessionsAndRefs(t *testing.T) {
	tr := newTestTracker(testState())
	ctx := context.Background()
	logYes(t, tr, "m1", "2024-03-01")
	logYes(t, tr, "m2", "2024-03-01")

	err := tr.DeleteMachine(ctx, "m1", false)
	assert.True(t, NeedsConfirmation(err))
	assert.Len(t, tr.Machines(), 2)

	require.NoError(t, tr.DeleteMachine(ctx, "m1", true))
	st := tr.Snapshot()
	require.Len(t, st.Machines, 1)
	assert.Equal(t, "m2", st.Machines[0].ID)
	require.Len(t, st.Sessions, 1)
	assert.Equal(t, "m2", st.Sessions[0].MachineID)
	assert.Equal(t, []string{"m2"}, st.Workouts[0].MachineIDs)
}

func TestDeleteMachine_CompletesActiveWorkout(t *testing.T) {
	tr := newTestTracker(testState())
	ctx := context.Background()

	_, err := tr.StartWorkout(ctx, "w1", "2024-03-05")
	require.NoError(t, err)
	_, err = tr.MarkItem(ctx, "m1", models.ResultYes, ItemInput{})
	require.NoError(t, err)

	require.NoError(t, tr.DeleteMachine(ctx, "m2", true))

	_, active := tr.ActiveWorkout()
	assert.False(t, active)
	history := tr.History()
	require.Len(t, history, 1)
	assert.Equal(t, []models.WorkoutItem{{MachineID: "m1", Result: models.ResultYes}}, history[0].Items)
	pending := tr.Pending()
	require.NotEmpty(t, pending)
	assert.Equal(t, models.EventWorkoutComplete, pending[len(pending)-1].Type)
}

func TestDeleteMachine_PrunesPendingItem(t *testing.T) {
	tr := newTestTracker(testState())
	ctx := context.Background()

	_, err := tr.StartWorkout(ctx, "w1", "2024-03-05")
	require.NoError(t, err)
	require.NoError(t, tr.DeleteMachine(ctx, "m2", true))

	aw, active := tr.ActiveWorkout()
	require.True(t, active)
	assert.Equal(t, []models.WorkoutItem{{MachineID: "m1"}}, aw.Items)

	out, err := tr.MarkItem(ctx, "m1", models.ResultNo, ItemInput{Confirm: true})
	require.NoError(t, err)
	assert.True(t, out.WorkoutCompleted)
	assert.Len(t, tr.History(), 1)

	_, err = tr.StartWorkout(ctx, "w1", "2024-03-06")
	require.NoError(t, err)
	require.NoError(t, tr.DeleteMachine(ctx, "m1", true))
	_, active = tr.ActiveWorkout()
	assert.False(t, active, "a workout with no items left is dropped")
	assert.Len(t, tr.History(), 1)
}

func TestParseSetup(t *testing.T) {
	got, err := ParseSetup("9 plates|1|6|12\n\n 7 plates | 2 | 6 | 12 \n")
	require.NoError(t, err)
	assert.Equal(t, []models.SetupLine{
		{Weight: "9 plates", Rounds: 1, MinRep: 6, MaxRep: 12},
		{Weight: "7 plates", Rounds: 2, MinRep: 6, MaxRep: 12},
	}, got)

	assert.Equal(t, "9 plates|1|6|12\n7 plates|2|6|12", FormatSetup(got))
	assert.Equal(t, "9 plates • 1r • 6-12 / 7 plates • 2r • 6-12", SetupText(got))

	_, err = ParseSetup("9 plates|1|6")
	assert.Error(t, err)
	_, err = ParseSetup("9 plates|one|6|12")
	assert.Error(t, err)
}
