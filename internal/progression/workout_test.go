package progression

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/warrior/internal/models"
)

func TestWorkout_YesThenNoCompletes(t *testing.T) {
	tr := newTestTracker(testState())
	ctx := context.Background()

	aw, err := tr.StartWorkout(ctx, "w1", "2024-03-05")
	require.NoError(t, err)
	require.Len(t, aw.Items, 2)
	assert.Equal(t, 2, aw.Remaining())

	out, err := tr.MarkItem(ctx, "m1", models.ResultYes, ItemInput{Progress: "12 reps"})
	require.NoError(t, err)
	assert.False(t, out.WorkoutCompleted)
	assert.Equal(t, "2024-03-05", out.Session.Date)

	_, err = tr.MarkItem(ctx, "m2", models.ResultNo, ItemInput{})
	require.Error(t, err)
	assert.True(t, NeedsConfirmation(err))
	current, ok := tr.ActiveWorkout()
	require.True(t, ok)
	assert.Equal(t, 1, current.Remaining())

	out, err = tr.MarkItem(ctx, "m2", models.ResultNo, ItemInput{Confirm: true, Notes: "tired"})
	require.NoError(t, err)
	require.True(t, out.WorkoutCompleted)
	require.NotNil(t, out.Record)

	_, ok = tr.ActiveWorkout()
	assert.False(t, ok)

	history := tr.History()
	require.Len(t, history, 1)
	rec := history[0]
	assert.Equal(t, "2024-03-05", rec.Date)
	assert.Equal(t, "Full Workout", rec.WorkoutName)
	require.Len(t, rec.Items, 2)
	assert.Equal(t, models.ResultYes, rec.Items[0].Result)
	assert.Equal(t, "12 reps", rec.Items[0].Progress)
	assert.Equal(t, models.ResultNo, rec.Items[1].Result)
	assert.Equal(t, "tired", rec.Items[1].Notes)

	var types []string
	for _, ev := range tr.Pending() {
		types = append(types, ev.Type)
	}
	assert.Equal(t, []string{models.EventSession, models.EventSession, models.EventWorkoutComplete}, types)
}

func TestWorkout_MarkGoesThroughLedger(t *testing.T) {
	tr := newTestTracker(testState())
	ctx := context.Background()

	logYes(t, tr, "m1", "2024-03-10")
	_, err := tr.StartWorkout(ctx, "w1", "")
	require.NoError(t, err)

	_, err = tr.MarkItem(ctx, "m1", models.ResultYes, ItemInput{})
	require.Error(t, err)
	assert.True(t, IsDuplicate(err))

	aw, _ := tr.ActiveWorkout()
	assert.Equal(t, 2, aw.Remaining(), "a rejected mark leaves the item unset")
}

func TestWorkout_MarkUnknownItem(t *testing.T) {
	tr := newTestTracker(testState())
	ctx := context.Background()

	_, err := tr.MarkItem(ctx, "m1", models.ResultYes, ItemInput{})
	assert.True(t, IsNotFound(err), "no active workout")

	_, err = tr.StartWorkout(ctx, "w1", "2024-03-05")
	require.NoError(t, err)

	_, err = tr.MarkItem(ctx, "m3", models.ResultYes, ItemInput{})
	assert.True(t, IsNotFound(err))

	_, err = tr.MarkItem(ctx, "m1", models.ResultYes, ItemInput{})
	require.NoError(t, err)
	_, err = tr.MarkItem(ctx, "m1", models.ResultYes, ItemInput{})
	assert.True(t, IsNotFound(err), "item already resolved")
}

func TestStartWorkout_Preconditions(t *testing.T) {
	st := testState()
	st.Workouts = append(st.Workouts,
		models.WorkoutTemplate{ID: "w2", Name: "Ghosts", MachineIDs: []string{"ghost"}},
		models.WorkoutTemplate{ID: "w3", Name: "Partial", MachineIDs: []string{"ghost", "m2"}},
	)
	tr := newTestTracker(st)
	ctx := context.Background()

	_, err := tr.StartWorkout(ctx, "w2", "2024-03-05")
	assert.True(t, IsEmptyWorkout(err))

	_, err = tr.StartWorkout(ctx, "missing", "2024-03-05")
	assert.True(t, IsNotFound(err))

	_, err = tr.StartWorkout(ctx, "w1", "yesterday")
	assert.ErrorIs(t, err, ErrInvalidDate)

	aw, err := tr.StartWorkout(ctx, "w3", "2024-03-05")
	require.NoError(t, err)
	require.Len(t, aw.Items, 1)
	assert.Equal(t, "m2", aw.Items[0].MachineID)

	_, err = tr.StartWorkout(ctx, "w1", "2024-03-05")
	assert.ErrorIs(t, err, ErrWorkoutInProgress)
}

func TestStartWorkout_RepeatedMachineYieldsOneItem(t *testing.T) {
	st := testState()
	st.Workouts[0].MachineIDs = []string{"m1", "m1", "m2"}
	tr := newTestTracker(st)

	aw, err := tr.StartWorkout(context.Background(), "w1", "2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, []models.WorkoutItem{{MachineID: "m1"}, {MachineID: "m2"}}, aw.Items)
}

func TestWorkout_TemplateEditsDoNotTouchActive(t *testing.T) {
	tr := newTestTracker(testState())
	ctx := context.Background()

	_, err := tr.StartWorkout(ctx, "w1", "2024-03-05")
	require.NoError(t, err)

	require.NoError(t, tr.AssignMachines(ctx, "w1", []string{"m2"}))
	require.NoError(t, tr.DeleteWorkout(ctx, "w1", true))

	aw, ok := tr.ActiveWorkout()
	require.True(t, ok)
	assert.Len(t, aw.Items, 2)
	assert.Equal(t, "w1", aw.WorkoutID)
}

func TestDiscardWorkout(t *testing.T) {
	tr := newTestTracker(testState())
	ctx := context.Background()

	assert.True(t, IsNotFound(tr.DiscardWorkout(ctx)))

	_, err := tr.StartWorkout(ctx, "w1", "2024-03-05")
	require.NoError(t, err)
	_, err = tr.MarkItem(ctx, "m1", models.ResultYes, ItemInput{})
	require.NoError(t, err)

	require.NoError(t, tr.DiscardWorkout(ctx))
	_, ok := tr.ActiveWorkout()
	assert.False(t, ok)
	assert.Empty(t, tr.History())

	_, logged := tr.SessionOn("m1", "2024-03-05")
	assert.True(t, logged, "sessions logged through the workout are kept")
}

func TestCreateWorkout(t *testing.T) {
	tr := newTestTracker(testState())
	ctx := context.Background()

	w, err := tr.CreateWorkout(ctx, "Legs", []string{"m1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"m1"}, w.MachineIDs)
	assert.Len(t, tr.Workouts(), 2)

	_, err = tr.CreateWorkout(ctx, "Broken", []string{"m1", "ghost"})
	assert.True(t, IsNotFound(err))
	assert.Len(t, tr.Workouts(), 2)
}

func TestMoveMachine(t *testing.T) {
	st := testState()
	st.Machines = append(st.Machines, models.Machine{ID: "m3", Name: "Row", StreakRequirement: 1, Level: 1,
		LevelHistory: []models.LevelEntry{{Date: "2024-01-01", Level: 1}}})
	st.Workouts[0].MachineIDs = []string{"m1", "m2", "m3"}
	tr := newTestTracker(st)
	ctx := context.Background()

	require.NoError(t, tr.MoveMachine(ctx, "w1", 0, 2))
	assert.Equal(t, []string{"m2", "m3", "m1"}, tr.Workouts()[0].MachineIDs)

	require.NoError(t, tr.MoveMachine(ctx, "w1", 2, 0))
	assert.Equal(t, []string{"m1", "m2", "m3"}, tr.Workouts()[0].MachineIDs)

	require.NoError(t, tr.MoveMachine(ctx, "w1", 1, 2))
	assert.Equal(t, []string{"m1", "m3", "m2"}, tr.Workouts()[0].MachineIDs)

	assert.True(t, IsNotFound(tr.MoveMachine(ctx, "w1", 0, 3)))
	assert.True(t, IsNotFound(tr.MoveMachine(ctx, "nope", 0, 1)))
}

func TestReorderWorkouts(t *testing.T) {
	tr := newTestTracker(testState())
	ctx := context.Background()

	w2, err := tr.CreateWorkout(ctx, "Legs", []string{"m1"})
	require.NoError(t, err)

	require.NoError(t, tr.ReorderWorkouts(ctx, []string{w2.ID, "w1"}))
	workouts := tr.Workouts()
	assert.Equal(t, w2.ID, workouts[0].ID)
	assert.Equal(t, "w1", workouts[1].ID)

	assert.Error(t, tr.ReorderWorkouts(ctx, []string{"w1"}))
	assert.Error(t, tr.ReorderWorkouts(ctx, []string{"w1", "w1"}))
	assert.Equal(t, w2.ID, tr.Workouts()[0].ID)
}

func TestDeleteWorkout_NeedsConfirmation(t *testing.T) {
	tr := newTestTracker(testState())
	ctx := context.Background()

	err := tr.DeleteWorkout(ctx, "w1", false)
	assert.True(t, NeedsConfirmation(err))
	assert.Len(t, tr.Workouts(), 1)

	require.NoError(t, tr.DeleteWorkout(ctx, "w1", true))
	assert.Empty(t, tr.Workouts())
}

func TestRenameWorkout(t *testing.T) {
	tr := newTestTracker(testState())
	ctx := context.Background()

	require.NoError(t, tr.RenameWorkout(ctx, "w1", "Monday"))
	assert.Equal(t, "Monday", tr.Workouts()[0].Name)
	assert.True(t, IsNotFound(tr.RenameWorkout(ctx, "w9", "x")))
}
