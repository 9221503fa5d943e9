package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/warrior/internal/models"
)

func yesOn(machineID string, dates ...string) []models.Session {
	out := make([]models.Session, len(dates))
	for i, d := range dates {
		out[i] = models.Session{MachineID: machineID, Date: d, Result: models.ResultYes}
	}
	return out
}

func TestLongestStreak(t *testing.T) {
	sessions := yesOn("m1", "2024-01-01", "2024-01-02", "2024-01-04")
	assert.Equal(t, 2, LongestStreak(sessions, "m1", 2024))

	sessions = append(sessions, yesOn("m1", "2023-12-31")...)
	sessions = append(sessions, models.Session{MachineID: "m1", Date: "2024-01-03", Result: models.ResultNo})
	sessions = append(sessions, yesOn("m2", "2024-01-03")...)
	assert.Equal(t, 2, LongestStreak(sessions, "m1", 2024), "other years, NO days and other machines do not join runs")

	assert.Equal(t, 0, LongestStreak(sessions, "m1", 2022))
}

func TestConsistencyPercent(t *testing.T) {
	assert.Equal(t, 0, ConsistencyPercent(nil))

	sessions := yesOn("m1", "2024-01-01", "2024-01-02")
	sessions = append(sessions, models.Session{MachineID: "m1", Date: "2024-01-03", Result: models.ResultNo})
	assert.Equal(t, 67, ConsistencyPercent(sessions))
}

func TestLevelUpsInYear(t *testing.T) {
	m := models.Machine{LevelHistory: []models.LevelEntry{
		{Date: "2023-05-01", Level: 1},
		{Date: "2024-02-01", Level: 2},
		{Date: "2024-06-01", Level: 3},
	}}
	assert.Equal(t, 2, LevelUpsInYear(m, 2024), "seed in an earlier year is not subtracted")
	assert.Equal(t, 0, LevelUpsInYear(m, 2023))

	fresh := models.Machine{LevelHistory: []models.LevelEntry{{Date: "2024-07-01", Level: 1}}}
	assert.Equal(t, 0, LevelUpsInYear(fresh, 2024))

	assert.Equal(t, 2, TotalLevelUpsInYear([]models.Machine{m, fresh}, 2024))
}

func TestWorkoutsThisWeek(t *testing.T) {
	sessions := yesOn("m1", "2024-03-10", "2024-03-04", "2024-03-03")
	sessions = append(sessions, models.Session{MachineID: "m2", Date: "2024-03-09", Result: models.ResultNo})
	assert.Equal(t, 2, WorkoutsThisWeek(sessions, "2024-03-10"))

	sessions = append(sessions, yesOn("m2", "2024-03-12")...)
	assert.Equal(t, 2, WorkoutsThisWeek(sessions, "2024-03-10"), "future dates are not this week")
}

func TestStreakProgress(t *testing.T) {
	pct, almost := StreakProgress(models.Machine{Streak: 2, StreakRequirement: 3})
	assert.Equal(t, 67, pct)
	assert.True(t, almost)

	pct, almost = StreakProgress(models.Machine{Streak: 5, StreakRequirement: 3})
	assert.Equal(t, 100, pct)
	assert.False(t, almost)
}

func TestLevelSeries(t *testing.T) {
	m := models.Machine{ID: "m1", LevelHistory: []models.LevelEntry{
		{Date: "2024-01-01", Level: 1},
		{Date: "2024-01-03", Level: 2},
	}}
	sessions := yesOn("m1", "2024-01-03", "2024-01-01", "2024-01-02")

	assert.Equal(t, []LevelPoint{
		{Date: "2024-01-01", Level: 1},
		{Date: "2024-01-02", Level: 1},
		{Date: "2024-01-03", Level: 2},
	}, LevelSeries(sessions, m, 2024))
}

func TestTracker_Dashboard(t *testing.T) {
	tr := newTestTracker(testState())
	logYes(t, tr, "m1", "2024-03-08")
	logYes(t, tr, "m1", "2024-03-09")
	logYes(t, tr, "m2", "2024-03-10")

	d := tr.Dashboard()
	assert.Equal(t, "2024-03-10", d.Today)
	assert.Equal(t, 1, d.PendingToday)
	assert.Equal(t, 3, d.WorkoutsThisWeek)
	assert.Equal(t, 100, d.Consistency)
	assert.Equal(t, 0, d.LevelUpsThisYear)
	require.Len(t, d.Streaks, 2)
	assert.True(t, d.Streaks[0].Close)
	assert.Equal(t, 67, d.Streaks[0].ProgressPct)
}

func TestTracker_MachineYear(t *testing.T) {
	tr := newTestTracker(testState())
	logYes(t, tr, "m1", "2024-03-01")
	logYes(t, tr, "m1", "2024-03-02")
	logYes(t, tr, "m1", "2024-03-03")
	logYes(t, tr, "m1", "2024-03-05")

	y, err := tr.MachineYear("m1", 2024)
	require.NoError(t, err)
	assert.Equal(t, 4, y.Yes)
	assert.Equal(t, 0, y.No)
	assert.Equal(t, 3, y.LongestStreak)
	assert.Equal(t, 1, y.LevelUps)
	assert.Equal(t, 100, y.Consistency)
	assert.Equal(t, models.ResultYes, y.Calendar["2024-03-05"])
	require.Len(t, y.Levels, 4)
	assert.Equal(t, 2, y.Levels[3].Level)

	_, err = tr.MachineYear("ghost", 2024)
	assert.True(t, IsNotFound(err))
}
