package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/warrior/internal/models"
)

func TestIncrementWeight(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"9 plates", "10 plates"},
		{"22.5 plates", "25 plates"},
		{"20kg", "22.5kg"},
		{"19.5 kg", "20.5 kg"},
		{"pin 12, seat 4", "pin 13, seat 4"},
		{"bodyweight", "bodyweight"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, IncrementWeight(tt.label))
		})
	}
}

func TestUpdateStreak_UsesSecondToLastYesByDate(t *testing.T) {
	st := testState()
	m := &st.Machines[0]
	m.Streak = 1
	// Ledger order differs from date order.
	st.Sessions = []models.Session{
		{ID: "s2", MachineID: "m1", Date: "2024-03-02", Result: models.ResultYes},
		{ID: "s1", MachineID: "m1", Date: "2024-03-01", Result: models.ResultYes},
	}

	leveled, err := UpdateStreak(st, m, "2024-03-02", models.ResultYes)
	require.NoError(t, err)
	assert.False(t, leveled)
	assert.Equal(t, 2, m.Streak)
}

func TestUpdateStreak_FirstYes(t *testing.T) {
	st := testState()
	m := &st.Machines[0]
	st.Sessions = []models.Session{{ID: "s1", MachineID: "m1", Date: "2024-03-01", Result: models.ResultYes}}

	_, err := UpdateStreak(st, m, "2024-03-01", models.ResultYes)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Streak)
}

func TestUpdateStreak_RequirementOfOne(t *testing.T) {
	st := testState()
	m := &st.Machines[1]
	m.StreakRequirement = 1
	st.Sessions = []models.Session{{ID: "s1", MachineID: "m2", Date: "2024-03-01", Result: models.ResultYes}}

	leveled, err := UpdateStreak(st, m, "2024-03-01", models.ResultYes)
	require.NoError(t, err)
	assert.True(t, leveled)
	assert.Equal(t, 2, m.Level)
	assert.Equal(t, "10 plates", m.CurrentSetup[0].Weight)
	assert.Equal(t, "11 plates", m.NextSetup[0].Weight)

	// current and next must not share storage after advancing.
	m.NextSetup[0].Weight = "x"
	assert.Equal(t, "10 plates", m.CurrentSetup[0].Weight)
}

func TestDates(t *testing.T) {
	n, err := DaysBetween("2024-03-01", "2024-02-28")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = DaysBetween("2024-01-01", "2024-01-02")
	require.NoError(t, err)
	assert.Equal(t, -1, n)

	_, err = DaysBetween("2024-13-01", "2024-01-01")
	assert.ErrorIs(t, err, ErrInvalidDate)

	d, err := AddDays("2024-12-31", 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", d)

	assert.Equal(t, 2024, YearOf("2024-06-01"))
	assert.Equal(t, 0, YearOf("junk"))
}
