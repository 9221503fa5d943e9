package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/warrior/internal/models"
)

func TestParseMachinesFromTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "machines.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[machine]]
name = "Leg press"
streak_requirement = 3
current = [{ weight = "9 plates", rounds = 1, min_rep = 6, max_rep = 12 }]
next = [{ weight = "10 plates", rounds = 1, min_rep = 6, max_rep = 12 }]

[[machine]]
name = "Row"
streak_requirement = 2
auto_advance = false
`), 0o644))

	defs, err := ParseMachinesFromTOML(path)
	require.NoError(t, err)
	require.Len(t, defs.Machines, 2)

	leg := defs.Machines[0]
	assert.Equal(t, "Leg press", leg.Name)
	assert.Nil(t, leg.AutoAdvance)
	assert.Equal(t, []models.SetupLine{{Weight: "9 plates", Rounds: 1, MinRep: 6, MaxRep: 12}}, ToSetup(leg.CurrentSetup))

	row := defs.Machines[1]
	require.NotNil(t, row.AutoAdvance)
	assert.False(t, *row.AutoAdvance)
	assert.Empty(t, ToSetup(row.NextSetup))
}

func TestParseWorkoutsFromTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workouts.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[workout]]
name = "Legs"
machines = ["Leg press", "Calf raise"]
`), 0o644))

	defs, err := ParseWorkoutsFromTOML(path)
	require.NoError(t, err)
	require.Len(t, defs.Workouts, 1)
	assert.Equal(t, []string{"Leg press", "Calf raise"}, defs.Workouts[0].Machines)

	_, err = ParseWorkoutsFromTOML(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestEncodePhoto(t *testing.T) {
	dir := t.TempDir()
	// Smallest valid PNG header is enough for content sniffing.
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	path := filepath.Join(dir, "machine.png")
	require.NoError(t, os.WriteFile(path, png, 0o644))

	url, err := EncodePhoto(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"), url)

	url, err = EncodePhoto("")
	require.NoError(t, err)
	assert.Empty(t, url)

	big := filepath.Join(dir, "big.jpg")
	require.NoError(t, os.WriteFile(big, make([]byte, MaxPhotoBytes+1), 0o644))
	_, err = EncodePhoto(big)
	assert.Error(t, err)
}

func TestCalendarHelpers(t *testing.T) {
	assert.Equal(t, 29, DaysIn(2024, time.February))
	assert.Equal(t, 28, DaysIn(2023, time.February))
	assert.Equal(t, 31, DaysIn(2024, time.December))

	// 2024-03-01 is a Friday.
	assert.Equal(t, 5, WeekdayOffset(2024, time.March))
}

func TestFormatLocal(t *testing.T) {
	ts := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "Sun, 10 Mar 2024 13:00:00 UTC+1", FormatLocal(ts, time.FixedZone("UTC+1", 3600)))
}
