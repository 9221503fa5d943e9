package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/warrior/internal/models"
)

func TestParseResult(t *testing.T) {
	for in, want := range map[string]models.Result{"yes": models.ResultYes, "Y": models.ResultYes, "NO": models.ResultNo, "n": models.ResultNo} {
		got, err := parseResult(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := parseResult("maybe")
	assert.Error(t, err)
}

func TestSetupFlag(t *testing.T) {
	got, err := setupFlag("9 plates|1|6|12;7 plates|2|6|12")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "7 plates", got[1].Weight)
	assert.Equal(t, 2, got[1].Rounds)
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "  ab  ", centerText("ab", 6))
	assert.Equal(t, " ab  ", centerText("ab", 5))
	assert.Equal(t, "toolong", centerText("toolong", 3))
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{
		"init", "add-machine", "edit-machine", "delete-machine", "machines", "log", "show",
		"create-workout", "rename-workout", "assign-workout", "move-machine", "reorder-workouts",
		"delete-workout", "workouts", "start-workout", "mark", "workout-status", "cancel-workout",
		"status", "progress", "history", "export", "import", "backup", "restore", "sync", "serve",
	}
	for _, name := range want {
		c, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, c.Name())
	}
}
