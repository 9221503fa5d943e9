package utils

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/misterclayt0n/warrior/internal/models"
)

// ParseMachinesFromTOML reads [[machine]] definitions:
//
//	[[machine]]
//	name = "Leg press"
//	streak_requirement = 3
//	current = [{ weight = "9 plates", rounds = 1, min_rep = 6, max_rep = 12 }]
//	next = [{ weight = "10 plates", rounds = 1, min_rep = 6, max_rep = 12 }]
func ParseMachinesFromTOML(path string) (*models.MachineImport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var defs models.MachineImport
	if err := toml.Unmarshal(data, &defs); err != nil {
		return nil, err
	}
	return &defs, nil
}

// ParseWorkoutsFromTOML reads [[workout]] definitions naming machines by name or id.
func ParseWorkoutsFromTOML(path string) (*models.WorkoutImport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var defs models.WorkoutImport
	if err := toml.Unmarshal(data, &defs); err != nil {
		return nil, err
	}
	return &defs, nil
}

// ToSetup converts TOML setup lines to the domain type.
func ToSetup(lines []models.SetupLineTOML) []models.SetupLine {
	out := make([]models.SetupLine, len(lines))
	for i, l := range lines {
		out[i] = models.SetupLine{Weight: l.Weight, Rounds: l.Rounds, MinRep: l.MinRep, MaxRep: l.MaxRep}
	}
	return out
}
