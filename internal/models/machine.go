package models

// SetupLine is one load/rep prescription of a machine setup.
type SetupLine struct {
	Weight string `json:"weight" toml:"weight" yaml:"weight"`
	Rounds int    `json:"rounds" toml:"rounds" yaml:"rounds"`
	MinRep int    `json:"minRep" toml:"min_rep" yaml:"minRep"`
	MaxRep int    `json:"maxRep" toml:"max_rep" yaml:"maxRep"`
}

type LevelEntry struct {
	Date  string `json:"date" toml:"date" yaml:"date"`
	Level int    `json:"level" toml:"level" yaml:"level"`
}

type Machine struct {
	ID                string       `json:"id" toml:"id" yaml:"id"`
	Name              string       `json:"name" toml:"name" yaml:"name"`
	StreakRequirement int          `json:"streakRequirement" toml:"streak_requirement" yaml:"streakRequirement"`
	Streak            int          `json:"streak" toml:"streak" yaml:"streak"`
	AutoAdvance       bool         `json:"autoAdvance" toml:"auto_advance" yaml:"autoAdvance"`
	Level             int          `json:"level" toml:"level" yaml:"level"`
	Photo             string       `json:"photo" toml:"photo" yaml:"photo"`
	CurrentSetup      []SetupLine  `json:"currentSetup" toml:"current_setup" yaml:"currentSetup"`
	NextSetup         []SetupLine  `json:"nextSetup" toml:"next_setup" yaml:"nextSetup"`
	LevelHistory      []LevelEntry `json:"levelHistory" toml:"level_history" yaml:"levelHistory"`
}

// CloneSetup returns a copy of the given setup so two machines (or the
// current and next setup of one machine) never share a backing array.
func CloneSetup(setup []SetupLine) []SetupLine {
	if setup == nil {
		return []SetupLine{}
	}
	return cloneSlice(setup)
}

//
// For TOML parsing only
//

type SetupLineTOML struct {
	Weight string `toml:"weight"`
	Rounds int    `toml:"rounds"`
	MinRep int    `toml:"min_rep"`
	MaxRep int    `toml:"max_rep"`
}

type MachineDefTOML struct {
	Name              string          `toml:"name"`
	StreakRequirement int             `toml:"streak_requirement"`
	AutoAdvance       *bool           `toml:"auto_advance,omitempty"`
	CurrentSetup      []SetupLineTOML `toml:"current"`
	NextSetup         []SetupLineTOML `toml:"next"`
}

type MachineImport struct {
	Machines []MachineDefTOML `toml:"machine"`
}
