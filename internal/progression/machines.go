package progression

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/misterclayt0n/warrior/internal/models"
)

type MachineInput struct {
	Name              string
	StreakRequirement int
	AutoAdvance       bool
	Photo             string
	CurrentSetup      []models.SetupLine
	NextSetup         []models.SetupLine
}

func (in MachineInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("machine name is required")
	}
	if in.StreakRequirement < 1 {
		return fmt.Errorf("streak requirement must be at least 1, got %d", in.StreakRequirement)
	}
	return nil
}

// AddMachine creates a machine at level 1 with its level history seeded today.
func (t *Tracker) AddMachine(ctx context.Context, in MachineInput) (models.Machine, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := in.validate(); err != nil {
		return models.Machine{}, err
	}
	m := models.Machine{
		ID:                t.newID(),
		Name:              in.Name,
		StreakRequirement: in.StreakRequirement,
		AutoAdvance:       in.AutoAdvance,
		Level:             1,
		Photo:             in.Photo,
		CurrentSetup:      models.CloneSetup(in.CurrentSetup),
		NextSetup:         models.CloneSetup(in.NextSetup),
		LevelHistory:      []models.LevelEntry{{Date: t.Today(), Level: 1}},
	}
	err := t.mutate(ctx, func(st *models.State) error {
		st.Machines = append(st.Machines, m)
		return nil
	})
	if err != nil {
		return models.Machine{}, err
	}
	return m, nil
}

// UpdateMachine edits a machine's definition. Streak, level and level
// history are progression state and are kept. An empty photo keeps the
// existing one.
func (t *Tracker) UpdateMachine(ctx context.Context, id string, in MachineInput) (models.Machine, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := in.validate(); err != nil {
		return models.Machine{}, err
	}
	var out models.Machine
	err := t.mutate(ctx, func(st *models.State) error {
		m := st.Machine(id)
		if m == nil {
			return NotFoundError("machine", id)
		}
		m.Name = in.Name
		m.StreakRequirement = in.StreakRequirement
		m.AutoAdvance = in.AutoAdvance
		if in.Photo != "" {
			m.Photo = in.Photo
		}
		m.CurrentSetup = models.CloneSetup(in.CurrentSetup)
		m.NextSetup = models.CloneSetup(in.NextSetup)
		out = *m
		return nil
	})
	if err != nil {
		return models.Machine{}, err
	}
	return out, nil
}

// DeleteMachine removes a machine, its sessions and its template references.
// Its pending item in the active workout goes too; if that leaves nothing
// unresolved the workout completes, or is dropped when it has no items left.
func (t *Tracker) DeleteMachine(ctx context.Context, id string, confirm bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.mutate(ctx, func(st *models.State) error {
		m := st.Machine(id)
		if m == nil {
			return NotFoundError("machine", id)
		}
		if !confirm {
			return ConfirmationRequiredError("delete machine " + m.Name)
		}

		machines := make([]models.Machine, 0, len(st.Machines))
		for _, x := range st.Machines {
			if x.ID != id {
				machines = append(machines, x)
			}
		}
		st.Machines = machines

		sessions := make([]models.Session, 0, len(st.Sessions))
		for _, s := range st.Sessions {
			if s.MachineID != id {
				sessions = append(sessions, s)
			}
		}
		st.Sessions = sessions

		for i := range st.Workouts {
			w := &st.Workouts[i]
			ids := make([]string, 0, len(w.MachineIDs))
			for _, mid := range w.MachineIDs {
				if mid != id {
					ids = append(ids, mid)
				}
			}
			w.MachineIDs = ids
		}

		aw := st.ActiveWorkout
		if aw == nil || dropUnsetItems(aw, func(mid string) bool { return mid == id }) == 0 || aw.Remaining() > 0 {
			return nil
		}
		if len(aw.Items) == 0 {
			st.ActiveWorkout = nil
			return nil
		}
		rec, err := t.completeWorkout(st)
		if err != nil {
			return err
		}
		t.logger.Info("workout completed", "workout", rec.WorkoutName, "date", rec.Date)
		return nil
	})
}

// Machines returns every machine in creation order.
func (t *Tracker) Machines() []models.Machine {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone().Machines
}

// ParseSetup reads one setup line per row in the form weight|rounds|minRep|maxRep.
// Blank rows are skipped.
func ParseSetup(text string) ([]models.SetupLine, error) {
	var setup []models.SetupLine
	for i, row := range strings.Split(text, "\n") {
		row = strings.TrimSpace(row)
		if row == "" {
			continue
		}
		parts := strings.Split(row, "|")
		if len(parts) != 4 {
			return nil, fmt.Errorf("line %d: expected weight|rounds|minRep|maxRep, got %q", i+1, row)
		}
		nums := make([]int, 3)
		for j, p := range parts[1:] {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return nil, fmt.Errorf("line %d: %q is not a number", i+1, strings.TrimSpace(p))
			}
			nums[j] = n
		}
		setup = append(setup, models.SetupLine{
			Weight: strings.TrimSpace(parts[0]),
			Rounds: nums[0],
			MinRep: nums[1],
			MaxRep: nums[2],
		})
	}
	return setup, nil
}

// SetupText renders a setup on one line: "9 plates • 1r • 6-12 / 7 plates • 2r • 6-12".
func SetupText(setup []models.SetupLine) string {
	parts := make([]string, len(setup))
	for i, s := range setup {
		parts[i] = fmt.Sprintf("%s • %dr • %d-%d", s.Weight, s.Rounds, s.MinRep, s.MaxRep)
	}
	return strings.Join(parts, " / ")
}

// FormatSetup is the inverse of ParseSetup.
func FormatSetup(setup []models.SetupLine) string {
	rows := make([]string, len(setup))
	for i, s := range setup {
		rows[i] = fmt.Sprintf("%s|%d|%d|%d", s.Weight, s.Rounds, s.MinRep, s.MaxRep)
	}
	return strings.Join(rows, "\n")
}
