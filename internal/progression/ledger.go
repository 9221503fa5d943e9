package progression

import (
	"context"
	"fmt"

	"github.com/misterclayt0n/warrior/internal/models"
)

type SessionInput struct {
	// Date defaults to today when empty.
	Date     string
	Notes    string
	Photo    string
	Progress string

	// Confirm acknowledges a destructive override (a YES day turned into NO).
	Confirm bool
}

type Outcome struct {
	Session   models.Session
	Machine   models.Machine
	LeveledUp bool
	Message   string
}

// LogSession commits the day-keyed result for a machine, updates its streak
// and queues a session event.
func (t *Tracker) LogSession(ctx context.Context, machineID string, result models.Result, in SessionInput) (Outcome, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if in.Date == "" {
		in.Date = t.Today()
	}

	var out Outcome
	err := t.mutate(ctx, func(st *models.State) error {
		var err error
		out, err = t.logSession(st, machineID, result, in)
		return err
	})
	if err != nil {
		return Outcome{}, err
	}

	t.logger.Info("session logged",
		"machine", out.Machine.Name,
		"date", out.Session.Date,
		"result", string(result),
		"streak", out.Machine.Streak,
		"leveled_up", out.LeveledUp,
	)
	return out, nil
}

// logSession is the ledger commit shared by LogSession and MarkItem.
func (t *Tracker) logSession(st *models.State, machineID string, result models.Result, in SessionInput) (Outcome, error) {
	if !result.Valid() {
		return Outcome{}, fmt.Errorf("%w: %q", ErrInvalidResult, result)
	}
	if _, err := ParseDay(in.Date); err != nil {
		return Outcome{}, err
	}
	m := st.Machine(machineID)
	if m == nil {
		return Outcome{}, NotFoundError("machine", machineID)
	}

	existing := st.SessionOn(machineID, in.Date)
	if existing != nil {
		if existing.Result == models.ResultYes && result == models.ResultYes {
			return Outcome{}, DuplicateResultError(machineID, in.Date)
		}
		if existing.Result == models.ResultYes && result == models.ResultNo && !in.Confirm {
			return Outcome{}, ConfirmationRequiredError(fmt.Sprintf("override YES on %s with NO", in.Date))
		}
		existing.Result = result
		existing.Notes = in.Notes
		existing.Photo = in.Photo
		existing.Progress = in.Progress
	} else {
		st.Sessions = append(st.Sessions, models.Session{
			ID:        t.newID(),
			MachineID: machineID,
			Date:      in.Date,
			Result:    result,
			Notes:     in.Notes,
			Photo:     in.Photo,
			Progress:  in.Progress,
		})
	}
	session := *st.SessionOn(machineID, in.Date)

	leveledUp, err := UpdateStreak(st, m, in.Date, result)
	if err != nil {
		return Outcome{}, err
	}

	if err := t.enqueue(st, models.EventSession, sessionPayload{
		Session:   session,
		Streak:    m.Streak,
		Level:     m.Level,
		LeveledUp: leveledUp,
	}); err != nil {
		return Outcome{}, err
	}

	out := Outcome{Session: session, Machine: *m, LeveledUp: leveledUp}
	if leveledUp {
		out.Message = fmt.Sprintf("%s leveled up!", m.Name)
	}
	return out, nil
}

type sessionPayload struct {
	Session   models.Session `json:"session"`
	Streak    int            `json:"streak"`
	Level     int            `json:"level"`
	LeveledUp bool           `json:"leveledUp"`
}

// RecentSessions returns up to n sessions of a machine, most recently logged first.
func (t *Tracker) RecentSessions(machineID string, n int) []models.Session {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []models.Session
	for i := len(t.state.Sessions) - 1; i >= 0 && len(out) < n; i-- {
		if t.state.Sessions[i].MachineID == machineID {
			out = append(out, t.state.Sessions[i])
		}
	}
	return out
}

// SessionOn looks up the session of a machine on a given day.
func (t *Tracker) SessionOn(machineID, date string) (models.Session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if s := t.state.SessionOn(machineID, date); s != nil {
		return *s, true
	}
	return models.Session{}, false
}
