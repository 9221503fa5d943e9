package progression

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/misterclayt0n/warrior/internal/models"
)

var numberRe = regexp.MustCompile(`[\d.]+`)

// UpdateStreak applies a committed result to the machine's streak and runs
// the auto-advance rule. The session for date must already be in the ledger.
func UpdateStreak(state *models.State, m *models.Machine, date string, result models.Result) (bool, error) {
	if result == models.ResultNo {
		m.Streak = 0
		return false, nil
	}

	var yes []models.Session
	for _, s := range state.Sessions {
		if s.MachineID == m.ID && s.Result == models.ResultYes {
			yes = append(yes, s)
		}
	}
	sort.SliceStable(yes, func(i, j int) bool { return yes[i].Date < yes[j].Date })

	if len(yes) < 2 {
		m.Streak = 1
	} else {
		last := yes[len(yes)-2]
		gap, err := DaysBetween(date, last.Date)
		if err != nil {
			return false, err
		}
		if gap == 1 {
			m.Streak++
		} else {
			m.Streak = 1
		}
	}

	if m.Streak < m.StreakRequirement || !m.AutoAdvance {
		return false, nil
	}

	advance(m, date)
	return true, nil
}

// advance promotes nextSetup to currentSetup and derives a new nextSetup.
func advance(m *models.Machine, date string) {
	m.Level++
	m.CurrentSetup = m.NextSetup

	next := make([]models.SetupLine, len(m.CurrentSetup))
	for i, line := range m.CurrentSetup {
		line.Weight = IncrementWeight(line.Weight)
		next[i] = line
	}
	m.NextSetup = next

	m.LevelHistory = append(m.LevelHistory, models.LevelEntry{Date: date, Level: m.Level})
	m.Streak = 0
}

// IncrementWeight bumps the first number in a weight label: +1 below 20,
// +2.5 from 20 up. Labels without a number come back unchanged.
func IncrementWeight(label string) string {
	loc := numberRe.FindStringIndex(label)
	if loc == nil {
		return label
	}
	n, err := strconv.ParseFloat(label[loc[0]:loc[1]], 64)
	if err != nil {
		return label
	}

	inc := 2.5
	if n < 20 {
		inc = 1
	}
	bumped := strconv.FormatFloat(n+inc, 'f', -1, 64)
	return label[:loc[0]] + bumped + label[loc[1]:]
}
