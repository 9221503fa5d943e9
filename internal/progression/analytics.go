package progression

import (
	"math"
	"sort"

	"github.com/misterclayt0n/warrior/internal/models"
)

// LongestStreak is the longest run of YES days exactly one day apart for a
// machine within a year.
func LongestStreak(sessions []models.Session, machineID string, year int) int {
	var dates []string
	for _, s := range sessions {
		if s.MachineID == machineID && s.Result == models.ResultYes && YearOf(s.Date) == year {
			dates = append(dates, s.Date)
		}
	}
	sort.Strings(dates)

	best, cur := 0, 0
	prev := ""
	for _, d := range dates {
		if prev == "" {
			cur = 1
		} else if gap, err := DaysBetween(d, prev); err == nil && gap == 1 {
			cur++
		} else {
			cur = 1
		}
		best = max(best, cur)
		prev = d
	}
	return best
}

// ConsistencyPercent is the rounded share of YES sessions, 0 when there are none.
func ConsistencyPercent(sessions []models.Session) int {
	yes := 0
	for _, s := range sessions {
		if s.Result == models.ResultYes {
			yes++
		}
	}
	return percent(yes, len(sessions))
}

func percent(part, total int) int {
	return int(math.Round(100 * float64(part) / float64(max(1, total))))
}

// LevelUpsInYear counts level-ups recorded in year. The seed entry of the
// level history is not a level-up, wherever its date falls.
func LevelUpsInYear(m models.Machine, year int) int {
	n := 0
	for i, h := range m.LevelHistory {
		if i == 0 {
			continue
		}
		if YearOf(h.Date) == year {
			n++
		}
	}
	return n
}

func TotalLevelUpsInYear(machines []models.Machine, year int) int {
	n := 0
	for _, m := range machines {
		n += LevelUpsInYear(m, year)
	}
	return n
}

// PendingToday counts machines without a YES on today.
func PendingToday(st *models.State, today string) int {
	n := 0
	for _, m := range st.Machines {
		s := st.SessionOn(m.ID, today)
		if s == nil || s.Result != models.ResultYes {
			n++
		}
	}
	return n
}

// WorkoutsThisWeek counts YES sessions within the seven days ending today.
func WorkoutsThisWeek(sessions []models.Session, today string) int {
	n := 0
	for _, s := range sessions {
		if s.Result != models.ResultYes {
			continue
		}
		if gap, err := DaysBetween(today, s.Date); err == nil && gap >= 0 && gap < 7 {
			n++
		}
	}
	return n
}

// StreakProgress returns the streak as a capped percentage of the
// requirement and whether the machine is one YES away from leveling up.
func StreakProgress(m models.Machine) (pct int, almost bool) {
	return min(percent(m.Streak, m.StreakRequirement), 100), m.Streak == m.StreakRequirement-1
}

// Calendar maps each logged day of a machine in year to its result.
func Calendar(sessions []models.Session, machineID string, year int) map[string]models.Result {
	out := make(map[string]models.Result)
	for _, s := range sessions {
		if s.MachineID == machineID && YearOf(s.Date) == year {
			out[s.Date] = s.Result
		}
	}
	return out
}

type LevelPoint struct {
	Date  string
	Level int
}

// LevelSeries gives, for each YES day of a machine in year, the level in
// effect on that day.
func LevelSeries(sessions []models.Session, m models.Machine, year int) []LevelPoint {
	var yes []models.Session
	for _, s := range sessions {
		if s.MachineID == m.ID && s.Result == models.ResultYes && YearOf(s.Date) == year {
			yes = append(yes, s)
		}
	}
	sort.SliceStable(yes, func(i, j int) bool { return yes[i].Date < yes[j].Date })

	points := make([]LevelPoint, len(yes))
	for i, s := range yes {
		level := 1
		for _, h := range m.LevelHistory {
			if h.Date <= s.Date {
				level = h.Level
			}
		}
		points[i] = LevelPoint{Date: s.Date, Level: level}
	}
	return points
}

type StreakStatus struct {
	Machine     models.Machine
	ProgressPct int
	Close       bool
}

// Dashboard is the overview across all machines.
type Dashboard struct {
	Today            string
	PendingToday     int
	WorkoutsThisWeek int
	LevelUpsThisYear int
	Consistency      int
	Streaks          []StreakStatus
}

type MachineYear struct {
	Machine       models.Machine
	Year          int
	Yes           int
	No            int
	LongestStreak int
	LevelUps      int
	Consistency   int
	Calendar      map[string]models.Result
	Levels        []LevelPoint
}

func (t *Tracker) Dashboard() Dashboard {
	t.mu.Lock()
	defer t.mu.Unlock()

	today := t.Today()
	d := Dashboard{
		Today:            today,
		PendingToday:     PendingToday(t.state, today),
		WorkoutsThisWeek: WorkoutsThisWeek(t.state.Sessions, today),
		LevelUpsThisYear: TotalLevelUpsInYear(t.state.Machines, YearOf(today)),
		Consistency:      ConsistencyPercent(t.state.Sessions),
	}
	for _, m := range t.state.Machines {
		pct, almost := StreakProgress(m)
		d.Streaks = append(d.Streaks, StreakStatus{Machine: m, ProgressPct: pct, Close: almost})
	}
	return d
}

// MachineYear summarizes one machine over a year.
func (t *Tracker) MachineYear(machineID string, year int) (MachineYear, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	m := t.state.Machine(machineID)
	if m == nil {
		return MachineYear{}, NotFoundError("machine", machineID)
	}

	r := MachineYear{
		Machine:       *m,
		Year:          year,
		LongestStreak: LongestStreak(t.state.Sessions, machineID, year),
		LevelUps:      LevelUpsInYear(*m, year),
		Calendar:      Calendar(t.state.Sessions, machineID, year),
		Levels:        LevelSeries(t.state.Sessions, *m, year),
	}
	for _, res := range r.Calendar {
		switch res {
		case models.ResultYes:
			r.Yes++
		case models.ResultNo:
			r.No++
		}
	}
	r.Consistency = percent(r.Yes, r.Yes+r.No)
	return r, nil
}
