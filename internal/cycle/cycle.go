package cycle

import "time"

// Cycle identifies one contribution period. Year is the annual cycle within
// which a member may win at most once; Month is the calendar month (1-12).
type Cycle struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Clock performs the calendar arithmetic for draw scheduling. It holds no
// state and is deterministic given its inputs.
type Clock struct {
	// DrawDay is the day of month the selection runs on.
	DrawDay int
	// ClampToMonthEnd moves the draw to the last day of months shorter than
	// DrawDay. When false those months have no selection day and the cycle
	// is skipped.
	ClampToMonthEnd bool
}

// NewClock creates a Clock. A non-positive or out-of-range draw day falls
// back to 30, the draw day the product launched with.
func NewClock(drawDay int, clampToMonthEnd bool) Clock {
	if drawDay < 1 || drawDay > 31 {
		drawDay = 30
	}
	return Clock{DrawDay: drawDay, ClampToMonthEnd: clampToMonthEnd}
}

// CurrentCycle returns the cycle now belongs to.
func (c Clock) CurrentCycle(now time.Time) Cycle {
	return Cycle{Year: now.Year(), Month: int(now.Month())}
}

// IsSelectionDay reports whether the selection routine may run at now.
func (c Clock) IsSelectionDay(now time.Time) bool {
	day := c.selectionDay(now.Year(), now.Month())
	return day != 0 && now.Day() == day
}

// NextContributionDeadline returns the draw day of the month after the last
// contribution. A zero lastContributionAt anchors on now instead. Months
// without a selection day are skipped.
func (c Clock) NextContributionDeadline(lastContributionAt, now time.Time) time.Time {
	anchor := lastContributionAt
	if anchor.IsZero() {
		anchor = now
	}

	year, month := anchor.Year(), anchor.Month()
	for i := 0; i < 12; i++ {
		next := time.Date(year, month+1, 1, 0, 0, 0, 0, anchor.Location())
		year, month = next.Year(), next.Month()
		if day := c.selectionDay(year, month); day != 0 {
			return time.Date(year, month, day, 0, 0, 0, 0, anchor.Location())
		}
	}
	// Unreachable: every year has months long enough for any valid DrawDay.
	return time.Date(year, month, c.DrawDay, 0, 0, 0, 0, anchor.Location())
}

// selectionDay returns the effective draw day for a month, or 0 when the
// month is shorter than DrawDay and clamping is disabled.
func (c Clock) selectionDay(year int, month time.Month) int {
	last := lastDayOfMonth(year, month)
	if c.DrawDay <= last {
		return c.DrawDay
	}
	if c.ClampToMonthEnd {
		return last
	}
	return 0
}

func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
