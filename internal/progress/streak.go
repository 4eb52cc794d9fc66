package progress

import "github.com/abhisek/healthquest/internal/calendar"

// StreakChange describes what UpdateStreak did.
type StreakChange string

const (
	StreakStarted   StreakChange = "started"
	StreakUnchanged StreakChange = "already-counted"
	StreakContinued StreakChange = "continued"
	StreakReset     StreakChange = "reset"
)

// UpdateStreak counts today as a play day. Calling it again on the same day
// is a no-op. A gap of more than one day, or a last-play date in the future,
// resets the streak to 1.
func UpdateStreak(st *State, today calendar.Date) StreakChange {
	if st.LastPlayDate.IsZero() {
		st.Streak = 1
		st.LastPlayDate = today
		return StreakStarted
	}
	if st.LastPlayDate == today {
		return StreakUnchanged
	}

	change := StreakReset
	if today.DaysSince(st.LastPlayDate) == 1 {
		st.Streak++
		change = StreakContinued
	} else {
		st.Streak = 1
	}
	st.LastPlayDate = today
	return change
}
