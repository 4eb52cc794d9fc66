package progress

import "github.com/abhisek/healthquest/internal/calendar"

// Reconcile applies the lazy date rollover for today: the same-day counters
// restart and daily quests from another day are discarded. It reports
// whether anything changed so the caller knows to persist.
func Reconcile(st *State, today calendar.Date) bool {
	changed := false
	if st.Today.Date != today {
		st.Today = TodayProgress{Date: today}
		changed = true
	}
	if !st.DailyQuest.Date.IsZero() && st.DailyQuest.Date != today {
		st.DailyQuest = DailyQuest{}
		changed = true
	}
	for node, q := range st.PastQuests {
		if q.Date != today {
			delete(st.PastQuests, node)
			changed = true
		}
	}
	return changed
}
