package progress

import (
	"testing"

	"github.com/abhisek/healthquest/internal/calendar"
)

func TestUpdateStreak(t *testing.T) {
	tests := []struct {
		name       string
		last       string
		streak     int
		today      string
		wantStreak int
		wantChange StreakChange
	}{
		{"first play", "", 0, "2024-01-01", 1, StreakStarted},
		{"same day", "2024-01-01", 3, "2024-01-01", 3, StreakUnchanged},
		{"next day", "2024-01-01", 3, "2024-01-02", 4, StreakContinued},
		{"gap", "2024-01-01", 3, "2024-01-05", 1, StreakReset},
		{"two day gap", "2024-01-01", 9, "2024-01-03", 1, StreakReset},
		{"clock moved back", "2024-01-05", 4, "2024-01-03", 1, StreakReset},
		{"month boundary", "2024-01-31", 2, "2024-02-01", 3, StreakContinued},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewState()
			st.Streak = tt.streak
			if tt.last != "" {
				st.LastPlayDate = calendar.MustParse(tt.last)
			}
			today := calendar.MustParse(tt.today)

			change := UpdateStreak(st, today)
			if change != tt.wantChange {
				t.Errorf("change = %q, want %q", change, tt.wantChange)
			}
			if st.Streak != tt.wantStreak {
				t.Errorf("streak = %d, want %d", st.Streak, tt.wantStreak)
			}
			if st.LastPlayDate != today {
				t.Errorf("lastPlayDate = %s, want %s", st.LastPlayDate, today)
			}
		})
	}
}

func TestUpdateStreakIdempotent(t *testing.T) {
	st := NewState()
	st.LastPlayDate = calendar.MustParse("2024-01-01")
	st.Streak = 5
	today := calendar.MustParse("2024-01-02")

	UpdateStreak(st, today)
	UpdateStreak(st, today)
	UpdateStreak(st, today)

	if st.Streak != 6 {
		t.Errorf("streak = %d after repeated calls, want 6", st.Streak)
	}
}

func TestStreakNeverResetsToZero(t *testing.T) {
	st := NewState()
	day := calendar.MustParse("2024-01-01")
	for _, gap := range []int{1, 3, 1, 10, -4, 1} {
		day = day.AddDays(gap)
		UpdateStreak(st, day)
		if st.Streak < 1 {
			t.Fatalf("streak dropped to %d", st.Streak)
		}
	}
}
