package progress

import (
	"testing"

	"github.com/abhisek/healthquest/internal/calendar"
)

func TestMarkCompletedOnce(t *testing.T) {
	st := NewState()
	if !st.MarkCompleted("sleep-1") {
		t.Error("first MarkCompleted should report new")
	}
	if st.MarkCompleted("sleep-1") {
		t.Error("second MarkCompleted should report not new")
	}
	if got := st.CompletedIDs(); len(got) != 1 || got[0] != "sleep-1" {
		t.Errorf("CompletedIDs = %v", got)
	}
}

func TestAdvanceNodeCapped(t *testing.T) {
	st := NewState()
	for i := 0; i < 20; i++ {
		st.AdvanceNode()
	}
	if st.CurrentNodeIndex != MaxNodeIndex {
		t.Errorf("CurrentNodeIndex = %d, want %d", st.CurrentNodeIndex, MaxNodeIndex)
	}
	if st.AdvanceNode() {
		t.Error("AdvanceNode at the last stop should report no change")
	}
}

func TestUnlockAchievementOnce(t *testing.T) {
	st := NewState()
	if !st.UnlockAchievement("streak-3") {
		t.Error("first unlock should be new")
	}
	if st.UnlockAchievement("streak-3") {
		t.Error("second unlock should not be new")
	}
	if len(st.UnlockedAchievements) != 1 {
		t.Errorf("unlocked = %v", st.UnlockedAchievements)
	}
}

func TestRecordPlayDateWindow(t *testing.T) {
	st := NewState()
	start := calendar.MustParse("2024-01-01")
	for i := 0; i < 45; i++ {
		st.RecordPlayDate(start.AddDays(i))
	}
	st.RecordPlayDate(start.AddDays(44)) // duplicate

	if len(st.PlayDates) != PlayDateWindow {
		t.Fatalf("PlayDates = %d, want %d", len(st.PlayDates), PlayDateWindow)
	}
	if st.PlayDates[0] != start.AddDays(15) {
		t.Errorf("oldest kept = %s, want %s", st.PlayDates[0], start.AddDays(15))
	}
	for i := 1; i < len(st.PlayDates); i++ {
		if !st.PlayDates[i-1].Before(st.PlayDates[i]) {
			t.Fatalf("PlayDates not strictly ascending at %d", i)
		}
	}
}

func TestPlayDaysWithin(t *testing.T) {
	st := NewState()
	today := calendar.MustParse("2024-03-10")
	for _, offset := range []int{0, -1, -3, -6, -7, -20} {
		st.RecordPlayDate(today.AddDays(offset))
	}
	if got := st.PlayDaysWithin(today, 7); got != 4 {
		t.Errorf("PlayDaysWithin(7) = %d, want 4", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	st := NewState()
	st.MarkCompleted("a")
	st.CompleteNode(0)
	st.DailyQuest.Tiles = []string{"a"}

	c := st.Clone()
	c.MarkCompleted("b")
	c.CompleteNode(1)
	c.DailyQuest.Tiles[0] = "z"

	if st.IsCompleted("b") || st.CompletedNodes[1] || st.DailyQuest.Tiles[0] != "a" {
		t.Error("mutating clone changed the original")
	}
}

func TestReconcile(t *testing.T) {
	st := NewState()
	day1 := calendar.MustParse("2024-01-01")
	day2 := day1.AddDays(1)

	if !Reconcile(st, day1) {
		t.Error("first reconcile should initialise today's progress")
	}
	st.Today.TilesCompleted = 2
	st.Today.XPEarned = 30
	st.DailyQuest = DailyQuest{Date: day1, Node: 0, Tiles: []string{"sleep-1"}}
	st.PastQuests[0] = DailyQuest{Date: day1, Node: 0, Tiles: []string{"sleep-2"}}

	if Reconcile(st, day1) {
		t.Error("same-day reconcile should be a no-op")
	}
	if st.Today.TilesCompleted != 2 || len(st.DailyQuest.Tiles) != 1 {
		t.Error("same-day reconcile must keep counters and quest")
	}

	if !Reconcile(st, day2) {
		t.Error("next-day reconcile should report a change")
	}
	if st.Today != (TodayProgress{Date: day2}) {
		t.Errorf("Today = %+v, want reset for %s", st.Today, day2)
	}
	if !st.DailyQuest.Date.IsZero() || st.DailyQuest.Tiles != nil {
		t.Errorf("stale daily quest kept: %+v", st.DailyQuest)
	}
	if len(st.PastQuests) != 0 {
		t.Errorf("stale past quests kept: %+v", st.PastQuests)
	}
}

func TestStoreQuest(t *testing.T) {
	day := calendar.MustParse("2024-01-01")
	st := NewState()
	st.CurrentNodeIndex = 6

	current := DailyQuest{Date: day, Node: 6, Tiles: []string{"a", "b", "c"}}
	st.StoreQuest(current)
	st.StoreQuest(DailyQuest{Date: day, Node: 2, Tiles: []string{"d"}})
	if got, ok := st.QuestFor(day, 6); !ok || got.Tiles[0] != "a" {
		t.Fatalf("current quest = %+v, %v", got, ok)
	}
	if got, ok := st.QuestFor(day, 2); !ok || got.Tiles[0] != "d" {
		t.Fatalf("past quest = %+v, %v", got, ok)
	}

	st.AdvanceNode()
	st.StoreQuest(DailyQuest{Date: day, Node: 7, Tiles: []string{"e"}})
	if got, ok := st.QuestFor(day, 6); !ok || len(got.Tiles) != 3 {
		t.Errorf("node 6 quest lost on advance: %+v, %v", got, ok)
	}
	if !st.DailyQuest.IsFor(day, 7) {
		t.Errorf("DailyQuest = %+v, want node 7", st.DailyQuest)
	}
	if _, ok := st.QuestFor(day.AddDays(1), 2); ok {
		t.Error("quest reported for another day")
	}
}
