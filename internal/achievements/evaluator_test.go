package achievements

import (
	"testing"

	"github.com/abhisek/healthquest/internal/calendar"
	"github.com/abhisek/healthquest/internal/content"
	"github.com/abhisek/healthquest/internal/progress"
)

func ids(as []content.Achievement) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.ID
	}
	return out
}

func TestEvaluateFreshStateUnlocksNothing(t *testing.T) {
	e := NewEvaluator(content.Default())
	if got := e.Evaluate(progress.NewState()); len(got) != 0 {
		t.Errorf("unlocked %v on a fresh state", ids(got))
	}
}

func TestEvaluateFiresOnce(t *testing.T) {
	e := NewEvaluator(content.Default())
	st := progress.NewState()
	st.MarkCompleted("sleep-1")

	first := e.Evaluate(st)
	if len(first) != 1 || first[0].ID != "first-steps" {
		t.Fatalf("first pass = %v, want [first-steps]", ids(first))
	}
	if again := e.Evaluate(st); len(again) != 0 {
		t.Errorf("second pass re-reported %v", ids(again))
	}
	if len(st.UnlockedAchievements) != 1 {
		t.Errorf("unlocked list = %v", st.UnlockedAchievements)
	}
}

func TestEvaluateReportsBatchTogether(t *testing.T) {
	e := NewEvaluator(content.Default())
	st := progress.NewState()
	for _, id := range []string{"sleep-1", "sleep-2", "sleep-3"} {
		st.MarkCompleted(id)
	}
	st.Streak = 3

	got := ids(e.Evaluate(st))
	want := []string{"first-steps", "sleep-scholar", "streak-3"}
	if len(got) != len(want) {
		t.Fatalf("unlocked %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("unlocked[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestEvaluateRules(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*progress.State)
		want  string
	}{
		{"streak 7", func(s *progress.State) { s.Streak = 7 }, "streak-7"},
		{"level 5", func(s *progress.State) { s.TotalXP = 400 }, "level-5"},
		{"xp 500", func(s *progress.State) { s.TotalXP = 500 }, "xp-500"},
		{"halfway", func(s *progress.State) {
			s.CurrentNodeIndex = 5
			for i := 0; i < 5; i++ {
				s.CompleteNode(i)
			}
		}, "halfway"},
		{"map cleared", func(s *progress.State) {
			s.CurrentNodeIndex = 9
			s.CompleteNode(9)
		}, "map-cleared"},
		{"boss", func(s *progress.State) { s.BossLastCompleted = calendar.MustParse("2024-01-01") }, "boss-slayer"},
		{"hydration", func(s *progress.State) {
			for _, id := range []string{"hydration-1", "hydration-2", "hydration-3", "hydration-4"} {
				s.MarkCompleted(id)
			}
		}, "hydration-hero"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEvaluator(content.Default())
			st := progress.NewState()
			tt.setup(st)
			e.Evaluate(st)
			if !st.HasAchievement(tt.want) {
				t.Errorf("%s not unlocked, have %v", tt.want, st.UnlockedAchievements)
			}
		})
	}
}

func TestStatusProgress(t *testing.T) {
	e := NewEvaluator(content.Default())
	st := progress.NewState()
	st.MarkCompleted("sleep-1")
	st.MarkCompleted("sleep-2")
	st.Streak = 12
	e.Evaluate(st)

	byID := make(map[string]Status)
	for _, s := range e.Status(st) {
		byID[s.Achievement.ID] = s
	}
	if s := byID["sleep-scholar"]; s.Unlocked || s.Progress != 2 || s.Target != 3 {
		t.Errorf("sleep-scholar = %+v", s)
	}
	if s := byID["streak-7"]; !s.Unlocked || s.Progress != 7 {
		t.Errorf("streak-7 = %+v, want unlocked and capped at target", s)
	}
	if s := byID["map-cleared"]; s.Target != 1 || s.Progress != 0 {
		t.Errorf("map-cleared = %+v", s)
	}
	if got := e.UnlockedCount(st); got != 3 {
		t.Errorf("UnlockedCount = %d, want 3", got)
	}
}

func TestUnknownRuleNeverUnlocks(t *testing.T) {
	nodes := make([]content.Node, content.NodeCount)
	for i := range nodes {
		nodes[i] = content.Node{Name: "n", Zone: content.ZoneMixed}
	}
	c, err := content.New(nil, nil, nodes, []content.Achievement{
		{ID: "mystery", Rule: content.Rule{Kind: "moon_phase"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	st := progress.NewState()
	st.TotalXP = 99999
	if got := NewEvaluator(c).Evaluate(st); len(got) != 0 {
		t.Errorf("unknown rule unlocked %v", ids(got))
	}
}

func TestIconFallback(t *testing.T) {
	if Icon("nope") != "✦" {
		t.Error("unknown kind should use the fallback icon")
	}
	if Icon(content.RuleStreak) == Icon("nope") {
		t.Error("streak should have its own icon")
	}
}
