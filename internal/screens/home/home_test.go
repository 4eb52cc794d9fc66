package home

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/healthquest/internal/calendar"
	"github.com/abhisek/healthquest/internal/content"
	"github.com/abhisek/healthquest/internal/engine"
	"github.com/abhisek/healthquest/internal/router"
	"github.com/abhisek/healthquest/internal/store"
)

func newTestEngine() *engine.Engine {
	return engine.New(store.NewMemoryKV(), content.Default(),
		engine.WithClock(calendar.NewFixedClock("2024-01-01")),
		engine.WithRand(rand.New(rand.NewSource(1))),
	)
}

func TestFreshHome(t *testing.T) {
	h := New(newTestEngine())
	if h.stats.level != 1 || h.stats.xp != 0 || h.stats.streak != 0 {
		t.Errorf("stats = %+v, want level 1 with no XP", h.stats)
	}
	if !h.menu.Items[itemBoss].Disabled {
		t.Error("weekly boss should be disabled on a fresh state")
	}
	if mascotFor(h.stats) != MascotIdle {
		t.Error("fresh state should show the idle mascot")
	}
	view := h.View(120, 40)
	for _, want := range []string{"CONTINUE JOURNEY", "WEEKLY BOSS", "LV 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestContinuePushesQuest(t *testing.T) {
	h := New(newTestEngine())
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter on CONTINUE JOURNEY should push a screen")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if push.Screen.Title() != "Daily Quest" {
		t.Errorf("pushed %q", push.Screen.Title())
	}
}

func TestDownSkipsDisabledBoss(t *testing.T) {
	h := New(newTestEngine())
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if h.menu.Selected != itemAchievements {
		t.Errorf("Selected = %d, want %d", h.menu.Selected, itemAchievements)
	}
}

func TestRefreshPicksUpProgress(t *testing.T) {
	eng := newTestEngine()
	h := New(eng)

	ctx := context.Background()
	quest, err := eng.GetDailyQuest(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	q := quest.Tiles[0].Question
	if _, err := eng.SubmitAnswer(ctx, q.ID, q.CorrectIndex); err != nil {
		t.Fatal(err)
	}

	h.Refresh()
	if h.stats.xp != q.XP || h.stats.todayTiles != 1 || h.stats.streak != 1 {
		t.Errorf("stats = %+v after one tile", h.stats)
	}
	if mascotFor(h.stats) != MascotCelebrating {
		t.Error("mascot should celebrate after playing today")
	}
}
