package journeymap

import (
	"math/rand"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/healthquest/internal/calendar"
	"github.com/abhisek/healthquest/internal/content"
	"github.com/abhisek/healthquest/internal/engine"
	"github.com/abhisek/healthquest/internal/journey"
	"github.com/abhisek/healthquest/internal/router"
	"github.com/abhisek/healthquest/internal/store"
)

func newLoadedMap(t *testing.T) *MapScreen {
	t.Helper()
	eng := engine.New(store.NewMemoryKV(), content.Default(),
		engine.WithClock(calendar.NewFixedClock("2024-01-01")),
		engine.WithRand(rand.New(rand.NewSource(1))),
	)
	s := New(eng)
	s.Update(s.Init()())
	if !s.loaded || s.errMsg != "" {
		t.Fatalf("load failed: %q", s.errMsg)
	}
	return s
}

func TestFreshMapStatuses(t *testing.T) {
	s := newLoadedMap(t)
	if len(s.nodes) != 10 {
		t.Fatalf("nodes = %d, want 10", len(s.nodes))
	}
	if s.nodes[0].Status != journey.StatusCurrent {
		t.Errorf("node 0 = %s, want current", s.nodes[0].Status)
	}
	for _, ns := range s.nodes[1:] {
		if ns.Status != journey.StatusLocked {
			t.Errorf("node %d = %s, want locked", ns.Node.Index, ns.Status)
		}
	}
	if s.cursor != 0 {
		t.Errorf("cursor = %d, want 0", s.cursor)
	}
}

func TestEnterOnCurrentPushesQuest(t *testing.T) {
	s := newLoadedMap(t)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter on the current node should push a quest")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Errorf("expected PushScreenMsg, got %T", cmd())
	}
}

func TestEnterOnLockedIgnored(t *testing.T) {
	s := newLoadedMap(t)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", s.cursor)
	}
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("locked node should not open")
	}
}

func TestViewListsNodes(t *testing.T) {
	s := newLoadedMap(t)
	view := s.View(100, 40)
	for _, want := range []string{"Current", "Locked", " 1. "} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestRefreshReloads(t *testing.T) {
	s := newLoadedMap(t)
	cmd := s.Refresh()
	if cmd == nil {
		t.Fatal("Refresh should return a load command")
	}
	if _, ok := cmd().(nodesLoadedMsg); !ok {
		t.Errorf("expected nodesLoadedMsg, got %T", cmd())
	}
}
