package quest

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/abhisek/healthquest/internal/content"
)

func testCatalog(t *testing.T, perZone map[content.Zone][]content.Difficulty) *content.Catalog {
	t.Helper()
	var zones []content.ZoneInfo
	var questions []content.Question
	for _, z := range []content.Zone{"sleep", "stress"} {
		zones = append(zones, content.ZoneInfo{ID: z, Name: string(z)})
		for i, d := range perZone[z] {
			questions = append(questions, content.Question{
				ID:           fmt.Sprintf("%s-%d", z, i+1),
				Zone:         z,
				Difficulty:   d,
				Prompt:       "?",
				Options:      []string{"a", "b"},
				CorrectIndex: 0,
				XP:           10,
			})
		}
	}
	nodes := make([]content.Node, content.NodeCount)
	for i := range nodes {
		nodes[i] = content.Node{Name: fmt.Sprintf("n%d", i), Zone: content.ZoneMixed}
	}
	nodes[0].Zone = "sleep"
	nodes[1].Zone = "stress"

	c, err := content.New(zones, questions, nodes, nil)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return c
}

func repeat(d content.Difficulty, n int) []content.Difficulty {
	out := make([]content.Difficulty, n)
	for i := range out {
		out[i] = d
	}
	return out
}

func TestGeneratePrefersUncompleted(t *testing.T) {
	c := testCatalog(t, map[content.Zone][]content.Difficulty{
		"sleep": repeat(content.DifficultyBasic, 5),
	})
	done := map[string]bool{"sleep-1": true, "sleep-2": true, "sleep-3": true, "sleep-4": true}
	node, _ := c.Node(0)

	for seed := int64(0); seed < 20; seed++ {
		g := NewGenerator(c, rand.New(rand.NewSource(seed)))
		got := g.Generate(node, 1, func(id string) bool { return done[id] })
		if len(got) != 1 || got[0] != "sleep-5" {
			t.Fatalf("seed %d: got %v, want [sleep-5]", seed, got)
		}
	}
}

func TestGenerateFallsBackToCompletedWhenExhausted(t *testing.T) {
	c := testCatalog(t, map[content.Zone][]content.Difficulty{
		"sleep": repeat(content.DifficultyBasic, 4),
	})
	node, _ := c.Node(0)
	g := NewGenerator(c, rand.New(rand.NewSource(1)))

	got := g.Generate(node, 1, func(string) bool { return true })
	if len(got) != DailyQuestSize {
		t.Fatalf("got %d tiles, want %d", len(got), DailyQuestSize)
	}
}

func TestGenerateOffersTilesAboveLevelBeforeRepeating(t *testing.T) {
	c := testCatalog(t, map[content.Zone][]content.Difficulty{
		"sleep": {content.DifficultyBasic, content.DifficultyBasic, content.DifficultyCore, content.DifficultyChallenge},
	})
	done := map[string]bool{"sleep-1": true, "sleep-2": true, "sleep-3": true}
	node, _ := c.Node(0)

	for seed := int64(0); seed < 20; seed++ {
		g := NewGenerator(c, rand.New(rand.NewSource(seed)))
		got := g.Generate(node, 3, func(id string) bool { return done[id] })
		if len(got) != 1 || got[0] != "sleep-4" {
			t.Fatalf("seed %d: got %v, want [sleep-4]", seed, got)
		}
	}
}

func TestGenerateEmptyPool(t *testing.T) {
	c := testCatalog(t, map[content.Zone][]content.Difficulty{
		"sleep": repeat(content.DifficultyBasic, 3),
	})
	node, _ := c.Node(1) // stress has no tiles
	g := NewGenerator(c, rand.New(rand.NewSource(1)))

	got := g.Generate(node, 1, nil)
	if got == nil || len(got) != 0 {
		t.Errorf("got %#v, want empty non-nil slice", got)
	}
}

func TestGenerateNoDuplicates(t *testing.T) {
	c := testCatalog(t, map[content.Zone][]content.Difficulty{
		"sleep":  repeat(content.DifficultyBasic, 6),
		"stress": repeat(content.DifficultyBasic, 6),
	})
	node, _ := c.Node(5) // mixed
	g := NewGenerator(c, rand.New(rand.NewSource(7)))

	for i := 0; i < 50; i++ {
		got := g.Generate(node, 1, nil)
		sorted := slices.Clone(got)
		slices.Sort(sorted)
		if len(slices.Compact(sorted)) != len(got) {
			t.Fatalf("duplicate tiles in %v", got)
		}
	}
}

func TestGenerateSeededDeterminism(t *testing.T) {
	c := testCatalog(t, map[content.Zone][]content.Difficulty{
		"sleep":  repeat(content.DifficultyBasic, 6),
		"stress": repeat(content.DifficultyBasic, 6),
	})
	node, _ := c.Node(6)

	a := NewGenerator(c, rand.New(rand.NewSource(42))).Generate(node, 1, nil)
	b := NewGenerator(c, rand.New(rand.NewSource(42))).Generate(node, 1, nil)
	if !slices.Equal(a, b) {
		t.Errorf("same seed gave %v and %v", a, b)
	}
}

func TestGenerateCoversWholePool(t *testing.T) {
	c := testCatalog(t, map[content.Zone][]content.Difficulty{
		"sleep": repeat(content.DifficultyBasic, 6),
	})
	node, _ := c.Node(0)
	g := NewGenerator(c, rand.New(rand.NewSource(3)))

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		for _, id := range g.Generate(node, 1, nil) {
			seen[id] = true
		}
	}
	if len(seen) != 6 {
		t.Errorf("selection reached %d of 6 tiles", len(seen))
	}
}

func TestFilterByLevel(t *testing.T) {
	b, co, ch := content.DifficultyBasic, content.DifficultyCore, content.DifficultyChallenge
	pool := func(ds ...content.Difficulty) []content.Question {
		out := make([]content.Question, len(ds))
		for i, d := range ds {
			out[i] = content.Question{ID: fmt.Sprintf("q%d", i), Difficulty: d}
		}
		return out
	}

	tests := []struct {
		name  string
		pool  []content.Question
		level int
		want  int
	}{
		{"level 1 basic only", pool(b, b, b, co, ch), 1, 3},
		{"level 2 basic only", pool(b, b, b, b, co), 2, 4},
		{"level 2 too few basic falls back", pool(b, b, co, ch), 2, 4},
		{"level 3 basic and core", pool(b, b, co, ch), 3, 3},
		{"level 3 too few stays filtered", pool(b, co, ch, ch), 3, 2},
		{"level 4 basic and core", pool(b, co, co, co, ch, ch), 4, 4},
		{"level 5 everything", pool(b, co, ch), 5, 3},
		{"level 9 everything", pool(ch, ch, ch, ch), 9, 4},
		{"empty pool", nil, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FilterByLevel(tt.pool, tt.level); len(got) != tt.want {
				t.Errorf("FilterByLevel kept %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestGenerateZoneNodeStaysInZone(t *testing.T) {
	c := content.Default()
	g := NewGenerator(c, rand.New(rand.NewSource(11)))

	for _, node := range c.Nodes()[:6] {
		for _, level := range []int{1, 3, 5} {
			got := g.Generate(node, level, nil)
			if len(got) != DailyQuestSize {
				t.Fatalf("%s at level %d: %d tiles, want %d", node.Name, level, len(got), DailyQuestSize)
			}
			for _, id := range got {
				if q, _ := c.Question(id); q.Zone != node.Zone {
					t.Fatalf("tile %s from zone %s on %s node", id, q.Zone, node.Zone)
				}
			}
		}
	}
}
