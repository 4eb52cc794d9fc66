// Package quest picks the daily tiles for a journey node.
package quest

import (
	"math/rand"

	"github.com/abhisek/healthquest/internal/content"
)

// DailyQuestSize is the number of tiles in a daily quest.
const DailyQuestSize = 3

// Generator selects quest tiles from the catalog.
type Generator struct {
	catalog *content.Catalog
	rng     *rand.Rand
}

// NewGenerator creates a Generator drawing randomness from rng.
func NewGenerator(catalog *content.Catalog, rng *rand.Rand) *Generator {
	return &Generator{catalog: catalog, rng: rng}
}

// Generate returns up to DailyQuestSize tile ids for node. Tiles the
// learner has not completed are preferred: first those unlocked at level,
// then any other unfinished tile of the node. Completed tiles are reused only
// when nothing else is left. An empty result is valid.
func (g *Generator) Generate(node content.Node, level int, completed func(id string) bool) []string {
	pool := g.Pool(node)
	fresh, done := partition(FilterByLevel(pool, level), completed)

	chosen := fresh
	if len(chosen) == 0 {
		// Zone nodes complete only when every tile is done, including
		// those above the level gate.
		chosen, _ = partition(pool, completed)
	}
	if len(chosen) == 0 {
		chosen = done
	}
	if len(chosen) == 0 {
		return []string{}
	}

	g.rng.Shuffle(len(chosen), func(i, j int) { chosen[i], chosen[j] = chosen[j], chosen[i] })
	return chosen[:min(DailyQuestSize, len(chosen))]
}

func partition(pool []content.Question, completed func(id string) bool) (fresh, done []string) {
	for _, q := range pool {
		if completed != nil && completed(q.ID) {
			done = append(done, q.ID)
		} else {
			fresh = append(fresh, q.ID)
		}
	}
	return fresh, done
}

// Pool returns the candidate tiles for node before level filtering.
func (g *Generator) Pool(node content.Node) []content.Question {
	if node.IsMixed() {
		return g.catalog.Questions()
	}
	return g.catalog.ZoneQuestions(node.Zone)
}

// AllowedDifficulties returns the difficulty tiers unlocked at level.
func AllowedDifficulties(level int) []content.Difficulty {
	switch {
	case level <= 2:
		return []content.Difficulty{content.DifficultyBasic}
	case level <= 4:
		return []content.Difficulty{content.DifficultyBasic, content.DifficultyCore}
	default:
		return content.AllDifficulties()
	}
}

// FilterByLevel keeps the tiles whose difficulty is unlocked at level. At
// basic-only levels, when fewer than DailyQuestSize tiles survive, the
// unfiltered pool is returned so a quest can still be filled.
func FilterByLevel(pool []content.Question, level int) []content.Question {
	allowed := make(map[content.Difficulty]bool)
	for _, d := range AllowedDifficulties(level) {
		allowed[d] = true
	}

	var out []content.Question
	for _, q := range pool {
		if allowed[q.Difficulty] {
			out = append(out, q)
		}
	}
	if len(out) < DailyQuestSize && level <= 2 {
		return pool
	}
	return out
}
