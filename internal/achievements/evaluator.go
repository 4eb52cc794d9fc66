// Package achievements unlocks one-time badges from the progression state.
package achievements

import (
	"github.com/abhisek/healthquest/internal/content"
	"github.com/abhisek/healthquest/internal/journey"
	"github.com/abhisek/healthquest/internal/progress"
)

// Status is an achievement together with how close the learner is.
type Status struct {
	Achievement content.Achievement
	Unlocked    bool
	Progress    int
	Target      int
}

// Evaluator checks achievement rules against a state.
type Evaluator struct {
	catalog *content.Catalog
}

// NewEvaluator creates an Evaluator over the catalog's definitions.
func NewEvaluator(catalog *content.Catalog) *Evaluator {
	return &Evaluator{catalog: catalog}
}

// Evaluate unlocks every achievement whose rule now holds and returns the
// ones unlocked by this call, in catalog order. Already unlocked
// achievements are never returned again.
func (e *Evaluator) Evaluate(st *progress.State) []content.Achievement {
	var unlocked []content.Achievement
	for _, a := range e.catalog.Achievements() {
		if st.HasAchievement(a.ID) {
			continue
		}
		cur, target := e.measure(a.Rule, st)
		if cur >= target && st.UnlockAchievement(a.ID) {
			unlocked = append(unlocked, a)
		}
	}
	return unlocked
}

// Status returns every achievement with its progress, in catalog order.
func (e *Evaluator) Status(st *progress.State) []Status {
	defs := e.catalog.Achievements()
	out := make([]Status, len(defs))
	for i, a := range defs {
		cur, target := e.measure(a.Rule, st)
		out[i] = Status{
			Achievement: a,
			Unlocked:    st.HasAchievement(a.ID),
			Progress:    min(cur, target),
			Target:      target,
		}
	}
	return out
}

// UnlockedCount returns how many of the catalog's achievements are held.
func (e *Evaluator) UnlockedCount(st *progress.State) int {
	n := 0
	for _, a := range e.catalog.Achievements() {
		if st.HasAchievement(a.ID) {
			n++
		}
	}
	return n
}

// measure returns the current value and the unlock threshold for rule.
// Unknown rule kinds can never be met.
func (e *Evaluator) measure(rule content.Rule, st *progress.State) (current, target int) {
	target = max(rule.Count, 1)
	switch rule.Kind {
	case content.RuleTotalTiles:
		return len(st.Completed), target
	case content.RuleZoneTiles:
		n := 0
		for _, q := range e.catalog.ZoneQuestions(rule.Zone) {
			if st.IsCompleted(q.ID) {
				n++
			}
		}
		return n, target
	case content.RuleStreak:
		return st.Streak, target
	case content.RuleLevel:
		return st.Level(), target
	case content.RuleTotalXP:
		return st.TotalXP, target
	case content.RuleNodesCompleted:
		return len(st.CompletedNodes), target
	case content.RuleMapCleared:
		return boolToInt(journey.MapCleared(st)), 1
	case content.RuleBossCleared:
		return boolToInt(!st.BossLastCompleted.IsZero()), 1
	default:
		return 0, target
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
