// Package progress owns the learner's progression record: XP, completed
// tiles, streak, journey position, play history and unlocked achievements.
package progress

import (
	"slices"
	"sort"

	"github.com/abhisek/healthquest/internal/calendar"
)

// MaxNodeIndex is the last journey stop.
const MaxNodeIndex = 9

// PlayDateWindow is how many days of play history are kept.
const PlayDateWindow = 30

// DailyQuest is the tile selection for one node on one calendar date.
type DailyQuest struct {
	Date  calendar.Date
	Node  int
	Tiles []string
}

// IsFor reports whether the quest was generated for node on today.
func (q DailyQuest) IsFor(today calendar.Date, node int) bool {
	return !q.Date.IsZero() && q.Date == today && q.Node == node
}

// QuestFor returns the stored quest for node on today, if any.
func (s *State) QuestFor(today calendar.Date, node int) (DailyQuest, bool) {
	if s.DailyQuest.IsFor(today, node) {
		return s.DailyQuest, true
	}
	if q, ok := s.PastQuests[node]; ok && q.IsFor(today, node) {
		return q, true
	}
	return DailyQuest{}, false
}

// StoreQuest keeps q for the rest of its day. A quest for the current node
// replaces DailyQuest; a same-day quest it displaces for another node moves
// to PastQuests so that node keeps its tiles.
func (s *State) StoreQuest(q DailyQuest) {
	if s.PastQuests == nil {
		s.PastQuests = make(map[int]DailyQuest)
	}
	if q.Node != s.CurrentNodeIndex {
		s.PastQuests[q.Node] = q
		return
	}
	old := s.DailyQuest
	if old.Date == q.Date && !old.Date.IsZero() && old.Node != q.Node {
		s.PastQuests[old.Node] = old
	}
	delete(s.PastQuests, q.Node)
	s.DailyQuest = q
}

// TodayProgress is the same-day rolling counter shown on the home screen.
type TodayProgress struct {
	Date           calendar.Date
	TilesCompleted int
	XPEarned       int
}

// State is the single progression record of a device.
//
// Completed is the one set of tile ids ever answered correctly. It drives
// both at-most-once XP awards and no-repeat quest selection.
type State struct {
	TotalXP              int
	Completed            map[string]bool
	LastPlayDate         calendar.Date
	Streak               int
	CurrentNodeIndex     int
	CompletedNodes       map[int]bool
	PlayDates            []calendar.Date    // sorted ascending, distinct
	UnlockedAchievements []string           // unlock order
	DailyQuest           DailyQuest         // quest of the current node
	PastQuests           map[int]DailyQuest // today's quests of nodes behind it
	Today                TodayProgress
	BossLastCompleted    calendar.Date
	OnboardingSeen       bool
}

// NewState returns the first-run defaults.
func NewState() *State {
	return &State{
		Completed:      make(map[string]bool),
		CompletedNodes: make(map[int]bool),
		PastQuests:     make(map[int]DailyQuest),
	}
}

// Level returns the level derived from TotalXP.
func (s *State) Level() int {
	return Level(s.TotalXP)
}

// IsCompleted reports whether the tile was ever answered correctly.
func (s *State) IsCompleted(id string) bool {
	return s.Completed[id]
}

// MarkCompleted adds id to the completed set and reports whether it is new.
func (s *State) MarkCompleted(id string) bool {
	if s.Completed[id] {
		return false
	}
	s.Completed[id] = true
	return true
}

// CompletedIDs returns the completed set sorted.
func (s *State) CompletedIDs() []string {
	return sortedKeys(s.Completed)
}

// CompleteNode marks a node cleared and reports whether it is new.
func (s *State) CompleteNode(index int) bool {
	if s.CompletedNodes[index] {
		return false
	}
	s.CompletedNodes[index] = true
	return true
}

// CompletedNodeList returns the cleared node indices sorted.
func (s *State) CompletedNodeList() []int {
	nodes := make([]int, 0, len(s.CompletedNodes))
	for n := range s.CompletedNodes {
		nodes = append(nodes, n)
	}
	sort.Ints(nodes)
	return nodes
}

// AdvanceNode moves the current node forward by exactly one, capped at the
// last stop. It reports whether the index changed.
func (s *State) AdvanceNode() bool {
	if s.CurrentNodeIndex >= MaxNodeIndex {
		return false
	}
	s.CurrentNodeIndex++
	return true
}

// HasAchievement reports whether the achievement is unlocked.
func (s *State) HasAchievement(id string) bool {
	return slices.Contains(s.UnlockedAchievements, id)
}

// UnlockAchievement records id and reports whether it was new.
func (s *State) UnlockAchievement(id string) bool {
	if s.HasAchievement(id) {
		return false
	}
	s.UnlockedAchievements = append(s.UnlockedAchievements, id)
	return true
}

// RecordPlayDate adds today to the play history and drops dates that fell
// out of the rolling window.
func (s *State) RecordPlayDate(today calendar.Date) {
	if !slices.Contains(s.PlayDates, today) {
		s.PlayDates = append(s.PlayDates, today)
	}
	s.PlayDates = prunePlayDates(s.PlayDates, today)
}

// PlayDaysWithin counts distinct play dates in the trailing window of days
// ending today (today included).
func (s *State) PlayDaysWithin(today calendar.Date, days int) int {
	n := 0
	for _, d := range s.PlayDates {
		age := today.DaysSince(d)
		if age >= 0 && age < days {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	c := *s
	c.Completed = make(map[string]bool, len(s.Completed))
	for k, v := range s.Completed {
		c.Completed[k] = v
	}
	c.CompletedNodes = make(map[int]bool, len(s.CompletedNodes))
	for k, v := range s.CompletedNodes {
		c.CompletedNodes[k] = v
	}
	c.PlayDates = slices.Clone(s.PlayDates)
	c.UnlockedAchievements = slices.Clone(s.UnlockedAchievements)
	c.DailyQuest.Tiles = slices.Clone(s.DailyQuest.Tiles)
	c.PastQuests = make(map[int]DailyQuest, len(s.PastQuests))
	for k, q := range s.PastQuests {
		q.Tiles = slices.Clone(q.Tiles)
		c.PastQuests[k] = q
	}
	return &c
}

func prunePlayDates(dates []calendar.Date, today calendar.Date) []calendar.Date {
	kept := dates[:0]
	for _, d := range dates {
		if today.DaysSince(d) < PlayDateWindow {
			kept = append(kept, d)
		}
	}
	sortDates(kept)
	if len(kept) > PlayDateWindow {
		kept = kept[len(kept)-PlayDateWindow:]
	}
	return kept
}

func sortDates(dates []calendar.Date) {
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k, ok := range m {
		if ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
