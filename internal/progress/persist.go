package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/abhisek/healthquest/internal/calendar"
	"github.com/abhisek/healthquest/internal/store"
)

// Storage keys. Each is written independently; nothing groups them.
const (
	KeyTotalXP                 = "totalXP"
	KeyCompletedQuestions      = "completedQuestions"
	KeyLastPlayDate            = "lastPlayDate"
	KeyStreak                  = "streak"
	KeyCurrentNodeIndex        = "currentNodeIndex"
	KeyCompletedNodes          = "completedNodes"
	KeyCompletedTiles          = "completedTiles"
	KeyUnlockedAchievements    = "unlockedAchievements"
	KeyPlayDates               = "playDates"
	KeyDailyQuestDate          = "dailyQuestDate"
	KeyDailyQuestTiles         = "dailyQuestTiles"
	KeyDailyQuestNode          = "dailyQuestNode"
	KeyPastQuests              = "pastQuests"
	KeyTodayProgress           = "todayProgress"
	KeyWeeklyBossLastCompleted = "weeklyBossLastCompleted"
	KeyOnboardingSeen          = "onboardingSeen"
)

type questJSON struct {
	Date  string   `json:"date"`
	Node  int      `json:"node"`
	Tiles []string `json:"tiles"`
}

type todayProgressJSON struct {
	Date           string `json:"date"`
	TilesCompleted int    `json:"tilesCompleted"`
	XPEarned       int    `json:"xpEarned"`
}

// Load reads the state from kv. Missing or unparsable values fall back to
// their first-run default; only storage I/O failures are returned.
func Load(ctx context.Context, kv store.KV) (*State, error) {
	r := &reader{ctx: ctx, kv: kv}
	st := NewState()

	st.TotalXP = max(r.int(KeyTotalXP), 0)
	st.Streak = max(r.int(KeyStreak), 0)
	st.CurrentNodeIndex = min(max(r.int(KeyCurrentNodeIndex), 0), MaxNodeIndex)
	st.LastPlayDate = r.date(KeyLastPlayDate)
	st.BossLastCompleted = r.date(KeyWeeklyBossLastCompleted)
	st.OnboardingSeen = r.bool(KeyOnboardingSeen)

	// Older saves wrote two near-identical sets; either one counts.
	for _, key := range []string{KeyCompletedQuestions, KeyCompletedTiles} {
		for _, id := range r.strings(key) {
			if id != "" {
				st.Completed[id] = true
			}
		}
	}

	var nodes []int
	r.json(KeyCompletedNodes, &nodes)
	for _, n := range nodes {
		if n >= 0 && n <= st.CurrentNodeIndex {
			st.CompletedNodes[n] = true
		}
	}

	for _, id := range r.strings(KeyUnlockedAchievements) {
		if id != "" && !st.HasAchievement(id) {
			st.UnlockedAchievements = append(st.UnlockedAchievements, id)
		}
	}

	for _, s := range r.strings(KeyPlayDates) {
		if d, err := calendar.Parse(s); err == nil {
			st.PlayDates = append(st.PlayDates, d)
		}
	}
	st.PlayDates = dedupeDates(st.PlayDates)

	if d := r.date(KeyDailyQuestDate); !d.IsZero() {
		st.DailyQuest = DailyQuest{
			Date:  d,
			Node:  r.int(KeyDailyQuestNode),
			Tiles: r.strings(KeyDailyQuestTiles),
		}
	}

	var past []questJSON
	r.json(KeyPastQuests, &past)
	for _, q := range past {
		d, err := calendar.Parse(q.Date)
		if err != nil || q.Node < 0 || q.Node >= st.CurrentNodeIndex {
			continue
		}
		st.PastQuests[q.Node] = DailyQuest{Date: d, Node: q.Node, Tiles: q.Tiles}
	}

	var tp todayProgressJSON
	if r.json(KeyTodayProgress, &tp) {
		if d, err := calendar.Parse(tp.Date); err == nil {
			st.Today = TodayProgress{
				Date:           d,
				TilesCompleted: max(tp.TilesCompleted, 0),
				XPEarned:       max(tp.XPEarned, 0),
			}
		}
	}

	if r.err != nil {
		return nil, r.err
	}
	return st, nil
}

// Save writes every key. A failed write does not stop the others; all
// failures are returned joined.
func Save(ctx context.Context, kv store.KV, st *State) error {
	completed := mustJSON(st.CompletedIDs())
	playDates := make([]string, len(st.PlayDates))
	for i, d := range st.PlayDates {
		playDates[i] = d.String()
	}
	tiles := st.DailyQuest.Tiles
	if tiles == nil {
		tiles = []string{}
	}
	past := make([]questJSON, 0, len(st.PastQuests))
	for _, q := range st.PastQuests {
		t := q.Tiles
		if t == nil {
			t = []string{}
		}
		past = append(past, questJSON{Date: q.Date.String(), Node: q.Node, Tiles: t})
	}
	sort.Slice(past, func(i, j int) bool { return past[i].Node < past[j].Node })
	unlocked := st.UnlockedAchievements
	if unlocked == nil {
		unlocked = []string{}
	}

	values := []struct{ key, value string }{
		{KeyTotalXP, strconv.Itoa(st.TotalXP)},
		{KeyCompletedQuestions, completed},
		{KeyCompletedTiles, completed},
		{KeyLastPlayDate, st.LastPlayDate.String()},
		{KeyStreak, strconv.Itoa(st.Streak)},
		{KeyCurrentNodeIndex, strconv.Itoa(st.CurrentNodeIndex)},
		{KeyCompletedNodes, mustJSON(st.CompletedNodeList())},
		{KeyUnlockedAchievements, mustJSON(unlocked)},
		{KeyPlayDates, mustJSON(playDates)},
		{KeyDailyQuestDate, st.DailyQuest.Date.String()},
		{KeyDailyQuestTiles, mustJSON(tiles)},
		{KeyDailyQuestNode, strconv.Itoa(st.DailyQuest.Node)},
		{KeyPastQuests, mustJSON(past)},
		{KeyTodayProgress, mustJSON(todayProgressJSON{
			Date:           st.Today.Date.String(),
			TilesCompleted: st.Today.TilesCompleted,
			XPEarned:       st.Today.XPEarned,
		})},
		{KeyWeeklyBossLastCompleted, st.BossLastCompleted.String()},
		{KeyOnboardingSeen, strconv.FormatBool(st.OnboardingSeen)},
	}

	var errs []error
	for _, v := range values {
		if err := kv.Set(ctx, v.key, v.value); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("save progress: %w", errors.Join(errs...))
	}
	return nil
}

// reader decodes individual keys, remembering only the first I/O error.
type reader struct {
	ctx context.Context
	kv  store.KV
	err error
}

func (r *reader) raw(key string) (string, bool) {
	if r.err != nil {
		return "", false
	}
	v, ok, err := r.kv.Get(r.ctx, key)
	if err != nil {
		r.err = fmt.Errorf("load %s: %w", key, err)
		return "", false
	}
	return v, ok && v != ""
}

func (r *reader) int(key string) int {
	v, ok := r.raw(key)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func (r *reader) bool(key string) bool {
	v, ok := r.raw(key)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func (r *reader) date(key string) calendar.Date {
	v, ok := r.raw(key)
	if !ok {
		return calendar.Date{}
	}
	d, err := calendar.Parse(v)
	if err != nil {
		return calendar.Date{}
	}
	return d
}

func (r *reader) json(key string, target any) bool {
	v, ok := r.raw(key)
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(v), target) == nil
}

func (r *reader) strings(key string) []string {
	var out []string
	if !r.json(key, &out) {
		return nil
	}
	return out
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		// Only slices of strings/ints and flat structs reach here.
		panic(fmt.Sprintf("marshal %T: %v", v, err))
	}
	return string(b)
}

func dedupeDates(dates []calendar.Date) []calendar.Date {
	seen := make(map[calendar.Date]bool, len(dates))
	out := dates[:0]
	for _, d := range dates {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		return nil
	}
	sortDates(out)
	return out
}
