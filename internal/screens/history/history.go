package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/healthquest/internal/engine"
	"github.com/abhisek/healthquest/internal/router"
	"github.com/abhisek/healthquest/internal/screen"
	"github.com/abhisek/healthquest/internal/store"
	"github.com/abhisek/healthquest/internal/ui/layout"
	"github.com/abhisek/healthquest/internal/ui/theme"
)

const historyLimit = 200

// entry is the group of events written by one engine call.
type entry struct {
	EventID string
	Events  []store.ProgressEventRecord // newest first
}

// XP sums the XP of every event in the group.
func (e entry) XP() int {
	total := 0
	for _, ev := range e.Events {
		total += ev.XP
	}
	return total
}

type historyLoadedMsg struct {
	Entries []entry
	Err     error
}

// HistoryScreen displays recent progress events grouped by action.
type HistoryScreen struct {
	eng      *engine.Engine
	entries  []entry
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eng *engine.Engine) *HistoryScreen {
	return &HistoryScreen{
		eng:      eng,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		records, err := s.eng.History(context.Background(), historyLimit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Entries: group(records)}
	}
}

// group folds records (newest first) into entries keyed by event id,
// preserving order of first appearance.
func group(records []store.ProgressEventRecord) []entry {
	var entries []entry
	index := make(map[string]int)
	for _, rec := range records {
		i, ok := index[rec.EventID]
		if !ok {
			i = len(entries)
			index[rec.EventID] = i
			entries = append(entries, entry{EventID: rec.EventID})
		}
		entries[i].Events = append(entries[i].Events, rec)
	}
	return entries
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.entries = msg.Entries
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.entries) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No history yet. Start a quest!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, e := range s.entries {
		head := e.Events[len(e.Events)-1]
		dateStr := head.Timestamp.Local().Format("Jan 02, 2006 15:04")

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		xpStr := ""
		if xp := e.XP(); xp > 0 {
			xpStr = fmt.Sprintf("  +%d XP", xp)
		}
		line := fmt.Sprintf("%s%s  %s%s", prefix, dateStr, headline(e), xpStr)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for j := len(e.Events) - 1; j >= 0; j-- {
				ev := e.Events[j]
				detail := fmt.Sprintf("    %s %s", kindIcon(ev.Kind), describe(ev))
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(kindColor(ev.Kind)).Render(detail)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

// headline summarizes a group by its most notable event.
func headline(e entry) string {
	priority := []string{
		engine.EventBossCompleted,
		engine.EventNodeCompleted,
		engine.EventLevelUp,
		engine.EventAchievementUnlocked,
		engine.EventBossStarted,
		engine.EventStateReset,
		engine.EventXPAwarded,
	}
	for _, kind := range priority {
		for _, ev := range e.Events {
			if ev.Kind == kind {
				return describe(ev)
			}
		}
	}
	return describe(e.Events[0])
}

func describe(ev store.ProgressEventRecord) string {
	switch ev.Kind {
	case engine.EventXPAwarded:
		return fmt.Sprintf("Cleared tile %s", ev.Subject)
	case engine.EventLevelUp:
		return fmt.Sprintf("Reached level %s", ev.Subject)
	case engine.EventNodeCompleted:
		return fmt.Sprintf("Cleared %s", ev.Detail)
	case engine.EventAchievementUnlocked:
		return fmt.Sprintf("Unlocked %s", ev.Detail)
	case engine.EventBossStarted:
		return "Challenged the weekly boss"
	case engine.EventBossCompleted:
		return fmt.Sprintf("Beat the weekly boss (%s)", ev.Detail)
	case engine.EventStateReset:
		return "Progress reset"
	}
	return ev.Kind
}

func kindIcon(kind string) string {
	switch kind {
	case engine.EventXPAwarded:
		return "◆"
	case engine.EventLevelUp:
		return "⬆"
	case engine.EventNodeCompleted:
		return "🏁"
	case engine.EventAchievementUnlocked:
		return "🏆"
	case engine.EventBossStarted, engine.EventBossCompleted:
		return "👹"
	}
	return "·"
}

func kindColor(kind string) color.Color {
	switch kind {
	case engine.EventXPAwarded:
		return theme.Accent
	case engine.EventLevelUp, engine.EventAchievementUnlocked:
		return theme.ArcadeYellow
	case engine.EventNodeCompleted:
		return theme.Success
	case engine.EventBossStarted, engine.EventBossCompleted:
		return theme.Boss
	}
	return theme.TextDim
}
