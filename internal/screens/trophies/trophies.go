// Package trophies lists every achievement with its unlock progress.
package trophies

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/healthquest/internal/achievements"
	"github.com/abhisek/healthquest/internal/engine"
	"github.com/abhisek/healthquest/internal/router"
	"github.com/abhisek/healthquest/internal/screen"
	"github.com/abhisek/healthquest/internal/ui/components"
	"github.com/abhisek/healthquest/internal/ui/layout"
	"github.com/abhisek/healthquest/internal/ui/theme"
)

type filter int

const (
	filterAll filter = iota
	filterUnlocked
	filterLocked
	filterCount
)

func (f filter) label() string {
	switch f {
	case filterUnlocked:
		return "Unlocked"
	case filterLocked:
		return "Locked"
	}
	return "All"
}

type statusLoadedMsg struct {
	Statuses []achievements.Status
	Err      error
}

// TrophyScreen displays achievements grouped by a tab filter.
type TrophyScreen struct {
	eng          *engine.Engine
	all          []achievements.Status
	filter       filter
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*TrophyScreen)(nil)
var _ screen.KeyHintProvider = (*TrophyScreen)(nil)

// New creates a new TrophyScreen.
func New(eng *engine.Engine) *TrophyScreen {
	return &TrophyScreen{eng: eng}
}

func (s *TrophyScreen) Init() tea.Cmd {
	return func() tea.Msg {
		statuses, err := s.eng.GetAchievementsStatus(context.Background())
		return statusLoadedMsg{Statuses: statuses, Err: err}
	}
}

func (s *TrophyScreen) Title() string {
	return "Achievements"
}

func (s *TrophyScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Filter"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TrophyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statusLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.all = msg.Statuses
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			s.filter = (s.filter + 1) % filterCount
			s.scrollOffset = 0
		case "shift+tab":
			s.filter = (s.filter - 1 + filterCount) % filterCount
			s.scrollOffset = 0
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < len(s.filtered())-1 {
				s.scrollOffset++
			}
		}
	}
	return s, nil
}

func (s *TrophyScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading achievements...")
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("\nUnlocked: %d of %d\n", s.count(filterUnlocked), len(s.all))))
	b.WriteString("\n")

	var tabs []string
	for f := filterAll; f < filterCount; f++ {
		label := fmt.Sprintf("%s (%d)", f.label(), s.count(f))
		if f == s.filter {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "     ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	filtered := s.filtered()
	if len(filtered) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("Nothing here yet"))
		return b.String()
	}

	// Each entry takes two lines.
	maxVisible := max((height-10)/2, 2)
	start := s.scrollOffset
	end := min(start+maxVisible, len(filtered))
	rowWidth := min(width-8, 60)

	for _, st := range filtered[start:end] {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderEntry(st, rowWidth)))
		b.WriteString("\n")
	}

	if end < len(filtered) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(filtered)-end)))
	}

	return b.String()
}

func renderEntry(st achievements.Status, width int) string {
	a := st.Achievement
	icon := achievements.Icon(a.Rule.Kind)

	nameStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if st.Unlocked {
		nameStyle = lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	}
	title := nameStyle.Render(fmt.Sprintf("%s %s", icon, a.Name))

	var second string
	if st.Unlocked {
		second = lipgloss.NewStyle().Foreground(theme.Success).Render("✓ " + a.Description)
	} else {
		pct := 0.0
		if st.Target > 0 {
			pct = float64(st.Progress) / float64(st.Target)
		}
		label := fmt.Sprintf("%d/%d", st.Progress, st.Target)
		second = components.NewProgressBar(label, pct, false, width-4).View() + "\n" +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("  "+a.Description)
	}

	return lipgloss.NewStyle().Width(width).Render(title + "\n  " + second)
}

func (s *TrophyScreen) filtered() []achievements.Status {
	var out []achievements.Status
	for _, st := range s.all {
		if s.filter.matches(st) {
			out = append(out, st)
		}
	}
	return out
}

func (s *TrophyScreen) count(f filter) int {
	n := 0
	for _, st := range s.all {
		if f.matches(st) {
			n++
		}
	}
	return n
}

func (f filter) matches(st achievements.Status) bool {
	switch f {
	case filterUnlocked:
		return st.Unlocked
	case filterLocked:
		return !st.Unlocked
	}
	return true
}
