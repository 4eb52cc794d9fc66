package journeymap

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/healthquest/internal/engine"
	"github.com/abhisek/healthquest/internal/journey"
	"github.com/abhisek/healthquest/internal/router"
	"github.com/abhisek/healthquest/internal/screen"
	"github.com/abhisek/healthquest/internal/screens/dailyquest"
	"github.com/abhisek/healthquest/internal/ui/layout"
	"github.com/abhisek/healthquest/internal/ui/theme"
)

type nodesLoadedMsg struct {
	Nodes []journey.NodeStatus
	Err   error
}

// MapScreen lists the journey nodes top to bottom with their status.
type MapScreen struct {
	eng          *engine.Engine
	nodes        []journey.NodeStatus
	cursor       int
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*MapScreen)(nil)
var _ screen.KeyHintProvider = (*MapScreen)(nil)
var _ screen.Refresher = (*MapScreen)(nil)

// New creates a new MapScreen.
func New(eng *engine.Engine) *MapScreen {
	return &MapScreen{eng: eng}
}

func (s *MapScreen) Init() tea.Cmd {
	return func() tea.Msg {
		nodes, err := s.eng.GetJourneyNodeStates(context.Background())
		return nodesLoadedMsg{Nodes: nodes, Err: err}
	}
}

// Refresh reloads node states when a quest screen above is popped.
func (s *MapScreen) Refresh() tea.Cmd {
	return s.Init()
}

func (s *MapScreen) Title() string {
	return "Journey Map"
}

func (s *MapScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Play"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *MapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case nodesLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		first := s.nodes == nil
		s.nodes = msg.Nodes
		if first {
			s.cursor = currentIndex(s.nodes)
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.nodes)-1 {
				s.cursor++
			}
		case "enter":
			return s, s.selectNode()
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

// selectNode opens the quest for the node under the cursor unless locked.
func (s *MapScreen) selectNode() tea.Cmd {
	if s.cursor >= len(s.nodes) {
		return nil
	}
	ns := s.nodes[s.cursor]
	if ns.Status == journey.StatusLocked {
		return nil
	}
	quest := dailyquest.New(s.eng, ns.Node.Index)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: quest}
	}
}

func (s *MapScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading map...")
	}

	// Each node takes two lines: the row and a connector.
	visibleNodes := max(height/2, 1)
	s.adjustScroll(visibleNodes)

	var lines []string
	for i := s.scrollOffset; i < len(s.nodes) && i < s.scrollOffset+visibleNodes; i++ {
		lines = append(lines, s.renderNodeRow(s.nodes[i], i == s.cursor, width))
		if i < len(s.nodes)-1 {
			lines = append(lines, renderConnector(s.nodes[i]))
		}
	}
	return strings.Join(lines, "\n")
}

func (s *MapScreen) adjustScroll(visible int) {
	if s.cursor < s.scrollOffset {
		s.scrollOffset = s.cursor
	}
	if s.cursor >= s.scrollOffset+visible {
		s.scrollOffset = s.cursor - visible + 1
	}
}

func (s *MapScreen) renderNodeRow(ns journey.NodeStatus, selected bool, width int) string {
	icon, label, style := statusDisplay(ns.Status)
	if selected {
		style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	name := fmt.Sprintf("%2d. %s", ns.Node.Index+1, ns.Node.Name)
	zone := s.eng.Catalog().ZoneName(ns.Node.Zone)
	detail := zone
	if ns.ZoneTotal > 0 {
		detail = fmt.Sprintf("%s %d/%d", zone, ns.ZoneDone, ns.ZoneTotal)
	}

	nameWidth := max(width-40, 12)
	return fmt.Sprintf("  %s%s %s  %s  %s",
		cursor,
		icon,
		style.Render(fmt.Sprintf("%-*s", nameWidth, name)),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%-16s", detail)),
		style.Render(fmt.Sprintf("%9s", label)),
	)
}

func renderConnector(ns journey.NodeStatus) string {
	color := theme.Border
	if ns.Status == journey.StatusCompleted {
		color = theme.Success
	}
	return lipgloss.NewStyle().Foreground(color).Render("     │")
}

func statusDisplay(st journey.Status) (icon, label string, style lipgloss.Style) {
	switch st {
	case journey.StatusCompleted:
		return "✓", "Cleared", lipgloss.NewStyle().Foreground(theme.Success)
	case journey.StatusCurrent:
		return "★", "Current", lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	case journey.StatusAvailable:
		return "○", "Open", lipgloss.NewStyle().Foreground(theme.Text)
	default:
		return "🔒", "Locked", lipgloss.NewStyle().Foreground(theme.TextDim)
	}
}

func currentIndex(nodes []journey.NodeStatus) int {
	for i, ns := range nodes {
		if ns.Status == journey.StatusCurrent {
			return i
		}
	}
	last := 0
	for i, ns := range nodes {
		if ns.Status != journey.StatusLocked {
			last = i
		}
	}
	return last
}
