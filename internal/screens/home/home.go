package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/healthquest/internal/engine"
	"github.com/abhisek/healthquest/internal/journey"
	"github.com/abhisek/healthquest/internal/progress"
	"github.com/abhisek/healthquest/internal/router"
	"github.com/abhisek/healthquest/internal/screen"
	"github.com/abhisek/healthquest/internal/screens/bossfight"
	"github.com/abhisek/healthquest/internal/screens/dailyquest"
	"github.com/abhisek/healthquest/internal/screens/history"
	"github.com/abhisek/healthquest/internal/screens/journeymap"
	"github.com/abhisek/healthquest/internal/screens/trophies"
	"github.com/abhisek/healthquest/internal/ui/components"
	"github.com/abhisek/healthquest/internal/ui/theme"
)

// Menu positions.
const (
	itemContinue = iota
	itemMap
	itemBoss
	itemAchievements
	itemHistory
	itemExit
)

type homeStats struct {
	level        int
	xp           int
	levelPercent float64
	streak       int
	todayTiles   int
	nodeIndex    int
	nodeName     string
	mapCleared   bool
	bossReady    bool
}

// HomeScreen is the main menu with the learner's headline stats.
type HomeScreen struct {
	eng    *engine.Engine
	menu   components.Menu
	stats  homeStats
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(eng *engine.Engine) *HomeScreen {
	h := &HomeScreen{eng: eng}
	h.load()
	return h
}

// load reads the stats from the engine and rebuilds the menu, keeping the
// cursor where it was.
func (h *HomeScreen) load() {
	ctx := context.Background()
	h.errMsg = ""

	st, err := h.eng.LoadState(ctx)
	if err != nil {
		h.errMsg = err.Error()
		st = progress.NewState()
	}
	bossReady, err := h.eng.IsWeeklyBossAvailable(ctx)
	if err != nil && h.errMsg == "" {
		h.errMsg = err.Error()
	}

	node, _ := h.eng.Catalog().Node(st.CurrentNodeIndex)
	h.stats = homeStats{
		level:        st.Level(),
		xp:           st.TotalXP,
		levelPercent: progress.PercentInLevel(st.TotalXP),
		streak:       st.Streak,
		todayTiles:   st.Today.TilesCompleted,
		nodeIndex:    st.CurrentNodeIndex,
		nodeName:     node.Name,
		mapCleared:   journey.MapCleared(st),
		bossReady:    bossReady,
	}

	selected := h.menu.Selected
	h.menu = components.NewMenu(h.menuItems())
	if selected > 0 && selected < len(h.menu.Items) && !h.menu.Items[selected].Disabled {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	push := func(s screen.Screen) tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
	return []components.MenuItem{
		itemContinue: {Label: "CONTINUE JOURNEY", Action: func() tea.Cmd {
			return push(dailyquest.New(h.eng, h.stats.nodeIndex))
		}},
		itemMap: {Label: "JOURNEY MAP", Action: func() tea.Cmd {
			return push(journeymap.New(h.eng))
		}},
		itemBoss: {Label: "WEEKLY BOSS", Disabled: !h.stats.bossReady, Action: func() tea.Cmd {
			return push(bossfight.New(h.eng))
		}},
		itemAchievements: {Label: "ACHIEVEMENTS", Action: func() tea.Cmd {
			return push(trophies.New(h.eng))
		}},
		itemHistory: {Label: "HISTORY", Action: func() tea.Cmd {
			return push(history.New(h.eng))
		}},
		itemExit: {Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Refresh reloads the stats after returning from another screen.
func (h *HomeScreen) Refresh() tea.Cmd {
	h.load()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header, footer and frame gaps
	termHeight := height + 8
	compact := termHeight < 32 || width < 100

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(mascotFor(h.stats), cw))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	sections = append(sections, renderNextStop(h.stats, cw))
	if h.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Error).
			Width(cw).
			Align(lipgloss.Center).
			Render("⚠ "+h.errMsg))
	}
	sections = append(sections, components.ArcadeMenu(
		h.menu.Labels(), h.menu.Selected, h.menu.Disabled(), cw))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
