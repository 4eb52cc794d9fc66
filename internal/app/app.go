package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/healthquest/internal/engine"
	"github.com/abhisek/healthquest/internal/router"
	"github.com/abhisek/healthquest/internal/screen"
	"github.com/abhisek/healthquest/internal/screens/home"
	"github.com/abhisek/healthquest/internal/screens/welcome"
	"github.com/abhisek/healthquest/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	eng    *engine.Engine
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel starting on the welcome screen.
func newAppModel(eng *engine.Engine) AppModel {
	homeFactory := func() screen.Screen { return home.New(eng) }
	return AppModel{
		eng:    eng,
		router: router.New(welcome.New(homeFactory, eng)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		// Esc is left to the screens; each pushed screen decides what
		// backing out means for it.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	st := m.eng.State()
	header := layout.RenderHeader(title, layout.HeaderStats{
		Level:  st.Level(),
		XP:     st.TotalXP,
		Streak: st.Streak,
	}, m.width)

	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program on eng.
func Run(eng *engine.Engine) error {
	p := tea.NewProgram(newAppModel(eng))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
