package welcome

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/healthquest/internal/router"
	"github.com/abhisek/healthquest/internal/screen"
	"github.com/abhisek/healthquest/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 4500 * time.Millisecond
)

const mascotArt = `  ╭─────────────╮
  │  ▄██▄ ▄██▄  │
  │ ███████████ │
  │  ▀██◉‿◉██▀  │
  │    ▀███▀    │
  │      ▀      │
  ╰─────────────╯`

var sparkleFrames = []string{"★", "✦"}

var onboardingLines = []string{
	"Answer quick health questions to earn XP.",
	"Every 100 XP is a new level.",
	"Play on consecutive days to grow your streak.",
	"Clear each zone to move along the journey map.",
	"Play 5 days in a week to face the weekly boss.",
}

// Onboarding records whether the first-run intro has been shown.
type Onboarding interface {
	OnboardingSeen(ctx context.Context) (bool, error)
	MarkOnboardingSeen(ctx context.Context) error
}

type tickMsg time.Time

// WelcomeScreen shows a splash animation, then the one-time intro on the
// first run, before transitioning to the home screen.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	onboarding   Onboarding
	elapsed      time.Duration
	tickCount    int
	showingIntro bool
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced
// by homeFactory. onboarding may be nil, in which case no intro is shown.
func New(homeFactory func() screen.Screen, onboarding Onboarding) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
		onboarding:  onboarding,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tea.Tick(tickInterval, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case tea.KeyPressMsg:
		if w.showingIntro {
			if w.onboarding != nil {
				_ = w.onboarding.MarkOnboardingSeen(context.Background())
			}
			return w, w.transition()
		}
		if w.needsIntro() {
			w.showingIntro = true
			return w, nil
		}
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) needsIntro() bool {
	if w.onboarding == nil {
		return false
	}
	seen, err := w.onboarding.OnboardingSeen(context.Background())
	return err == nil && !seen
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	if w.showingIntro {
		return w.renderIntro(width, height)
	}

	var sections []string

	mascotStyle := lipgloss.NewStyle().Foreground(theme.Error)
	rendered := mascotStyle.Render(mascotArt)

	if w.elapsed >= phase1End {
		frame := w.tickCount % len(sparkleFrames)
		sparkle := sparkleFrames[frame]

		accentStyle := lipgloss.NewStyle().Foreground(theme.Accent)
		secondaryStyle := lipgloss.NewStyle().Foreground(theme.Secondary)

		s1 := accentStyle.Render(sparkle)
		s2 := secondaryStyle.Render(sparkle)

		lines := strings.Split(rendered, "\n")
		if len(lines) > 1 {
			lines[0] = s1 + "  " + lines[0] + "  " + s2
		}
		if len(lines) > 3 {
			lines[3] = s2 + "  " + lines[3] + "  " + s1
		}
		if len(lines) > 6 {
			lines[6] = s1 + "  " + lines[6] + "  " + s2
		}
		rendered = strings.Join(lines, "\n")
	}

	sections = append(sections, rendered)

	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")

		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Small habits, big wins!")
		sections = append(sections, tagline, "")

		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue")
		sections = append(sections, hint)
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (w *WelcomeScreen) renderIntro(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("How to play"))
	b.WriteString("\n\n")
	for _, line := range onboardingLines {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("• " + line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Italic(true).
		Render("press any key to start"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
