// Package summary shows the result of a finished weekly boss round.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/healthquest/internal/achievements"
	"github.com/abhisek/healthquest/internal/boss"
	"github.com/abhisek/healthquest/internal/content"
	"github.com/abhisek/healthquest/internal/router"
	"github.com/abhisek/healthquest/internal/screen"
	"github.com/abhisek/healthquest/internal/ui/layout"
	"github.com/abhisek/healthquest/internal/ui/theme"
)

// Result is what the summary displays.
type Result struct {
	CorrectAnswers int
	Total          int
	BonusXP        int
	LeveledUp      bool
	NewLevel       int
	NewlyUnlocked  []content.Achievement
}

// FromBoss builds a Result from the final boss answer.
func FromBoss(res *boss.AnswerResult) Result {
	return Result{
		CorrectAnswers: res.CorrectAnswers,
		Total:          res.Total,
		BonusXP:        res.BonusXP,
		LeveledUp:      res.LeveledUp,
		NewLevel:       res.NewLevel,
		NewlyUnlocked:  res.NewlyUnlocked,
	}
}

// SummaryScreen displays the boss round summary.
type SummaryScreen struct {
	result Result
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(result Result) *SummaryScreen {
	return &SummaryScreen{result: result}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Boss Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.result
	center := func(st lipgloss.Style, text string) string {
		return st.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Boss).Bold(true), "Weekly boss defeated!"))
	b.WriteString("\n\n")

	accuracy := 0
	if r.Total > 0 {
		accuracy = r.CorrectAnswers * 100 / r.Total
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text),
		fmt.Sprintf("Correct: %d/%d        Accuracy: %d%%", r.CorrectAnswers, r.Total, accuracy)))
	b.WriteString("\n\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
		fmt.Sprintf("+%d bonus XP", r.BonusXP)))
	b.WriteString("\n")

	if r.LeveledUp {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true),
			fmt.Sprintf("⬆ Level up! You are now level %d", r.NewLevel)))
		b.WriteString("\n")
	}

	if len(r.NewlyUnlocked) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), "Achievements"))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")
		for _, a := range r.NewlyUnlocked {
			b.WriteString(center(lipgloss.NewStyle().Foreground(theme.ArcadeYellow),
				fmt.Sprintf("%s %s: %s", achievements.Icon(a.Rule.Kind), a.Name, a.Description)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(center(theme.Hint, "The boss returns in 7 days."))
	return b.String()
}
