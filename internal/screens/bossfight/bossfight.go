// Package bossfight is the screen for the weekly boss round.
package bossfight

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/healthquest/internal/boss"
	"github.com/abhisek/healthquest/internal/engine"
	"github.com/abhisek/healthquest/internal/router"
	"github.com/abhisek/healthquest/internal/screen"
	"github.com/abhisek/healthquest/internal/screens/summary"
	"github.com/abhisek/healthquest/internal/ui/components"
	"github.com/abhisek/healthquest/internal/ui/layout"
	"github.com/abhisek/healthquest/internal/ui/theme"
)

type bossStartedMsg struct {
	Session *boss.Session
	Err     error
}

// BossScreen plays a boss round one question at a time.
type BossScreen struct {
	eng     *engine.Engine
	session *boss.Session
	mc      components.MultiChoice
	result  *boss.AnswerResult
	errMsg  string
}

var _ screen.Screen = (*BossScreen)(nil)
var _ screen.KeyHintProvider = (*BossScreen)(nil)

// New creates a new BossScreen.
func New(eng *engine.Engine) *BossScreen {
	return &BossScreen{eng: eng}
}

func (s *BossScreen) Init() tea.Cmd {
	return func() tea.Msg {
		sess, err := s.eng.StartWeeklyBoss(context.Background())
		return bossStartedMsg{Session: sess, Err: err}
	}
}

func (s *BossScreen) Title() string {
	return "Weekly Boss"
}

func (s *BossScreen) KeyHints() []layout.KeyHint {
	if s.result != nil {
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	}
	return []layout.KeyHint{
		{Key: "A-D", Description: "Answer"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Retreat"},
	}
}

func (s *BossScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case bossStartedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			if errors.Is(msg.Err, boss.ErrUnavailable) {
				s.errMsg = "The boss is not ready yet. Play 5 days this week to summon it."
			}
			return s, nil
		}
		s.session = msg.Session
		s.nextQuestion()
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *BossScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" || s.session == nil {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.result != nil {
		res := s.result
		s.result = nil
		if res.Finished {
			next := summary.New(summary.FromBoss(res))
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
		s.nextQuestion()
		return s, nil
	}

	if msg.String() == "esc" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	s.mc, _ = s.mc.Update(msg)
	if !s.mc.Submitted {
		return s, nil
	}
	res, err := s.eng.SubmitBossAnswer(context.Background(), s.mc.ChosenIndex)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.mc.Reveal(res.CorrectIndex)
	s.result = res
	return s, nil
}

func (s *BossScreen) nextQuestion() {
	q, ok := s.session.Current()
	if !ok {
		return
	}
	s.mc = components.NewMultiChoice(q.Prompt, q.Options)
}

func (s *BossScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if s.errMsg != "" {
		body := lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg) + "\n\n" +
			theme.Hint.Render("press any key to go back")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
	}
	if s.session == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Summoning the boss..."))
	}

	var b strings.Builder
	number := s.session.CurrentIndex + 1
	if s.result != nil {
		number = s.result.QuestionNumber
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Boss).Bold(true).
		Render(fmt.Sprintf("👹 BOSS  %d/%d", number, s.session.Total())))
	b.WriteString("  ")
	b.WriteString(renderHits(s.session.Answers, s.session.Total()))
	b.WriteString("\n\n")
	b.WriteString(s.mc.View())

	if s.result != nil {
		b.WriteString("\n")
		if s.result.Correct {
			b.WriteString(theme.Correct.Render(fmt.Sprintf("Hit! +%d bonus XP", boss.BonusXPPerCorrect)))
		} else {
			b.WriteString(theme.Incorrect.Render("Missed!"))
		}
		if s.result.Explanation != "" {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw - 8).Render(s.result.Explanation))
		}
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.ArcadeCard(b.String(), cw))
}

// renderHits draws one pip per question: filled for hits, crossed for misses.
func renderHits(answers []bool, total int) string {
	var b strings.Builder
	for i := 0; i < total; i++ {
		switch {
		case i >= len(answers):
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("·"))
		case answers[i]:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("●"))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("✗"))
		}
	}
	return b.String()
}
