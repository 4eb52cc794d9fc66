package dailyquest

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/healthquest/internal/achievements"
	"github.com/abhisek/healthquest/internal/content"
	"github.com/abhisek/healthquest/internal/ui/components"
	"github.com/abhisek/healthquest/internal/ui/theme"
)

func (s *QuestScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch {
	case s.errMsg != "":
		body = s.renderError()
	case s.phase == phaseLoading || s.quest == nil:
		body = lipgloss.NewStyle().Foreground(theme.TextDim).Render("Loading quest...")
	case s.phase == phaseQuestion:
		body = s.renderQuestion(cw)
	case s.phase == phaseFeedback:
		body = s.renderFeedback(cw)
	default:
		body = s.renderList(cw)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *QuestScreen) renderError() string {
	msg := s.errMsg
	if s.locked {
		msg = "This stop is still locked. Clear the earlier stops first."
	}
	return lipgloss.NewStyle().Foreground(theme.Error).Render(msg) + "\n\n" +
		theme.Hint.Render("Esc to go back")
}

func (s *QuestScreen) renderList(cw int) string {
	q := s.quest
	var b strings.Builder

	b.WriteString(theme.Title.Render(fmt.Sprintf("Stop %d · %s", q.Node.Index+1, q.Node.Name)))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Daily quest for %s", q.Date)))
	b.WriteString("\n\n")

	if q.Empty() {
		b.WriteString(theme.Hint.Render("No tiles available for this stop."))
		return components.ArcadeCard(b.String(), cw)
	}

	for i, t := range q.Tiles {
		icon := "○"
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if t.Completed {
			icon = "✓"
			style = lipgloss.NewStyle().Foreground(theme.Success)
		}
		cursor := "  "
		if i == s.cursor {
			cursor = "▸ "
			if !t.Completed {
				style = theme.Selected
			}
		}
		prompt := truncate(t.Question.Prompt, cw-16)
		line := fmt.Sprintf("%s%s %s  %s", cursor, icon, prompt,
			lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("+%d", t.Question.XP)))
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if q.Remaining() == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Bold(true).
			Render("Quest complete! Come back tomorrow for more."))
	} else {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("%d of %d tiles left", q.Remaining(), len(q.Tiles))))
	}

	return components.ArcadeCard(b.String(), cw)
}

func (s *QuestScreen) renderQuestion(cw int) string {
	tile := s.quest.Tiles[s.cursor]
	header := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("%s · %s", difficultyLabel(tile.Question.Difficulty), s.eng.Catalog().ZoneName(tile.Question.Zone)))
	return components.ArcadeCard(header+"\n\n"+s.mc.View(), cw)
}

func (s *QuestScreen) renderFeedback(cw int) string {
	res := s.result
	tile := s.quest.Tiles[s.cursor]
	var b strings.Builder

	b.WriteString(s.mc.View())
	b.WriteString("\n")

	if res.Correct {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Not quite."))
	}
	b.WriteString("\n")
	if tile.Question.Explanation != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw - 8).Render(tile.Question.Explanation))
		b.WriteString("\n")
	}

	for _, line := range rewardLines(res.XPAwarded, res.AlreadyCompleted, res.LeveledUp, res.NewLevel) {
		b.WriteString("\n")
		b.WriteString(line)
	}
	if res.NodeJustCompleted != nil {
		node, _ := s.eng.Catalog().Node(*res.NodeJustCompleted)
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).
			Render(fmt.Sprintf("🏁 %s cleared!", node.Name)))
	}
	for _, a := range res.NewlyUnlocked {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
			Render(fmt.Sprintf("%s Achievement unlocked: %s", achievements.Icon(a.Rule.Kind), a.Name)))
	}

	return components.ArcadeCard(b.String(), cw)
}

func rewardLines(xp int, already, leveledUp bool, level int) []string {
	var lines []string
	switch {
	case xp > 0:
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(fmt.Sprintf("+%d XP", xp)))
	case already:
		lines = append(lines, theme.Hint.Render("Already completed, no extra XP."))
	}
	if leveledUp {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
			Render(fmt.Sprintf("⬆ Level up! You are now level %d", level)))
	}
	return lines
}

func difficultyLabel(d content.Difficulty) string {
	switch d {
	case content.DifficultyBasic:
		return "Basic"
	case content.DifficultyCore:
		return "Core"
	case content.DifficultyChallenge:
		return "Challenge"
	}
	return string(d)
}

func truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
