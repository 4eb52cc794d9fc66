package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/healthquest/internal/ui/components"
	"github.com/abhisek/healthquest/internal/ui/theme"
)

const arcadeTitleFull = ` ╦ ╦╔═╗╔═╗╦  ╔╦╗╦ ╦  ╔═╗ ╦ ╦╔═╗╔═╗╔╦╗
 ╠═╣║╣ ╠═╣║   ║ ╠═╣  ║═╬╗║ ║║╣ ╚═╗ ║
 ╩ ╩╚═╝╩ ╩╩═╝ ╩ ╩ ╩  ╚═╝╚╚═╝╚═╝╚═╝ ╩ `

const arcadeTitleCompact = "H E A L T H · Q U E S T"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders level, XP, streak and today's tiles in a
// double-bordered box matching the content width.
func renderStatsBar(s homeStats, cw int, compact bool) string {
	levelStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	xpStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	streakStyle := lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	todayStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s %s",
			levelStyle.Render(fmt.Sprintf("L%d", s.level)),
			xpStyle.Render(fmt.Sprintf("◆%d", s.xp)),
			streakStyle.Render(fmt.Sprintf("🔥%d", s.streak)),
			todayStyle.Render(fmt.Sprintf("✓%d", s.todayTiles)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s  %s",
			levelStyle.Render(fmt.Sprintf("LV %d", s.level)),
			xpStyle.Render(fmt.Sprintf("◆ %d XP", s.xp)),
			streakStyle.Render(fmt.Sprintf("🔥 %d DAY", s.streak)),
			todayStyle.Render(fmt.Sprintf("✓ %d TODAY", s.todayTiles)),
		)
	}

	bar := components.NewProgressBar("", s.levelPercent, false, cw-6).View()

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Center, stats, bar))
}

// renderNextStop names the current journey node under the stats bar.
func renderNextStop(s homeStats, cw int) string {
	text := fmt.Sprintf("Next stop: %s", s.nodeName)
	if s.mapCleared {
		text = "Journey complete! Keep your streak alive."
	}
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
