package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/healthquest/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // nothing played yet today
	MascotCelebrating                      // played today
	MascotAlert                            // weekly boss is waiting
)

const mascotIdle = ` ▄██▄ ▄██▄
███◉███◉███
 ▀███▽███▀
   ▀███▀`

const mascotCelebrating = `★▄██▄ ▄██▄★
███★███★███
 ▀███◡███▀
   ▀███▀`

const mascotAlert = ` ▄██▄ ▄██▄  !
███◉███◉███
 ▀███○███▀
   ▀███▀`

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(variant MascotVariant) string {
	art := mascotIdle
	fg := theme.Error

	switch variant {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.ArcadeYellow
	case MascotAlert:
		art = mascotAlert
		fg = theme.Boss
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}

func mascotFor(s homeStats) MascotVariant {
	switch {
	case s.bossReady:
		return MascotAlert
	case s.todayTiles > 0:
		return MascotCelebrating
	default:
		return MascotIdle
	}
}
