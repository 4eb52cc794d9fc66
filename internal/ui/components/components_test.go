package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMenuSkipsDisabled(t *testing.T) {
	fired := ""
	m := NewMenu([]MenuItem{
		{Label: "one", Action: func() tea.Cmd { fired = "one"; return nil }},
		{Label: "two", Disabled: true},
		{Label: "three", Action: func() tea.Cmd { fired = "three"; return nil }},
	})

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Fatalf("Selected = %d, want 2", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if fired != "three" {
		t.Errorf("fired = %q, want three", fired)
	}
	m, _ = m.Update(keyPress('k'))
	if m.Selected != 0 {
		t.Errorf("Selected = %d after k, want 0", m.Selected)
	}
	if !m.Disabled()[1] || len(m.Disabled()) != 1 {
		t.Errorf("Disabled = %v", m.Disabled())
	}
}

func TestMenuFirstItemDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "a", Disabled: true}, {Label: "b"}})
	if m.Selected != 1 {
		t.Errorf("Selected = %d, want 1", m.Selected)
	}
}

func TestMultiChoiceArrowSelect(t *testing.T) {
	mc := NewMultiChoice("Q?", []string{"a", "b", "c"})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if !mc.Submitted || mc.ChosenIndex != 2 {
		t.Errorf("submitted = %v chosen = %d, want 2", mc.Submitted, mc.ChosenIndex)
	}

	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if mc.ChosenIndex != 2 {
		t.Error("keys after submit must be ignored")
	}
}

func TestMultiChoiceLetterKeys(t *testing.T) {
	tests := []struct {
		key  rune
		want int
	}{
		{'b', 1},
		{'C', 2},
		{'1', 0},
	}
	for _, tt := range tests {
		mc := NewMultiChoice("Q?", []string{"a", "b", "c"})
		mc, _ = mc.Update(keyPress(tt.key))
		if mc.ChosenIndex != tt.want {
			t.Errorf("key %q chose %d, want %d", tt.key, mc.ChosenIndex, tt.want)
		}
	}

	mc := NewMultiChoice("Q?", []string{"a", "b"})
	mc, _ = mc.Update(keyPress('d'))
	if mc.Submitted {
		t.Error("out-of-range letter must not submit")
	}
}

func TestMultiChoiceView(t *testing.T) {
	mc := NewMultiChoice("Drink water?", []string{"yes", "no"})
	v := mc.View()
	if !strings.Contains(v, "Drink water?") || !strings.Contains(v, "A)  yes") {
		t.Errorf("view = %q", v)
	}
	mc, _ = mc.Update(keyPress('b'))
	mc.Reveal(0)
	if mc.CorrectIndex != 0 {
		t.Error("Reveal did not record the answer")
	}
}

func TestProgressBarClamps(t *testing.T) {
	for _, pct := range []float64{-1, 0, 0.5, 1, 2} {
		if v := NewProgressBar("", pct, false, 20).View(); v == "" {
			t.Errorf("empty bar for %v", pct)
		}
	}
}
