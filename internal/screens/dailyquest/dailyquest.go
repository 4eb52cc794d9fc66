// Package dailyquest is the screen for playing one node's daily quest.
package dailyquest

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/healthquest/internal/engine"
	"github.com/abhisek/healthquest/internal/router"
	"github.com/abhisek/healthquest/internal/screen"
	"github.com/abhisek/healthquest/internal/ui/components"
	"github.com/abhisek/healthquest/internal/ui/layout"
)

type phase int

const (
	phaseLoading phase = iota
	phaseList
	phaseQuestion
	phaseFeedback
)

// questLoadedMsg carries the quest fetched from the engine.
type questLoadedMsg struct {
	View *engine.DailyQuestView
	Err  error
}

// QuestScreen lists today's tiles for a node and plays them one at a time.
type QuestScreen struct {
	eng       *engine.Engine
	nodeIndex int
	phase     phase
	quest     *engine.DailyQuestView
	cursor    int
	mc        components.MultiChoice
	result    *engine.AnswerResult
	errMsg    string
	locked    bool
}

var _ screen.Screen = (*QuestScreen)(nil)
var _ screen.KeyHintProvider = (*QuestScreen)(nil)

// New creates a QuestScreen for the journey node at nodeIndex.
func New(eng *engine.Engine, nodeIndex int) *QuestScreen {
	return &QuestScreen{eng: eng, nodeIndex: nodeIndex}
}

func (s *QuestScreen) Init() tea.Cmd {
	return s.loadQuest()
}

func (s *QuestScreen) loadQuest() tea.Cmd {
	return func() tea.Msg {
		view, err := s.eng.GetDailyQuest(context.Background(), s.nodeIndex)
		return questLoadedMsg{View: view, Err: err}
	}
}

func (s *QuestScreen) Title() string {
	if s.quest != nil {
		return s.quest.Node.Name
	}
	return "Daily Quest"
}

func (s *QuestScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseQuestion:
		return []layout.KeyHint{
			{Key: "A-D", Description: "Answer"},
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Esc", Description: "Back to tiles"},
		}
	case phaseFeedback:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Play tile"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *QuestScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questLoadedMsg:
		return s.handleLoaded(msg)
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuestScreen) handleLoaded(msg questLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.locked = errors.Is(msg.Err, engine.ErrNodeLocked)
		s.errMsg = msg.Err.Error()
		s.phase = phaseList
		return s, nil
	}
	s.quest = msg.View
	s.phase = phaseList
	s.cursor = s.firstOpenTile()
	return s, nil
}

func (s *QuestScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.phase {
	case phaseLoading:
		return s, nil

	case phaseFeedback:
		s.result = nil
		s.phase = phaseLoading
		return s, s.loadQuest()

	case phaseQuestion:
		if key == "esc" {
			s.phase = phaseList
			return s, nil
		}
		s.mc, _ = s.mc.Update(msg)
		if s.mc.Submitted {
			return s.submit()
		}
		return s, nil
	}

	// phaseList
	switch key {
	case "esc", "q":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.quest != nil && s.cursor < len(s.quest.Tiles)-1 {
			s.cursor++
		}
	case "enter":
		return s.openTile()
	}
	return s, nil
}

// openTile starts the question under the cursor. Completed tiles can be
// replayed; they earn no XP but still count as play for the streak.
func (s *QuestScreen) openTile() (screen.Screen, tea.Cmd) {
	if s.quest == nil || s.cursor >= len(s.quest.Tiles) {
		return s, nil
	}
	tile := s.quest.Tiles[s.cursor]
	s.mc = components.NewMultiChoice(tile.Question.Prompt, tile.Question.Options)
	s.phase = phaseQuestion
	return s, nil
}

func (s *QuestScreen) submit() (screen.Screen, tea.Cmd) {
	tile := s.quest.Tiles[s.cursor]
	res, err := s.eng.SubmitAnswer(context.Background(), tile.Question.ID, s.mc.ChosenIndex)
	if err != nil {
		s.errMsg = err.Error()
		s.phase = phaseList
		return s, nil
	}
	s.mc.Reveal(res.CorrectIndex)
	s.result = res
	s.phase = phaseFeedback
	return s, nil
}

func (s *QuestScreen) firstOpenTile() int {
	if s.quest == nil {
		return 0
	}
	for i, t := range s.quest.Tiles {
		if !t.Completed {
			return i
		}
	}
	return 0
}
