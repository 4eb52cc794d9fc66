// Package boss runs the weekly boss: a five-question bonus round unlocked
// by regular play.
package boss

import (
	"errors"
	"math/rand"

	"github.com/abhisek/healthquest/internal/calendar"
	"github.com/abhisek/healthquest/internal/content"
	"github.com/abhisek/healthquest/internal/progress"
)

const (
	// SessionSize is the number of questions in one boss round.
	SessionSize = 5

	// BonusXPPerCorrect is awarded for each correct boss answer.
	BonusXPPerCorrect = 20

	// RequiredPlayDays is how many distinct days in the trailing Window
	// unlock the boss.
	RequiredPlayDays = 5

	// Window is both the play-day lookback and the cooldown after a win.
	Window = 7
)

var (
	ErrUnavailable     = errors.New("weekly boss is not available")
	ErrNoActiveSession = errors.New("no active boss session")
)

// Available reports whether the boss can be started today.
func Available(st *progress.State, today calendar.Date) bool {
	if st.PlayDaysWithin(today, Window) < RequiredPlayDays {
		return false
	}
	until := OnCooldownUntil(st)
	return until.IsZero() || !today.Before(until)
}

// OnCooldownUntil returns the first date the boss may be fought again after
// the last win, or the zero date when it was never beaten.
func OnCooldownUntil(st *progress.State) calendar.Date {
	if st.BossLastCompleted.IsZero() {
		return calendar.Date{}
	}
	return st.BossLastCompleted.AddDays(Window)
}

// Session is one boss round in progress.
type Session struct {
	ID             string
	Questions      []content.Question
	CurrentIndex   int
	CorrectAnswers int
	Answers        []bool
}

// Start draws up to SessionSize questions uniformly from the whole
// catalog, ignoring level and completion history.
func Start(id string, catalog *content.Catalog, rng *rand.Rand) (*Session, error) {
	all := catalog.Questions()
	if len(all) == 0 {
		return nil, ErrUnavailable
	}
	picked := make([]content.Question, 0, min(SessionSize, len(all)))
	for _, i := range rng.Perm(len(all))[:min(SessionSize, len(all))] {
		picked = append(picked, all[i])
	}
	return &Session{ID: id, Questions: picked}, nil
}

// Current returns the question awaiting an answer.
func (s *Session) Current() (content.Question, bool) {
	if s.Done() {
		return content.Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// Done reports whether every question was answered.
func (s *Session) Done() bool {
	return s.CurrentIndex >= len(s.Questions)
}

// Total returns the number of questions in the round.
func (s *Session) Total() int {
	return len(s.Questions)
}

// BonusXP returns the XP the round is worth so far.
func (s *Session) BonusXP() int {
	return s.CorrectAnswers * BonusXPPerCorrect
}

// AnswerResult describes one boss answer. The fields after Finished are
// filled only on the last answer.
type AnswerResult struct {
	Correct        bool
	CorrectIndex   int
	Explanation    string
	QuestionNumber int
	Total          int

	Finished       bool
	CorrectAnswers int
	BonusXP        int
	LeveledUp      bool
	NewLevel       int
	NewlyUnlocked  []content.Achievement
}

// Answer scores selected against the current question and moves on.
func (s *Session) Answer(selected int) (*AnswerResult, error) {
	q, ok := s.Current()
	if !ok {
		return nil, ErrNoActiveSession
	}
	correct := q.IsCorrect(selected)
	if correct {
		s.CorrectAnswers++
	}
	s.Answers = append(s.Answers, correct)
	s.CurrentIndex++

	res := &AnswerResult{
		Correct:        correct,
		CorrectIndex:   q.CorrectIndex,
		Explanation:    q.Explanation,
		QuestionNumber: s.CurrentIndex,
		Total:          s.Total(),
		Finished:       s.Done(),
	}
	if res.Finished {
		res.CorrectAnswers = s.CorrectAnswers
		res.BonusXP = s.BonusXP()
	}
	return res, nil
}
