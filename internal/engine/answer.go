package engine

import (
	"context"
	"fmt"

	"github.com/abhisek/healthquest/internal/content"
	"github.com/abhisek/healthquest/internal/progress"
	"github.com/abhisek/healthquest/internal/store"
)

// AnswerResult reports what one tile answer did.
type AnswerResult struct {
	QuestionID       string
	Correct          bool
	AlreadyCompleted bool
	XPAwarded        int
	LeveledUp        bool
	NewLevel         int
	// NodeJustCompleted is the journey node this answer completed, if any.
	NodeJustCompleted *int
	NewlyUnlocked     []content.Achievement
	CorrectIndex      int
	Explanation       string
	Streak            int
	StreakChange      progress.StreakChange
}

// SubmitAnswer scores selected for the tile. An incorrect answer changes
// nothing. A correct answer awards the tile's XP at most once over the
// lifetime of the state, counts today as a play day, and then runs the
// journey and achievement checks.
func (e *Engine) SubmitAnswer(ctx context.Context, questionID string, selected int) (*AnswerResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, today, err := e.begin(ctx)
	if err != nil {
		return nil, err
	}
	q, ok := e.catalog.Question(questionID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuestion, questionID)
	}

	res := &AnswerResult{
		QuestionID:   q.ID,
		Correct:      q.IsCorrect(selected),
		CorrectIndex: q.CorrectIndex,
		Explanation:  q.Explanation,
		NewLevel:     st.Level(),
		Streak:       st.Streak,
	}
	if !res.Correct {
		return res, nil
	}

	eventID := newEventID()
	prevLevel := st.Level()
	if st.MarkCompleted(q.ID) {
		st.TotalXP += q.XP
		st.Today.TilesCompleted++
		st.Today.XPEarned += q.XP
		res.XPAwarded = q.XP
	} else {
		res.AlreadyCompleted = true
	}
	st.RecordPlayDate(today)
	res.StreakChange = progress.UpdateStreak(st, today)
	res.Streak = st.Streak
	res.NewLevel = st.Level()
	res.LeveledUp = res.NewLevel > prevLevel

	if err := e.save(ctx); err != nil {
		return nil, err
	}

	if res.XPAwarded > 0 {
		e.record(ctx, store.ProgressEventData{
			EventID: eventID,
			Kind:    EventXPAwarded,
			Subject: q.ID,
			XP:      q.XP,
			Detail:  string(q.Zone),
		})
	}
	if res.LeveledUp {
		e.record(ctx, store.ProgressEventData{
			EventID: eventID,
			Kind:    EventLevelUp,
			Subject: fmt.Sprint(res.NewLevel),
		})
	}

	res.NodeJustCompleted, res.NewlyUnlocked, err = e.applyDerived(ctx, st, today, eventID)
	if err != nil {
		return nil, err
	}
	return res, nil
}
