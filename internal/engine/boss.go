package engine

import (
	"context"
	"fmt"

	"github.com/abhisek/healthquest/internal/boss"
	"github.com/abhisek/healthquest/internal/store"
)

// IsWeeklyBossAvailable reports whether the weekly boss can be started.
func (e *Engine) IsWeeklyBossAvailable(ctx context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, today, err := e.begin(ctx)
	if err != nil {
		return false, err
	}
	return boss.Available(st, today), nil
}

// StartWeeklyBoss opens a boss round. An unfinished round is resumed
// rather than redrawn.
func (e *Engine) StartWeeklyBoss(ctx context.Context) (*boss.Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, today, err := e.begin(ctx)
	if err != nil {
		return nil, err
	}
	if e.boss != nil && !e.boss.Done() {
		return e.boss, nil
	}
	if !boss.Available(st, today) {
		return nil, boss.ErrUnavailable
	}

	id := newEventID()
	s, err := boss.Start(id, e.catalog, e.rng)
	if err != nil {
		return nil, fmt.Errorf("start boss: %w", err)
	}
	e.boss = s
	e.record(ctx, store.ProgressEventData{
		EventID: id,
		Kind:    EventBossStarted,
		Subject: s.ID,
		Detail:  fmt.Sprintf("%d questions", s.Total()),
	})
	return s, nil
}

// ActiveBoss returns the round in progress, or nil.
func (e *Engine) ActiveBoss() *boss.Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.boss
}

// SubmitBossAnswer scores the current boss question. Boss answers never
// touch the tile completion ledger. After the last answer the bonus XP is
// added, the completion date is stamped, and the round is closed.
func (e *Engine) SubmitBossAnswer(ctx context.Context, selected int) (*boss.AnswerResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, today, err := e.begin(ctx)
	if err != nil {
		return nil, err
	}
	if e.boss == nil {
		return nil, boss.ErrNoActiveSession
	}
	res, err := e.boss.Answer(selected)
	if err != nil {
		return nil, err
	}
	if !res.Finished {
		return res, nil
	}

	s := e.boss
	e.boss = nil

	prevLevel := st.Level()
	st.TotalXP += res.BonusXP
	st.BossLastCompleted = today
	res.NewLevel = st.Level()
	res.LeveledUp = res.NewLevel > prevLevel
	if err := e.save(ctx); err != nil {
		return nil, err
	}

	e.record(ctx, store.ProgressEventData{
		EventID: s.ID,
		Kind:    EventBossCompleted,
		Subject: s.ID,
		XP:      res.BonusXP,
		Detail:  fmt.Sprintf("%d/%d correct", res.CorrectAnswers, res.Total),
	})
	if res.LeveledUp {
		e.record(ctx, store.ProgressEventData{
			EventID: s.ID,
			Kind:    EventLevelUp,
			Subject: fmt.Sprint(res.NewLevel),
		})
	}

	res.NewlyUnlocked = e.evaluator.Evaluate(st)
	for _, a := range res.NewlyUnlocked {
		e.record(ctx, store.ProgressEventData{
			EventID: s.ID,
			Kind:    EventAchievementUnlocked,
			Subject: a.ID,
			Detail:  a.Name,
		})
	}
	if len(res.NewlyUnlocked) > 0 {
		if err := e.save(ctx); err != nil {
			return nil, err
		}
	}
	return res, nil
}
