// Package engine is the progression facade the presentation layer talks
// to. It owns the single progression state, applies the lazy date rollover
// on every call, and persists after each mutation.
//
// Engine methods are serialized by a mutex so screens may call them from
// Bubble Tea commands.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/abhisek/healthquest/internal/achievements"
	"github.com/abhisek/healthquest/internal/boss"
	"github.com/abhisek/healthquest/internal/calendar"
	"github.com/abhisek/healthquest/internal/content"
	"github.com/abhisek/healthquest/internal/journey"
	"github.com/abhisek/healthquest/internal/progress"
	"github.com/abhisek/healthquest/internal/quest"
	"github.com/abhisek/healthquest/internal/random"
	"github.com/abhisek/healthquest/internal/store"
)

var (
	ErrUnknownQuestion = errors.New("unknown question")
	ErrNodeLocked      = errors.New("journey node is locked")
)

// Engine drives one learner's progression.
type Engine struct {
	mu sync.Mutex

	kv        store.KV
	catalog   *content.Catalog
	clock     calendar.Clock
	rng       *rand.Rand
	events    store.EventRepo
	warn      io.Writer
	quests    *quest.Generator
	evaluator *achievements.Evaluator

	state *progress.State
	boss  *boss.Session
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the source of today's date.
func WithClock(c calendar.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithRand sets the random source for quest and boss draws.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithEventRepo records engine outcomes to repo.
func WithEventRepo(repo store.EventRepo) Option {
	return func(e *Engine) { e.events = repo }
}

// WithWarnings sets where non-fatal problems, such as a failed event
// append, are reported.
func WithWarnings(w io.Writer) Option {
	return func(e *Engine) { e.warn = w }
}

// New creates an Engine. State is loaded lazily on first use.
func New(kv store.KV, catalog *content.Catalog, opts ...Option) *Engine {
	e := &Engine{
		kv:      kv,
		catalog: catalog,
		clock:   calendar.SystemClock{},
		warn:    io.Discard,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		seed, err := random.NewSeed()
		if err != nil {
			seed = time.Now().UnixNano()
		}
		e.rng = rand.New(rand.NewSource(seed))
	}
	e.quests = quest.NewGenerator(catalog, e.rng)
	e.evaluator = achievements.NewEvaluator(catalog)
	return e
}

// Catalog returns the content the engine was built with.
func (e *Engine) Catalog() *content.Catalog {
	return e.catalog
}

// Today returns the engine clock's date.
func (e *Engine) Today() calendar.Date {
	return e.clock.Today()
}

// LoadState reads the state from storage, replacing any in-memory copy,
// and returns a copy of it.
func (e *Engine) LoadState(ctx context.Context) (*progress.State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, err := progress.Load(ctx, e.kv)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	e.state = st
	if _, _, err := e.begin(ctx); err != nil {
		return nil, err
	}
	return e.state.Clone(), nil
}

// State returns a copy of the current state, or first-run defaults when
// nothing was loaded yet.
func (e *Engine) State() *progress.State {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == nil {
		return progress.NewState()
	}
	return e.state.Clone()
}

// TodayProgress returns today's tile and XP counters.
func (e *Engine) TodayProgress(ctx context.Context) (progress.TodayProgress, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, _, err := e.begin(ctx)
	if err != nil {
		return progress.TodayProgress{}, err
	}
	return st.Today, nil
}

// GetJourneyNodeStates re-checks node completion and returns every node's
// status.
func (e *Engine) GetJourneyNodeStates(ctx context.Context) ([]journey.NodeStatus, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, today, err := e.begin(ctx)
	if err != nil {
		return nil, err
	}
	if _, _, err := e.applyDerived(ctx, st, today, newEventID()); err != nil {
		return nil, err
	}
	return journey.Statuses(st, e.catalog), nil
}

// GetAchievementsStatus returns every achievement with its progress.
func (e *Engine) GetAchievementsStatus(ctx context.Context) ([]achievements.Status, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, _, err := e.begin(ctx)
	if err != nil {
		return nil, err
	}
	return e.evaluator.Status(st), nil
}

// OnboardingSeen reports whether the intro was already shown.
func (e *Engine) OnboardingSeen(ctx context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, _, err := e.begin(ctx)
	if err != nil {
		return false, err
	}
	return st.OnboardingSeen, nil
}

// MarkOnboardingSeen records that the intro was shown.
func (e *Engine) MarkOnboardingSeen(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, _, err := e.begin(ctx)
	if err != nil {
		return err
	}
	if st.OnboardingSeen {
		return nil
	}
	st.OnboardingSeen = true
	return e.save(ctx)
}

// Reset wipes all stored progress and starts over.
func (e *Engine) Reset(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.kv.Clear(ctx); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	e.state = progress.NewState()
	e.boss = nil
	progress.Reconcile(e.state, e.clock.Today())
	e.record(ctx, store.ProgressEventData{EventID: newEventID(), Kind: EventStateReset})
	return nil
}

// History returns the most recent progress events, newest first. It is
// empty when no event repo is configured.
func (e *Engine) History(ctx context.Context, limit int) ([]store.ProgressEventRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.events == nil {
		return nil, nil
	}
	recs, err := e.events.QueryProgressEvents(ctx, store.QueryOpts{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	return recs, nil
}

// begin loads the state if needed and applies the date rollover for
// today. Every public entry point starts here.
func (e *Engine) begin(ctx context.Context) (*progress.State, calendar.Date, error) {
	if e.state == nil {
		st, err := progress.Load(ctx, e.kv)
		if err != nil {
			return nil, calendar.Date{}, fmt.Errorf("load state: %w", err)
		}
		e.state = st
	}
	today := e.clock.Today()
	if progress.Reconcile(e.state, today) {
		if err := e.save(ctx); err != nil {
			return nil, calendar.Date{}, err
		}
	}
	return e.state, today, nil
}

func (e *Engine) save(ctx context.Context) error {
	return progress.Save(ctx, e.kv, e.state)
}

// applyDerived runs the journey and achievement checks and persists what
// they changed. It returns the last node completed, if any, and the
// achievements newly unlocked.
func (e *Engine) applyDerived(ctx context.Context, st *progress.State, today calendar.Date, eventID string) (*int, []content.Achievement, error) {
	var nodeDone *int
	out := journey.Check(st, e.catalog, today)
	for _, i := range out.Completed {
		e.record(ctx, store.ProgressEventData{
			EventID: eventID,
			Kind:    EventNodeCompleted,
			Subject: fmt.Sprint(i),
			Detail:  e.nodeName(i),
		})
	}
	if n := len(out.Completed); n > 0 {
		last := out.Completed[n-1]
		nodeDone = &last
	}
	if out.Advanced {
		e.regenerateQuest(st, today, st.CurrentNodeIndex)
	}

	unlocked := e.evaluator.Evaluate(st)
	for _, a := range unlocked {
		e.record(ctx, store.ProgressEventData{
			EventID: eventID,
			Kind:    EventAchievementUnlocked,
			Subject: a.ID,
			Detail:  a.Name,
		})
	}

	if out.Changed() || len(unlocked) > 0 {
		if err := e.save(ctx); err != nil {
			return nodeDone, unlocked, err
		}
	}
	return nodeDone, unlocked, nil
}

func (e *Engine) nodeName(i int) string {
	if n, ok := e.catalog.Node(i); ok {
		return n.Name
	}
	return ""
}
