package engine

import (
	"context"
	"fmt"

	"github.com/abhisek/healthquest/internal/calendar"
	"github.com/abhisek/healthquest/internal/content"
	"github.com/abhisek/healthquest/internal/progress"
)

// QuestTile is one tile of a daily quest.
type QuestTile struct {
	Question  content.Question
	Completed bool
}

// DailyQuestView is the quest for one node on one date.
type DailyQuestView struct {
	Node  content.Node
	Date  calendar.Date
	Tiles []QuestTile
}

// Remaining counts the tiles not yet completed.
func (v *DailyQuestView) Remaining() int {
	n := 0
	for _, t := range v.Tiles {
		if !t.Completed {
			n++
		}
	}
	return n
}

// Empty reports whether there was nothing to pick from.
func (v *DailyQuestView) Empty() bool {
	return len(v.Tiles) == 0
}

// GetDailyQuest returns today's quest for nodeIndex, generating and
// storing one when today has none for that node. Each node keeps its own
// quest for the day, so looking at an earlier stop does not reshuffle the
// current one. Nodes ahead of the current node are locked.
func (e *Engine) GetDailyQuest(ctx context.Context, nodeIndex int) (*DailyQuestView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, today, err := e.begin(ctx)
	if err != nil {
		return nil, err
	}
	node, ok := e.catalog.Node(nodeIndex)
	if !ok || nodeIndex > st.CurrentNodeIndex {
		return nil, fmt.Errorf("%w: node %d", ErrNodeLocked, nodeIndex)
	}

	quest, ok := st.QuestFor(today, nodeIndex)
	if !ok {
		quest = e.regenerateQuest(st, today, nodeIndex)
		if err := e.save(ctx); err != nil {
			return nil, err
		}
	}

	view := &DailyQuestView{Node: node, Date: today}
	for _, id := range quest.Tiles {
		q, ok := e.catalog.Question(id)
		if !ok {
			continue
		}
		view.Tiles = append(view.Tiles, QuestTile{Question: q, Completed: st.IsCompleted(id)})
	}
	return view, nil
}

func (e *Engine) regenerateQuest(st *progress.State, today calendar.Date, nodeIndex int) progress.DailyQuest {
	node, ok := e.catalog.Node(nodeIndex)
	if !ok {
		return progress.DailyQuest{}
	}
	q := progress.DailyQuest{
		Date:  today,
		Node:  nodeIndex,
		Tiles: e.quests.Generate(node, st.Level(), st.IsCompleted),
	}
	st.StoreQuest(q)
	return q
}
