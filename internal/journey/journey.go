// Package journey moves the learner along the ten-node map.
package journey

import (
	"github.com/abhisek/healthquest/internal/calendar"
	"github.com/abhisek/healthquest/internal/content"
	"github.com/abhisek/healthquest/internal/progress"
)

// Status is the display state of one node.
type Status string

const (
	StatusLocked    Status = "locked"
	StatusAvailable Status = "available"
	StatusCurrent   Status = "current"
	StatusCompleted Status = "completed"
)

// NodeStatus pairs a node with its state. ZoneDone and ZoneTotal count
// tiles for zone nodes and are zero for mixed nodes.
type NodeStatus struct {
	Node      content.Node
	Status    Status
	ZoneDone  int
	ZoneTotal int
}

// Outcome reports what a Check changed.
type Outcome struct {
	Completed []int // node indices newly completed, ascending
	Advanced  bool  // CurrentNodeIndex moved forward
}

// Changed reports whether the check mutated the state.
func (o Outcome) Changed() bool {
	return len(o.Completed) > 0 || o.Advanced
}

// Statuses returns the state of every node in map order.
func Statuses(st *progress.State, catalog *content.Catalog) []NodeStatus {
	nodes := catalog.Nodes()
	out := make([]NodeStatus, len(nodes))
	for i, n := range nodes {
		ns := NodeStatus{Node: n, Status: statusOf(st, i)}
		if !n.IsMixed() {
			ns.ZoneDone, ns.ZoneTotal = zoneCounts(st, catalog, n.Zone)
		}
		out[i] = ns
	}
	return out
}

func statusOf(st *progress.State, index int) Status {
	switch {
	case index > st.CurrentNodeIndex:
		return StatusLocked
	case st.CompletedNodes[index]:
		return StatusCompleted
	case index == st.CurrentNodeIndex:
		return StatusCurrent
	default:
		return StatusAvailable
	}
}

// Check applies node completion rules after tiles were completed.
//
// Zone nodes at or behind the current node complete once every tile of
// their zone is done. The current mixed node completes once every tile of
// today's quest for it is done. Either way the current node advances by at
// most one step per call; node 9 completes without advancing.
func Check(st *progress.State, catalog *content.Catalog, today calendar.Date) Outcome {
	out := checkZoneNodes(st, catalog)
	if out.Advanced {
		return out
	}
	if i, ok := checkMixedNode(st, catalog, today); ok {
		out.Completed = append(out.Completed, i)
		out.Advanced = st.AdvanceNode()
	}
	return out
}

func checkZoneNodes(st *progress.State, catalog *content.Catalog) Outcome {
	var out Outcome
	current := st.CurrentNodeIndex
	for _, n := range catalog.Nodes() {
		if n.Index > current {
			break
		}
		if n.IsMixed() || st.CompletedNodes[n.Index] {
			continue
		}
		done, total := zoneCounts(st, catalog, n.Zone)
		if total == 0 || done < total {
			continue
		}
		st.CompleteNode(n.Index)
		out.Completed = append(out.Completed, n.Index)
		if n.Index == current {
			out.Advanced = st.AdvanceNode()
		}
	}
	return out
}

func checkMixedNode(st *progress.State, catalog *content.Catalog, today calendar.Date) (int, bool) {
	i := st.CurrentNodeIndex
	n, ok := catalog.Node(i)
	if !ok || !n.IsMixed() || st.CompletedNodes[i] {
		return 0, false
	}
	q := st.DailyQuest
	if !q.IsFor(today, i) || len(q.Tiles) == 0 {
		return 0, false
	}
	for _, id := range q.Tiles {
		if !st.IsCompleted(id) {
			return 0, false
		}
	}
	st.CompleteNode(i)
	return i, true
}

// MapCleared reports whether the final node is completed.
func MapCleared(st *progress.State) bool {
	return st.CompletedNodes[progress.MaxNodeIndex]
}

func zoneCounts(st *progress.State, catalog *content.Catalog, z content.Zone) (done, total int) {
	qs := catalog.ZoneQuestions(z)
	for _, q := range qs {
		if st.IsCompleted(q.ID) {
			done++
		}
	}
	return done, len(qs)
}
