// Package hierarchy provides pure computations over a snapshot of the
// journal tree. Callers build an Arena from journals loaded by the
// persistence layer; staleness of that snapshot is the caller's concern,
// the arena itself holds no cache across calls.
package hierarchy

import (
	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
)

type node struct {
	id       string
	parentID *string
}

// Arena is an immutable index of journal nodes by id.
type Arena struct {
	nodes    map[string]node
	children map[string][]string
}

// NewArena builds an arena from a snapshot of journals. Journal order is
// preserved in child listings.
func NewArena(journals []domain.Journal) *Arena {
	a := &Arena{
		nodes:    make(map[string]node, len(journals)),
		children: make(map[string][]string),
	}
	for _, j := range journals {
		a.nodes[j.JournalID] = node{id: j.JournalID, parentID: j.ParentJournalID}
		if j.ParentJournalID != nil {
			a.children[*j.ParentJournalID] = append(a.children[*j.ParentJournalID], j.JournalID)
		}
	}
	return a
}

// Contains reports whether the arena holds a journal with the given id.
func (a *Arena) Contains(journalID string) bool {
	_, ok := a.nodes[journalID]
	return ok
}

// ChildIDs returns the direct children of a journal. Unknown ids yield nil.
func (a *Arena) ChildIDs(journalID string) []string {
	return a.children[journalID]
}

// DescendantIDs computes the transitive closure of children for the given
// roots via level-order traversal. Root ids absent from the arena contribute
// nothing; they are not an error, which keeps filtering logic monotonic.
// When includeRoots is true every known root id is part of the result.
func (a *Arena) DescendantIDs(rootIDs []string, includeRoots bool) []string {
	seen := make(map[string]struct{}, len(rootIDs))
	result := make([]string, 0, len(rootIDs))
	queue := make([]string, 0, len(rootIDs))

	for _, id := range rootIDs {
		if !a.Contains(id) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		queue = append(queue, id)
		if includeRoots {
			result = append(result, id)
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, childID := range a.children[current] {
			if _, dup := seen[childID]; dup {
				continue
			}
			seen[childID] = struct{}{}
			queue = append(queue, childID)
			result = append(result, childID)
		}
	}
	return result
}

// IsDescendantOf walks parent pointers from candidateID until ancestorID or
// a root is reached. Dangling ids return false. A journal is not its own
// descendant. The visited set guards termination should the tree invariant
// ever be broken in stored data.
func (a *Arena) IsDescendantOf(candidateID, ancestorID string) bool {
	current, ok := a.nodes[candidateID]
	if !ok || !a.Contains(ancestorID) {
		return false
	}
	visited := map[string]struct{}{candidateID: {}}
	for current.parentID != nil {
		parentID := *current.parentID
		if parentID == ancestorID {
			return true
		}
		if _, cyc := visited[parentID]; cyc {
			return false
		}
		visited[parentID] = struct{}{}
		current, ok = a.nodes[parentID]
		if !ok {
			return false
		}
	}
	return false
}

// Depth returns the distance of a journal from its root (roots are depth 0).
// The second return is false for unknown ids or a broken parent chain.
func (a *Arena) Depth(journalID string) (int, bool) {
	current, ok := a.nodes[journalID]
	if !ok {
		return 0, false
	}
	depth := 0
	visited := map[string]struct{}{journalID: {}}
	for current.parentID != nil {
		parentID := *current.parentID
		if _, cyc := visited[parentID]; cyc {
			return 0, false
		}
		visited[parentID] = struct{}{}
		current, ok = a.nodes[parentID]
		if !ok {
			return 0, false
		}
		depth++
	}
	return depth, true
}

// WouldCreateCycle reports whether re-parenting journalID under
// newParentID would place the journal inside its own subtree.
func (a *Arena) WouldCreateCycle(journalID, newParentID string) bool {
	if journalID == newParentID {
		return true
	}
	return a.IsDescendantOf(newParentID, journalID)
}
