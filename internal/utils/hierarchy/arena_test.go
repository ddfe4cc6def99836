package hierarchy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
	"github.com/zhurnal-erp/zhurnal_backend/internal/utils/hierarchy"
)

func strPtr(s string) *string { return &s }

// buildTestArena constructs:
//
//	root
//	├── a
//	│   ├── a1
//	│   └── a2
//	│       └── a2x
//	└── b
//	other (second root)
func buildTestArena() *hierarchy.Arena {
	journals := []domain.Journal{
		{JournalID: "root", Name: "Root"},
		{JournalID: "a", ParentJournalID: strPtr("root")},
		{JournalID: "b", ParentJournalID: strPtr("root")},
		{JournalID: "a1", ParentJournalID: strPtr("a")},
		{JournalID: "a2", ParentJournalID: strPtr("a")},
		{JournalID: "a2x", ParentJournalID: strPtr("a2")},
		{JournalID: "other"},
	}
	return hierarchy.NewArena(journals)
}

func TestDescendantIDs_FullClosure(t *testing.T) {
	arena := buildTestArena()

	got := arena.DescendantIDs([]string{"root"}, true)
	assert.ElementsMatch(t, []string{"root", "a", "b", "a1", "a2", "a2x"}, got)
}

func TestDescendantIDs_ExcludeRoots(t *testing.T) {
	arena := buildTestArena()

	got := arena.DescendantIDs([]string{"a"}, false)
	assert.ElementsMatch(t, []string{"a1", "a2", "a2x"}, got)
}

func TestDescendantIDs_MissingRootContributesNothing(t *testing.T) {
	arena := buildTestArena()

	got := arena.DescendantIDs([]string{"nope"}, true)
	assert.Empty(t, got)

	// A missing root mixed with a real one must not poison the result.
	got = arena.DescendantIDs([]string{"nope", "a2"}, true)
	assert.ElementsMatch(t, []string{"a2", "a2x"}, got)
}

func TestDescendantIDs_MultipleOverlappingRoots(t *testing.T) {
	arena := buildTestArena()

	// a2 is already inside a's subtree; the union must stay a set.
	got := arena.DescendantIDs([]string{"a", "a2"}, true)
	assert.ElementsMatch(t, []string{"a", "a1", "a2", "a2x"}, got)
}

func TestDescendantIDs_LeafHasOnlyItself(t *testing.T) {
	arena := buildTestArena()

	assert.Equal(t, []string{"b"}, arena.DescendantIDs([]string{"b"}, true))
	assert.Empty(t, arena.DescendantIDs([]string{"b"}, false))
}

func TestIsDescendantOf(t *testing.T) {
	arena := buildTestArena()

	assert.True(t, arena.IsDescendantOf("a2x", "root"))
	assert.True(t, arena.IsDescendantOf("a2x", "a"))
	assert.True(t, arena.IsDescendantOf("a1", "a"))
	assert.False(t, arena.IsDescendantOf("a", "a"), "a journal is not its own descendant")
	assert.False(t, arena.IsDescendantOf("b", "a"))
	assert.False(t, arena.IsDescendantOf("root", "a2x"))
	assert.False(t, arena.IsDescendantOf("other", "root"), "separate roots are unrelated")
}

func TestIsDescendantOf_DanglingIDs(t *testing.T) {
	arena := buildTestArena()

	assert.False(t, arena.IsDescendantOf("ghost", "root"))
	assert.False(t, arena.IsDescendantOf("a1", "ghost"))
}

func TestDepth(t *testing.T) {
	arena := buildTestArena()

	cases := map[string]int{"root": 0, "other": 0, "a": 1, "b": 1, "a1": 2, "a2": 2, "a2x": 3}
	for id, want := range cases {
		depth, ok := arena.Depth(id)
		assert.True(t, ok, id)
		assert.Equal(t, want, depth, id)
	}

	_, ok := arena.Depth("ghost")
	assert.False(t, ok)
}

func TestDepth_BrokenParentChain(t *testing.T) {
	arena := hierarchy.NewArena([]domain.Journal{
		{JournalID: "x", ParentJournalID: strPtr("missing")},
	})

	_, ok := arena.Depth("x")
	assert.False(t, ok)
}

func TestTraversalTerminatesOnCorruptCycle(t *testing.T) {
	// The tree invariant forbids this shape; the arena must still terminate
	// if stored data is corrupt.
	arena := hierarchy.NewArena([]domain.Journal{
		{JournalID: "p", ParentJournalID: strPtr("q")},
		{JournalID: "q", ParentJournalID: strPtr("p")},
	})

	assert.False(t, arena.IsDescendantOf("p", "zzz"))
	_, ok := arena.Depth("p")
	assert.False(t, ok)
	got := arena.DescendantIDs([]string{"p"}, true)
	assert.ElementsMatch(t, []string{"p", "q"}, got)
}

func TestWouldCreateCycle(t *testing.T) {
	arena := buildTestArena()

	assert.True(t, arena.WouldCreateCycle("a", "a"))
	assert.True(t, arena.WouldCreateCycle("a", "a2x"), "cannot re-parent under own subtree")
	assert.False(t, arena.WouldCreateCycle("a", "b"))
	assert.False(t, arena.WouldCreateCycle("a2x", "root"))
}
