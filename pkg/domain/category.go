package domain

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType separates the income tree from the expenses tree.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// Category is a node in a per-user tree. Roots have a nil ParentID; the two
// roots seeded for every user are named "Income" and "Expenses". The parent
// chain must stay acyclic: WouldCycle is checked on every reparent and the
// traversals below carry a visited set so legacy bad data still terminates.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Color     string
	Type      CategoryType
	ParentID  *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRoot reports whether the category has no parent.
func (c *Category) IsRoot() bool { return c.ParentID == nil }

// WouldCycle reports whether setting newParent as the parent of child would
// create a cycle in the given category set. Reparenting a category under
// itself or under any of its descendants is a cycle.
func WouldCycle(categories []*Category, child uuid.UUID, newParent uuid.UUID) bool {
	if child == newParent {
		return true
	}
	byID := make(map[uuid.UUID]*Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	seen := map[uuid.UUID]bool{}
	cur := newParent
	for {
		if cur == child {
			return true
		}
		if seen[cur] {
			return false // existing cycle elsewhere, not introduced by this edge
		}
		seen[cur] = true
		c, ok := byID[cur]
		if !ok || c.ParentID == nil {
			return false
		}
		cur = *c.ParentID
	}
}

// DescendantIDs returns the ids of root and every category below it.
// Traversal is iterative with a visited set, so it terminates even if the
// stored parent links contain a cycle.
func DescendantIDs(categories []*Category, root uuid.UUID) map[uuid.UUID]bool {
	children := make(map[uuid.UUID][]uuid.UUID, len(categories))
	for _, c := range categories {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}
	result := map[uuid.UUID]bool{root: true}
	stack := []uuid.UUID{root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range children[cur] {
			if result[child] {
				continue
			}
			result[child] = true
			stack = append(stack, child)
		}
	}
	return result
}

// ChildIDs returns the direct children of the given category.
func ChildIDs(categories []*Category, parent uuid.UUID) []uuid.UUID {
	var out []uuid.UUID
	for _, c := range categories {
		if c.ParentID != nil && *c.ParentID == parent {
			out = append(out, c.ID)
		}
	}
	return out
}
