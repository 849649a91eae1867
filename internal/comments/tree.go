// Package comments assembles flat, parent-pointer comment rows into a nested
// reply tree for display.
package comments

import "couchclub/internal/db"

// Node is one comment with its replies in chronological order.
type Node struct {
	Comment db.Comment `json:"comment"`
	Replies []*Node    `json:"replies"`
}

// BuildTree turns comment rows ordered by creation time ascending into a
// forest. A comment whose parent is missing from the input (deleted, or
// outside the fetched window) becomes a root rather than an error, and
// sibling order follows the input order.
func BuildTree(rows []db.Comment) []*Node {
	nodes := make(map[uint]*Node, len(rows))
	for i := range rows {
		nodes[rows[i].ID] = &Node{Comment: rows[i], Replies: []*Node{}}
	}
	roots := make([]*Node, 0, len(rows))
	for i := range rows {
		node := nodes[rows[i].ID]
		if rows[i].ParentID != nil {
			if parent, ok := nodes[*rows[i].ParentID]; ok && parent != node {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}
