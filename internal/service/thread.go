package service

import (
	"twosides/internal/models"
)

// CommentNode is one comment with its replies nested beneath it.
type CommentNode struct {
	models.Comment
	Children []*CommentNode `json:"children,omitempty"`
}

// BuildThread folds a flat, ID-ordered comment list into a forest. A zero
// ParentID marks a top-level comment. Children keep ID order, which is also
// creation order. A comment whose parent is missing from the list is kept as
// top-level rather than dropped; parents always precede children by ID, so a
// single pass suffices.
func BuildThread(comments []models.Comment) []*CommentNode {
	nodes := make(map[uint]*CommentNode, len(comments))
	roots := make([]*CommentNode, 0, len(comments))

	for i := range comments {
		node := &CommentNode{Comment: comments[i]}
		nodes[node.ID] = node

		if node.ParentID == 0 {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[node.ParentID]
		if !ok || parent.ID == node.ID {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots
}
