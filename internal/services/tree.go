package services

import (
	"sort"

	"github.com/xcessv/beefboard/internal/models"
)

// BuildCommentTree turns the flat comment set of one review into an ordered
// forest. Children are indexed once by parent id, every sibling list is
// sorted by CreatedAt ascending (stable, so equal timestamps keep input
// order), and a comment whose parent id does not resolve surfaces as a root
// rather than being dropped. The input slice is not mutated.
func BuildCommentTree(comments []models.Comment) []*models.CommentNode {
	nodes := make(map[string]*models.CommentNode, len(comments))
	for i := range comments {
		nodes[comments[i].ID] = &models.CommentNode{Comment: comments[i]}
	}

	roots := []*models.CommentNode{}
	for i := range comments {
		node := nodes[comments[i].ID]
		if pid := comments[i].ParentID; pid != nil {
			if parent, ok := nodes[*pid]; ok && *pid != comments[i].ID {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	sortForest(roots)
	return roots
}

func sortForest(nodes []*models.CommentNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].CreatedAt.Before(nodes[j].CreatedAt)
	})
	for _, n := range nodes {
		sortForest(n.Replies)
	}
}

// CollectDescendants returns rootID plus every transitive reply id, resolved
// depth-first over an id→children index built from the flat slice. Cycles
// cannot occur by construction (a parent must exist before its reply), but a
// seen-set guards the walk anyway so corrupt data cannot loop it.
func CollectDescendants(comments []models.Comment, rootID string) []string {
	children := make(map[string][]string)
	for i := range comments {
		if pid := comments[i].ParentID; pid != nil {
			children[*pid] = append(children[*pid], comments[i].ID)
		}
	}

	seen := map[string]bool{rootID: true}
	ids := []string{rootID}
	stack := []string{rootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range children[id] {
			if seen[child] {
				continue
			}
			seen[child] = true
			ids = append(ids, child)
			stack = append(stack, child)
		}
	}
	return ids
}
