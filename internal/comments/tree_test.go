package comments

import (
	"testing"

	"couchclub/internal/db"
)

func ptr(v uint) *uint { return &v }

func TestBuildTreeNestsReplies(t *testing.T) {
	rows := []db.Comment{
		{ID: 1},
		{ID: 2, ParentID: ptr(1)},
		{ID: 3, ParentID: ptr(1)},
		{ID: 4, ParentID: ptr(2)},
	}
	roots := BuildTree(rows)
	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}
	if len(roots[0].Replies) != 2 {
		t.Fatalf("expected 2 replies under root, got %d", len(roots[0].Replies))
	}
	if roots[0].Replies[0].Comment.ID != 2 || roots[0].Replies[1].Comment.ID != 3 {
		t.Fatalf("sibling order not preserved: %d, %d",
			roots[0].Replies[0].Comment.ID, roots[0].Replies[1].Comment.ID)
	}
	if len(roots[0].Replies[0].Replies) != 1 || roots[0].Replies[0].Replies[0].Comment.ID != 4 {
		t.Fatalf("expected comment 4 nested under comment 2")
	}
}

func TestBuildTreeOrphanBecomesRoot(t *testing.T) {
	rows := []db.Comment{
		{ID: 1},
		{ID: 2, ParentID: ptr(1)},
		{ID: 3, ParentID: ptr(99)},
	}
	roots := BuildTree(rows)
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	if roots[0].Comment.ID != 1 || roots[1].Comment.ID != 3 {
		t.Fatalf("unexpected roots %d, %d", roots[0].Comment.ID, roots[1].Comment.ID)
	}
	if len(roots[0].Replies) != 1 || roots[0].Replies[0].Comment.ID != 2 {
		t.Fatalf("expected comment 2 under comment 1")
	}
}

func TestBuildTreeEmptyInput(t *testing.T) {
	if roots := BuildTree(nil); len(roots) != 0 {
		t.Fatalf("expected empty forest, got %d roots", len(roots))
	}
}

func TestBuildTreeSelfParentBecomesRoot(t *testing.T) {
	rows := []db.Comment{{ID: 7, ParentID: ptr(7)}}
	roots := BuildTree(rows)
	if len(roots) != 1 || roots[0].Comment.ID != 7 {
		t.Fatalf("expected self-referential comment as root, got %#v", roots)
	}
	if len(roots[0].Replies) != 0 {
		t.Fatalf("self-referential comment must not nest under itself")
	}
}
