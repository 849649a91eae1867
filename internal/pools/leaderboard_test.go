package pools

import (
	"testing"
	"time"
)

func TestBuildLeaderboardDeterministicTies(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	// Rows arrive pre-sorted by points desc, joined_at asc, id asc,
	// matching the leaderboard query.
	rows := []memberRow{
		{MemberID: 1, UserID: 10, Name: "ada", Points: 10, JoinedAt: base},
		{MemberID: 2, UserID: 11, Name: "bob", Points: 10, JoinedAt: base.Add(time.Minute)},
		{MemberID: 3, UserID: 12, Name: "cleo", Points: 5, JoinedAt: base.Add(2 * time.Minute)},
	}

	for range 10 {
		board := buildLeaderboard(rows, 11)
		if len(board.Entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(board.Entries))
		}
		if board.Entries[0].UserID != 10 || board.Entries[0].Rank != 1 {
			t.Fatalf("first joiner must win the tie, got user %d rank %d",
				board.Entries[0].UserID, board.Entries[0].Rank)
		}
		if board.Entries[1].UserID != 11 || board.Entries[1].Rank != 2 {
			t.Fatalf("tied later joiner must rank second, got user %d rank %d",
				board.Entries[1].UserID, board.Entries[1].Rank)
		}
		if board.Entries[2].Rank != 3 {
			t.Fatalf("ranks must be sequential with no gaps, got %d", board.Entries[2].Rank)
		}
		if !board.Entries[1].You || board.MyRank != 2 {
			t.Fatalf("requester row not flagged: you=%t my_rank=%d", board.Entries[1].You, board.MyRank)
		}
	}
}

func TestBuildLeaderboardEmptyPool(t *testing.T) {
	board := buildLeaderboard(nil, 1)
	if len(board.Entries) != 0 || board.MyRank != 0 {
		t.Fatalf("expected empty board, got %#v", board)
	}
}
