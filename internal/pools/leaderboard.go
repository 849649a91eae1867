package pools

import (
	"context"
	"fmt"
	"time"

	"couchclub/internal/db"
	"couchclub/internal/errs"
)

// LeaderboardEntry is one ranked member row. Ranks are 1-based with no gaps;
// ties never share a rank, the earlier join wins.
type LeaderboardEntry struct {
	Rank     int       `json:"rank"`
	UserID   uint      `json:"user_id"`
	Name     string    `json:"name"`
	Points   int       `json:"points"`
	JoinedAt time.Time `json:"joined_at"`
	You      bool      `json:"you,omitempty"`
}

type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
	MyRank  int                `json:"my_rank,omitempty"`
}

type memberRow struct {
	MemberID uint
	UserID   uint
	Name     string
	Points   int
	JoinedAt time.Time
}

// Leaderboard ranks the pool's members by running point total. The requester
// must be a member unless the pool is public.
func (s *Service) Leaderboard(ctx context.Context, requesterID, poolID uint) (Leaderboard, error) {
	pool, err := s.getPool(ctx, poolID)
	if err != nil {
		return Leaderboard{}, err
	}
	member, err := s.isMember(ctx, poolID, requesterID)
	if err != nil {
		return Leaderboard{}, err
	}
	if !member && pool.Visibility != db.PoolVisibilityPublic {
		return Leaderboard{}, fmt.Errorf("%w: pool is private", errs.ErrForbidden)
	}

	var rows []memberRow
	err = s.db.WithContext(ctx).Model(&db.PoolMember{}).
		Select("pool_members.id AS member_id, pool_members.user_id, users.name, pool_members.points, pool_members.joined_at").
		Joins("JOIN users ON users.id = pool_members.user_id").
		Where("pool_members.pool_id = ?", poolID).
		Order("pool_members.points DESC, pool_members.joined_at ASC, pool_members.id ASC").
		Scan(&rows).Error
	if err != nil {
		return Leaderboard{}, err
	}
	return buildLeaderboard(rows, requesterID), nil
}

// buildLeaderboard assigns sequential ranks to rows already ordered by
// points desc then join time asc, and flags the requester's own entry. The
// ordering is total (member id is the final tiebreak in the query), so
// repeated calls always return the same ranking.
func buildLeaderboard(rows []memberRow, requesterID uint) Leaderboard {
	board := Leaderboard{Entries: make([]LeaderboardEntry, 0, len(rows))}
	for i, row := range rows {
		entry := LeaderboardEntry{
			Rank:     i + 1,
			UserID:   row.UserID,
			Name:     row.Name,
			Points:   row.Points,
			JoinedAt: row.JoinedAt,
			You:      row.UserID == requesterID,
		}
		if entry.You {
			board.MyRank = entry.Rank
		}
		board.Entries = append(board.Entries, entry)
	}
	return board
}
