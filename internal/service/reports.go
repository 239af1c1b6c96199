package service

import (
	"context"

	"ecocoin/internal/database"
	"ecocoin/internal/model"
	"ecocoin/internal/store"
)

var (
	leaderboard        = store.Leaderboard
	materialTotals     = store.MaterialTotals
	userMaterialTotals = store.UserMaterialTotals
)

// DefaultLeaderboardLimit 排行榜預設顯示人數
const DefaultLeaderboardLimit = 50

// RankedUser 排行榜一列加上該使用者的材料明細
type RankedUser struct {
	model.LeaderboardEntry
	Materials model.MaterialTotals `json:"materials"`
}

type LeaderboardView struct {
	Users  []RankedUser         `json:"users"`
	Totals model.MaterialTotals `json:"totals"`
}

// Leaderboard 排行榜、全體材料總計與每位上榜者的材料明細；
// 明細以一次 GROUP BY 查詢取得
func Leaderboard(ctx context.Context, db database.Querier, limit int) (*LeaderboardView, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	entries, err := leaderboard(ctx, db, limit)
	if err != nil {
		return nil, err
	}
	totals, err := materialTotals(ctx, db)
	if err != nil {
		return nil, err
	}

	ids := make([]int, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	perUser, err := userMaterialTotals(ctx, db, ids)
	if err != nil {
		return nil, err
	}

	view := &LeaderboardView{Users: make([]RankedUser, len(entries)), Totals: totals}
	for i, e := range entries {
		m := perUser[e.ID]
		if m == nil {
			m = model.MaterialTotals{}
		}
		view.Users[i] = RankedUser{LeaderboardEntry: e, Materials: m}
	}
	return view, nil
}
