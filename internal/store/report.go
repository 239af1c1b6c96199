package store

import (
	"context"
	"fmt"

	"ecocoin/internal/database"
	"ecocoin/internal/model"
)

// Leaderboard 依餘額由高到低，同分以 id 遞增排序
func Leaderboard(ctx context.Context, db database.Querier, limit int) ([]model.LeaderboardEntry, error) {
	rows, err := db.Query(ctx,
		`SELECT id, name, photo, balance
		 FROM users
		 ORDER BY balance DESC, id ASC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("Leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []model.LeaderboardEntry{}
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Photo, &e.Balance); err != nil {
			return nil, fmt.Errorf("Leaderboard: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Leaderboard: %w", err)
	}
	return entries, nil
}

func MaterialTotals(ctx context.Context, db database.Querier) (model.MaterialTotals, error) {
	rows, err := db.Query(ctx,
		`SELECT material, SUM(points)
		 FROM transactions
		 GROUP BY material`,
	)
	if err != nil {
		return nil, fmt.Errorf("MaterialTotals: %w", err)
	}
	defer rows.Close()

	totals := model.MaterialTotals{}
	for rows.Next() {
		var (
			material string
			sum      int64
		)
		if err := rows.Scan(&material, &sum); err != nil {
			return nil, fmt.Errorf("MaterialTotals: %w", err)
		}
		totals[material] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("MaterialTotals: %w", err)
	}
	return totals, nil
}

// UserMaterialTotals 以單一 GROUP BY 查詢取得多位使用者的材料彙總，
// 沒有任何紀錄的使用者對應空的 map
func UserMaterialTotals(ctx context.Context, db database.Querier, userIDs []int) (map[int]model.MaterialTotals, error) {
	out := make(map[int]model.MaterialTotals, len(userIDs))
	for _, id := range userIDs {
		out[id] = model.MaterialTotals{}
	}
	if len(userIDs) == 0 {
		return out, nil
	}

	rows, err := db.Query(ctx,
		`SELECT user_id, material, SUM(points)
		 FROM transactions
		 WHERE user_id = ANY($1)
		 GROUP BY user_id, material`,
		userIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("UserMaterialTotals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			userID   int
			material string
			sum      int64
		)
		if err := rows.Scan(&userID, &material, &sum); err != nil {
			return nil, fmt.Errorf("UserMaterialTotals: %w", err)
		}
		if _, ok := out[userID]; !ok {
			out[userID] = model.MaterialTotals{}
		}
		out[userID][material] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("UserMaterialTotals: %w", err)
	}
	return out, nil
}
