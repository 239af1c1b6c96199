package store

import (
	"context"
	"fmt"

	"ecocoin/internal/database"
	"ecocoin/internal/model"
)

// InsertTransaction 寫入一筆入帳紀錄；user_id 不存在時回傳 ErrNotFound
func InsertTransaction(ctx context.Context, db database.Querier, t *model.Transaction) error {
	row := db.QueryRow(ctx,
		`INSERT INTO transactions (user_id, material, weight, points, time)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		t.UserID,
		t.Material,
		t.Weight,
		t.Points,
		t.Time,
	)
	if err := row.Scan(&t.ID); err != nil {
		return fmt.Errorf("InsertTransaction: %w", translate(err))
	}
	return nil
}

// AddBalance 累加使用者餘額並回傳更新後的值
func AddBalance(ctx context.Context, db database.Querier, userID int, points int) (int, error) {
	var balance int
	err := db.QueryRow(ctx,
		`UPDATE users SET balance = balance + $1
		 WHERE id = $2
		 RETURNING balance`,
		points,
		userID,
	).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("AddBalance: %w", translate(err))
	}
	return balance, nil
}

func ListTransactionsByUser(ctx context.Context, db database.Querier, userID int) ([]model.Transaction, error) {
	rows, err := db.Query(ctx,
		`SELECT id, user_id, material, weight, points, time
		 FROM transactions WHERE user_id = $1
		 ORDER BY id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListTransactionsByUser: %w", err)
	}
	defer rows.Close()

	var txs []model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Material, &t.Weight, &t.Points, &t.Time); err != nil {
			return nil, fmt.Errorf("ListTransactionsByUser: %w", err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTransactionsByUser: %w", err)
	}
	return txs, nil
}
