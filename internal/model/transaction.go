// File: internal/model/transaction.go
package model

import "time"

// Transaction 是一筆不可變的點數入帳紀錄
type Transaction struct {
	ID       int       `db:"id" json:"id"`
	UserID   int       `db:"user_id" json:"user_id"`
	Material string    `db:"material" json:"material"`
	Weight   float64   `db:"weight" json:"weight"`
	Points   int       `db:"points" json:"points"`
	Time     time.Time `db:"time" json:"time"`
}

// LeaderboardEntry 排行榜的一列
type LeaderboardEntry struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Photo   string `json:"photo"`
	Balance int    `json:"balance"`
}

// MaterialTotals 以材料名稱彙總的點數
type MaterialTotals map[string]int64
