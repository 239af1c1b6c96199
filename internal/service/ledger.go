package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"ecocoin/internal/database"
	"ecocoin/internal/model"
	"ecocoin/internal/store"

	"github.com/jackc/pgx/v5"
)

var (
	insertTransaction = store.InsertTransaction
	addBalance        = store.AddBalance
	getUserByPin      = store.GetUserByPin
)

// DefaultMaterial 未指定材料時寫入的名稱
const DefaultMaterial = "Unknown"

// Posting 一次回收入帳的內容；points 與 weight 不檢查正負
type Posting struct {
	Material string
	Weight   float64
	Points   int
}

type Ledger struct {
	db  database.DB
	log *slog.Logger
}

func NewLedger(db database.DB, log *slog.Logger) *Ledger {
	if log == nil {
		log = slog.Default()
	}
	return &Ledger{db: db, log: log}
}

// PostPoints 在同一個交易內寫入紀錄並累加餘額，回傳新餘額
func (l *Ledger) PostPoints(ctx context.Context, userID int, p Posting) (int, error) {
	if userID == 0 {
		return 0, fmt.Errorf("%w: user_id is required", ErrValidation)
	}

	var balance int
	err := pgx.BeginFunc(ctx, l.db, func(tx pgx.Tx) error {
		var err error
		balance, err = post(ctx, tx, userID, p)
		return err
	})
	if err != nil {
		return 0, err
	}
	l.log.InfoContext(ctx, "points posted", "user_id", userID, "points", p.Points, "balance", balance)
	return balance, nil
}

// PostPointsByPin 以 secret PIN 找出使用者後入帳；查無 PIN 時不寫入任何資料
func (l *Ledger) PostPointsByPin(ctx context.Context, pin string, p Posting) (int, error) {
	pin = strings.TrimSpace(pin)
	if pin == "" {
		return 0, fmt.Errorf("%w: pin is required", ErrValidation)
	}

	var (
		balance int
		userID  int
	)
	err := pgx.BeginFunc(ctx, l.db, func(tx pgx.Tx) error {
		u, err := getUserByPin(ctx, tx, pin)
		if errors.Is(err, ErrNotFound) {
			return ErrUnknownPin
		}
		if err != nil {
			return err
		}
		userID = u.ID
		balance, err = post(ctx, tx, u.ID, p)
		return err
	})
	if err != nil {
		return 0, err
	}
	l.log.InfoContext(ctx, "points posted by pin", "user_id", userID, "points", p.Points, "balance", balance)
	return balance, nil
}

func post(ctx context.Context, tx pgx.Tx, userID int, p Posting) (int, error) {
	material := strings.TrimSpace(p.Material)
	if material == "" {
		material = DefaultMaterial
	}
	t := &model.Transaction{
		UserID:   userID,
		Material: material,
		Weight:   p.Weight,
		Points:   p.Points,
		Time:     timeNow().UTC(),
	}
	if err := insertTransaction(ctx, tx, t); err != nil {
		return 0, err
	}
	return addBalance(ctx, tx, userID, p.Points)
}

// LookupByPin 供 kiosk 查詢 PIN 對應的使用者
func (l *Ledger) LookupByPin(ctx context.Context, pin string) (*model.User, error) {
	pin = strings.TrimSpace(pin)
	if pin == "" {
		return nil, fmt.Errorf("%w: pin is required", ErrValidation)
	}
	u, err := getUserByPin(ctx, l.db, pin)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrUnknownPin
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
