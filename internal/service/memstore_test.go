package service

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"ecocoin/internal/database"
	"ecocoin/internal/model"

	"github.com/jackc/pgx/v5"
)

// memStore 以記憶體取代 store 套件的查詢函式，db 參數一律忽略
type memStore struct {
	users  map[int]*model.User
	txs    []model.Transaction
	nextID int
	nextTx int

	opened []*database.FakeTx
}

func useMemStore(t *testing.T) (*memStore, *database.FakeDB) {
	t.Helper()
	m := &memStore{users: map[int]*model.User{}}

	origCreate, origSetPin := createUser, setSecretPin
	origByEmail, origByID, origByPin := getUserByEmail, getUserByID, getUserByPin
	origInsert, origAdd := insertTransaction, addBalance
	origLB, origMT, origUMT := leaderboard, materialTotals, userMaterialTotals
	origList, origTxs := listUsers, listTransactionsByUser
	t.Cleanup(func() {
		createUser, setSecretPin = origCreate, origSetPin
		getUserByEmail, getUserByID, getUserByPin = origByEmail, origByID, origByPin
		insertTransaction, addBalance = origInsert, origAdd
		leaderboard, materialTotals, userMaterialTotals = origLB, origMT, origUMT
		listUsers, listTransactionsByUser = origList, origTxs
	})

	createUser = func(_ context.Context, _ database.Querier, u *model.User) (*model.User, error) {
		for _, existing := range m.users {
			if existing.Email == u.Email {
				return nil, fmt.Errorf("CreateUser: %w", ErrDuplicateEmail)
			}
		}
		m.nextID++
		u.ID = m.nextID
		u.Balance = 0
		cp := *u
		m.users[u.ID] = &cp
		return u, nil
	}
	setSecretPin = func(_ context.Context, _ database.Querier, id int, pin string) error {
		for _, existing := range m.users {
			if existing.SecretPin == pin && existing.ID != id {
				return fmt.Errorf("SetSecretPin: %w", ErrDuplicatePin)
			}
		}
		u, ok := m.users[id]
		if !ok {
			return fmt.Errorf("SetSecretPin: %w", ErrNotFound)
		}
		u.SecretPin = pin
		return nil
	}
	getUserByEmail = func(_ context.Context, _ database.Querier, email string) (*model.User, error) {
		for _, u := range m.users {
			if u.Email == email {
				cp := *u
				return &cp, nil
			}
		}
		return nil, fmt.Errorf("GetUserByEmail: %w", ErrNotFound)
	}
	getUserByID = func(_ context.Context, _ database.Querier, id int) (*model.User, error) {
		u, ok := m.users[id]
		if !ok {
			return nil, fmt.Errorf("GetUserByID: %w", ErrNotFound)
		}
		cp := *u
		return &cp, nil
	}
	getUserByPin = func(_ context.Context, _ database.Querier, pin string) (*model.User, error) {
		for _, u := range m.users {
			if u.SecretPin == pin {
				cp := *u
				return &cp, nil
			}
		}
		return nil, fmt.Errorf("GetUserByPin: %w", ErrNotFound)
	}
	insertTransaction = func(_ context.Context, _ database.Querier, tr *model.Transaction) error {
		if _, ok := m.users[tr.UserID]; !ok {
			return fmt.Errorf("InsertTransaction: %w", ErrNotFound)
		}
		m.nextTx++
		tr.ID = m.nextTx
		m.txs = append(m.txs, *tr)
		return nil
	}
	addBalance = func(_ context.Context, _ database.Querier, id int, points int) (int, error) {
		u, ok := m.users[id]
		if !ok {
			return 0, fmt.Errorf("AddBalance: %w", ErrNotFound)
		}
		u.Balance += points
		return u.Balance, nil
	}
	leaderboard = func(_ context.Context, _ database.Querier, limit int) ([]model.LeaderboardEntry, error) {
		out := []model.LeaderboardEntry{}
		for _, u := range m.users {
			out = append(out, model.LeaderboardEntry{ID: u.ID, Name: u.Name, Photo: u.Photo, Balance: u.Balance})
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Balance != out[j].Balance {
				return out[i].Balance > out[j].Balance
			}
			return out[i].ID < out[j].ID
		})
		if len(out) > limit {
			out = out[:limit]
		}
		return out, nil
	}
	materialTotals = func(context.Context, database.Querier) (model.MaterialTotals, error) {
		totals := model.MaterialTotals{}
		for _, tr := range m.txs {
			totals[tr.Material] += int64(tr.Points)
		}
		return totals, nil
	}
	userMaterialTotals = func(_ context.Context, _ database.Querier, ids []int) (map[int]model.MaterialTotals, error) {
		out := map[int]model.MaterialTotals{}
		for _, id := range ids {
			out[id] = model.MaterialTotals{}
		}
		for _, tr := range m.txs {
			if totals, ok := out[tr.UserID]; ok {
				totals[tr.Material] += int64(tr.Points)
			}
		}
		return out, nil
	}
	listUsers = func(context.Context, database.Querier) ([]model.User, error) {
		var out []model.User
		for id := 1; id <= m.nextID; id++ {
			if u, ok := m.users[id]; ok {
				out = append(out, *u)
			}
		}
		return out, nil
	}
	listTransactionsByUser = func(_ context.Context, _ database.Querier, id int) ([]model.Transaction, error) {
		var out []model.Transaction
		for i := len(m.txs) - 1; i >= 0; i-- {
			if m.txs[i].UserID == id {
				out = append(out, m.txs[i])
			}
		}
		return out, nil
	}

	db := &database.FakeDB{BeginFn: func(context.Context) (pgx.Tx, error) {
		tx := &database.FakeTx{}
		m.opened = append(m.opened, tx)
		return tx, nil
	}}
	return m, db
}

// balanceMatchesLedger 檢查每位使用者 balance 等於其入帳點數總和
func (m *memStore) balanceMatchesLedger() bool {
	sums := map[int]int{}
	for _, tr := range m.txs {
		sums[tr.UserID] += tr.Points
	}
	for id, u := range m.users {
		if u.Balance != sums[id] {
			return false
		}
	}
	return true
}

func (m *memStore) lastTx() *database.FakeTx {
	if len(m.opened) == 0 {
		return nil
	}
	return m.opened[len(m.opened)-1]
}
