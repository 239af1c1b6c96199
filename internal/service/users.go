package service

import (
	"context"
	"fmt"
	"strings"

	"ecocoin/internal/database"
	"ecocoin/internal/model"
	"ecocoin/internal/store"
)

var (
	getUserByID            = store.GetUserByID
	listUsers              = store.ListUsers
	updateProfile          = store.UpdateProfile
	updateUser             = store.UpdateUser
	deleteUser             = store.DeleteUser
	listTransactionsByUser = store.ListTransactionsByUser
)

// Dashboard 使用者本人與其入帳紀錄 (新到舊)
type Dashboard struct {
	User         *model.User
	Transactions []model.Transaction
}

func LoadDashboard(ctx context.Context, db database.Querier, userID int) (*Dashboard, error) {
	u, err := getUserByID(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	txs, err := listTransactionsByUser(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	return &Dashboard{User: u, Transactions: txs}, nil
}

func GetUser(ctx context.Context, db database.Querier, userID int) (*model.User, error) {
	return getUserByID(ctx, db, userID)
}

func EditProfile(ctx context.Context, db database.Querier, userID int, p model.Profile) error {
	p.Username = strings.TrimSpace(p.Username)
	p.Gender = strings.TrimSpace(p.Gender)
	p.Address = strings.TrimSpace(p.Address)
	p.Joined = strings.TrimSpace(p.Joined)
	return updateProfile(ctx, db, userID, p)
}

func ListUsers(ctx context.Context, db database.Querier) ([]model.User, error) {
	users, err := listUsers(ctx, db)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// AdminEdit 管理員可修改的欄位
type AdminEdit struct {
	Name      string
	Email     string
	Balance   int
	Username  string
	Gender    string
	Address   string
	Joined    string
	SecretPin string
}

// EditUser 管理員覆寫使用者資料；email 會轉小寫
func EditUser(ctx context.Context, db database.Querier, userID int, in AdminEdit) error {
	u := &model.User{
		ID:        userID,
		Name:      strings.TrimSpace(in.Name),
		Email:     NormalizeEmail(in.Email),
		Balance:   in.Balance,
		Username:  strings.TrimSpace(in.Username),
		Gender:    strings.TrimSpace(in.Gender),
		Address:   strings.TrimSpace(in.Address),
		Joined:    strings.TrimSpace(in.Joined),
		SecretPin: strings.TrimSpace(in.SecretPin),
	}
	if u.Name == "" || u.Email == "" {
		return fmt.Errorf("%w: name and email are required", ErrValidation)
	}
	return updateUser(ctx, db, u)
}

// DeleteUser 硬刪除使用者，入帳紀錄由外鍵 cascade 一併刪除
func DeleteUser(ctx context.Context, db database.Querier, userID int) error {
	return deleteUser(ctx, db, userID)
}
