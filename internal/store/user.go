package store

import (
	"context"
	"fmt"

	"ecocoin/internal/database"
	"ecocoin/internal/model"
)

const userColumns = `id, name, email, password, photo, balance,
		username, gender, address, joined, COALESCE(secret_pin, '')`

func scanUser(row scanner) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Photo,
		&u.Balance,
		&u.Username,
		&u.Gender,
		&u.Address,
		&u.Joined,
		&u.SecretPin,
	); err != nil {
		return nil, err
	}
	return u, nil
}

func GetUserByID(ctx context.Context, db database.Querier, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE id = $1`,
		userID,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", translate(err))
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.Querier, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE email = $1`,
		email,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", translate(err))
	}
	return u, nil
}

func GetUserByPin(ctx context.Context, db database.Querier, pin string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE secret_pin = $1`,
		pin,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("GetUserByPin: %w", translate(err))
	}
	return u, nil
}

func ListUsers(ctx context.Context, db database.Querier) ([]model.User, error) {
	rows, err := db.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ListUsers: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	return users, nil
}

func CreateUser(ctx context.Context, db database.Querier, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (name, email, password, photo)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, balance`,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Photo,
	)
	if err := row.Scan(&u.ID, &u.Balance); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", translate(err))
	}
	return u, nil
}

func SetSecretPin(ctx context.Context, db database.Querier, userID int, pin string) error {
	tag, err := db.Exec(ctx,
		`UPDATE users SET secret_pin = $1 WHERE id = $2`,
		pin,
		userID,
	)
	if err != nil {
		return fmt.Errorf("SetSecretPin: %w", translate(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("SetSecretPin: %w", ErrNotFound)
	}
	return nil
}

func UpdateProfile(ctx context.Context, db database.Querier, userID int, p model.Profile) error {
	tag, err := db.Exec(ctx,
		`UPDATE users
		 SET username = $1, gender = $2, address = $3, joined = $4
		 WHERE id = $5`,
		p.Username,
		p.Gender,
		p.Address,
		p.Joined,
		userID,
	)
	if err != nil {
		return fmt.Errorf("UpdateProfile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateProfile: %w", ErrNotFound)
	}
	return nil
}

// UpdateUser 管理員編輯，會覆寫 balance 與 secret_pin
func UpdateUser(ctx context.Context, db database.Querier, u *model.User) error {
	tag, err := db.Exec(ctx,
		`UPDATE users
		 SET name = $1, email = $2, balance = $3, username = $4,
		     gender = $5, address = $6, joined = $7, secret_pin = NULLIF($8, '')
		 WHERE id = $9`,
		u.Name,
		u.Email,
		u.Balance,
		u.Username,
		u.Gender,
		u.Address,
		u.Joined,
		u.SecretPin,
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUser: %w", translate(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateUser: %w", ErrNotFound)
	}
	return nil
}

func DeleteUser(ctx context.Context, db database.Querier, ID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM users WHERE id = $1`,
		ID,
	)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteUser: %w", ErrNotFound)
	}
	return nil
}
