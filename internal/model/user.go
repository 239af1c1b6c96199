// File: internal/model/user.go
package model

type User struct {
	ID           int    `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password" json:"-"`
	Photo        string `db:"photo" json:"photo"`
	Balance      int    `db:"balance" json:"balance"`
	Username     string `db:"username" json:"username"`
	Gender       string `db:"gender" json:"gender"`
	Address      string `db:"address" json:"address"`
	Joined       string `db:"joined" json:"joined"`
	SecretPin    string `db:"secret_pin" json:"secret_pin"`
}

// Profile 是使用者可自行修改的欄位
type Profile struct {
	Username string
	Gender   string
	Address  string
	Joined   string
}
