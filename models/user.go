package models

// User is an account that submits planning problems. It maps to the `users`
// table in SQLite; Role is "end user" by default and "admin" for operators.
type User struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Role     string `db:"role" json:"role"`
}
