package entities

// User represents a registered user, either guest or owner
type User struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-" db:"password"` // bcrypt hash
}

// NewUser holds the fields required to insert a user
type NewUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
}
