package entity

// User is a stored staff credential. Password holds a bcrypt hash; the users
// file keeps the original username-to-password-string shape.
type User struct {
	Username string `json:"username"`
	Password string `json:"-"`
}
