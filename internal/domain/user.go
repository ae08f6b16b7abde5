package domain

// User is an account holder. Accounts are seeded out of band and read-only
// from the application's perspective.
type User struct {
	ID      int64
	Email   string
	Name    string
	IsAdmin bool
}
