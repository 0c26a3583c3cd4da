package domain

// User is the profile of a known account. Immutable once created.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
