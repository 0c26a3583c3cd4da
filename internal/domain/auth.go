package domain

// AuthState is the signed-in snapshot the presentation layer renders from.
type AuthState struct {
	User            *User
	Token           string
	IsAuthenticated bool
}
