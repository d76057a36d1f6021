package types

// Session is the authenticated identity paired with its bearer token.
// Both halves are present or the session does not exist.
type Session struct {
	User  UserSummary `json:"user"`
	Token string      `json:"token"`
}

// Valid reports whether both the identity and the token are set.
func (s Session) Valid() bool {
	return s.User.ID != 0 && s.Token != ""
}
