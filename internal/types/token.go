package types

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the claims carried by ChefCommunity bearer tokens.
// The subject is the numeric user id rendered as a string.
type TokenClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username,omitempty"`
	Rol      Role   `json:"rol,omitempty"`
}

// UserID parses the subject claim.
func (c *TokenClaims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subject %q: %w", c.Subject, err)
	}
	return id, nil
}
