package frigocheck

import (
	"encoding/json"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the identity claims embedded in the bearer token
// payload. They are extracted without signature verification: treat
// them as an untrusted hint for bootstrapping a profile lookup key,
// never as an authorization decision input.
type TokenClaims struct {
	ID    UserID `json:"id"`
	Email string `json:"email"`
}

var claimsParser = jwt.NewParser()

// DecodeToken splits the token on its structural delimiter,
// base64-decodes the middle segment and extracts the id/email claims.
// It returns nil (not an error) when the token is absent, malformed or
// the payload segment fails to parse; decode failure degrades to "no
// derivable user id" for the caller.
func DecodeToken(token string) *TokenClaims {
	if token == "" {
		return nil
	}

	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return nil
	}

	payload, err := claimsParser.DecodeSegment(segments[1])
	if err != nil {
		return nil
	}

	claims := &TokenClaims{}
	if err := json.Unmarshal(payload, claims); err != nil {
		return nil
	}

	return claims
}
