package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/oauth2"
)

// NewToken wraps an access token issued by the patient service. The service signs its
// tokens with a key the console doesn't hold, so the expiration is read from an
// unverified parse. Opaque tokens never expire on the console side.
func NewToken(accessToken string) *oauth2.Token {
	token := &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, &claims); err == nil && claims.ExpiresAt != nil {
		token.Expiry = claims.ExpiresAt.Time
	}

	return token
}

// ExpiresIn returns the remaining validity of the token, zero when it has no expiration
func ExpiresIn(token *oauth2.Token) time.Duration {
	if token == nil || token.Expiry.IsZero() {
		return 0
	}
	return time.Until(token.Expiry)
}
