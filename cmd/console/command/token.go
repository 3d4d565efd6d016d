package command

import (
	"fmt"
	"os"

	"golang.org/x/oauth2"

	"github.com/medidesk/console/auth"
)

// resolveToken returns the token given as flag, falling back to the environment
func resolveToken(flag string) (*oauth2.Token, error) {
	value := flag
	if value == "" {
		value = os.Getenv(tokenEnvKey)
	}
	if value == "" {
		return nil, fmt.Errorf("a token is required, use --token or set %s", tokenEnvKey)
	}

	token := auth.NewToken(value)
	if !token.Valid() {
		return nil, fmt.Errorf("the token expired at %s, log in again", token.Expiry)
	}
	return token, nil
}
