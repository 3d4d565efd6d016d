package remote

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string
	User  *User
}

type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

type RegisterResponse struct {
	// Token is set when the service authenticates the user as part of the registration
	Token string
	Raw   json.RawMessage
}

// User is the account returned by the patient service on login. The service does not
// commit to a schema, so known attributes are picked loosely and the original document
// is kept in Raw.
type User struct {
	Id        string         `mapstructure:"id" json:"id,omitempty" bson:"id,omitempty"`
	Email     string         `mapstructure:"email" json:"email,omitempty" bson:"email,omitempty"`
	FirstName string         `mapstructure:"first_name" json:"firstName,omitempty" bson:"firstName,omitempty"`
	LastName  string         `mapstructure:"last_name" json:"lastName,omitempty" bson:"lastName,omitempty"`
	Name      string         `mapstructure:"name" json:"name,omitempty" bson:"name,omitempty"`
	Role      string         `mapstructure:"role" json:"role,omitempty" bson:"role,omitempty"`
	Raw       map[string]any `mapstructure:"-" json:"raw,omitempty" bson:"raw,omitempty"`
}

var userKeyAliases = map[string]string{
	"_id":       "id",
	"userId":    "id",
	"firstName": "first_name",
	"lastName":  "last_name",
	"fullName":  "name",
}

// DecodeUser builds a User out of an arbitrary JSON object
func DecodeUser(raw map[string]any) (*User, error) {
	if raw == nil {
		return nil, nil
	}

	normalized := make(map[string]any, len(raw))
	for key, value := range raw {
		normalized[key] = value
	}
	for alias, key := range userKeyAliases {
		if _, ok := normalized[key]; ok {
			continue
		}
		if value, ok := raw[alias]; ok {
			normalized[key] = value
		}
	}

	user := &User{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           user,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(normalized); err != nil {
		return nil, fmt.Errorf("unable to decode user: %w", err)
	}
	user.Raw = raw

	return user, nil
}

// DisplayName returns "First Last" when available, then the name and finally the email
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if full := strings.TrimSpace(strings.Join([]string{u.FirstName, u.LastName}, " ")); full != "" {
		return full
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
