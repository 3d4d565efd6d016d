package auth

import (
	"regexp"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/medidesk/console/remote"
)

const (
	MessageLoginFailed        = "Login failed. Please try again."
	MessageRegistrationFailed = "Registration failed. Please try again."
	MessageNetworkError       = "Network error. Please check your connection and try again."
	MessageMissingFields      = "Please fill in all fields"
	MessageInvalidEmail       = "Please enter a valid email address"
	MessageShortPassword      = "Password must be at least 6 characters long"
	MessageInvalidRole        = "Please select a valid role"
	MessageTermsNotAccepted   = "Please accept the terms and conditions"

	MinPasswordLength = 6
)

var (
	emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	Roles = mapset.NewSet("doctor", "nurse", "admin")
)

// FormError is shown to the user next to the form which was submitted
type FormError struct {
	Message string
	Err     error
}

func (f *FormError) Error() string {
	return f.Message
}

func (f *FormError) Unwrap() error {
	return f.Err
}

type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (l LoginForm) Validate() error {
	if strings.TrimSpace(l.Email) == "" || l.Password == "" {
		return &FormError{Message: MessageMissingFields}
	}
	return nil
}

type RegistrationForm struct {
	FirstName   string `form:"firstName"`
	LastName    string `form:"lastName"`
	Email       string `form:"email"`
	Password    string `form:"password"`
	Role        string `form:"role"`
	AcceptTerms bool   `form:"terms"`
}

// Validate checks the form in the order the errors are reported to the user
func (r RegistrationForm) Validate() error {
	if r.FirstName == "" || r.LastName == "" || r.Email == "" || r.Password == "" || r.Role == "" {
		return &FormError{Message: MessageMissingFields}
	}
	if !emailRegexp.MatchString(r.Email) {
		return &FormError{Message: MessageInvalidEmail}
	}
	if len([]rune(r.Password)) < MinPasswordLength {
		return &FormError{Message: MessageShortPassword}
	}
	if !Roles.Contains(r.Role) {
		return &FormError{Message: MessageInvalidRole}
	}
	if !r.AcceptTerms {
		return &FormError{Message: MessageTermsNotAccepted}
	}
	return nil
}

func (r RegistrationForm) FullName() string {
	return r.FirstName + " " + r.LastName
}

func (r RegistrationForm) Request() remote.RegisterRequest {
	return remote.RegisterRequest{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Password:  r.Password,
		Role:      r.Role,
	}
}
