package auth

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/medidesk/console/remote"
	"github.com/medidesk/console/sessions"
)

type Service struct {
	client remote.Client
	store  sessions.Store
	config *sessions.Config
	logger *zap.SugaredLogger
}

func NewService(client remote.Client, store sessions.Store, config *sessions.Config, logger *zap.SugaredLogger) *Service {
	return &Service{
		client: client,
		store:  store,
		config: config,
		logger: logger,
	}
}

// Login authenticates the user with the patient service and persists a new session holding the
// issued token. Failures are returned as *FormError and leave no session behind.
func (s *Service) Login(ctx context.Context, form LoginForm) (*sessions.Session, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	res, err := s.client.Login(ctx, remote.LoginRequest{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		s.logger.Infow("login failed", "email", form.Email, zap.Error(err))
		return nil, formError(err, MessageLoginFailed)
	}

	session := sessions.New(s.config.Lifetime)
	session.Token = NewToken(res.Token)
	session.User = res.User
	session.UserName = res.User.DisplayName()
	if session.UserName == "" {
		session.UserName = form.Email
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("unable to save session: %w", err)
	}

	s.logger.Infow("user logged in", "sessionId", session.Id, "userName", session.UserName)
	return session, nil
}

// Register creates the account and a session with the display name of the new user. A token is
// only kept when the service issued one.
func (s *Service) Register(ctx context.Context, form RegistrationForm) (*sessions.Session, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	res, err := s.client.Register(ctx, form.Request())
	if err != nil {
		s.logger.Infow("registration failed", "email", form.Email, zap.Error(err))
		return nil, formError(err, MessageRegistrationFailed)
	}

	session := sessions.New(s.config.Lifetime)
	session.UserName = form.FullName()
	if res.Token != "" {
		session.Token = NewToken(res.Token)
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("unable to save session: %w", err)
	}

	s.logger.Infow("user registered", "sessionId", session.Id, "userName", session.UserName, "role", form.Role)
	return session, nil
}

func (s *Service) Logout(ctx context.Context, session *sessions.Session) error {
	if session == nil {
		return nil
	}

	session.Clear()
	if err := s.store.Delete(ctx, session.Id); err != nil {
		return fmt.Errorf("unable to delete session: %w", err)
	}

	s.logger.Infow("user logged out", "sessionId", session.Id)
	return nil
}

func formError(err error, fallback string) error {
	if errors.Is(err, remote.ErrNetwork) {
		return &FormError{Message: MessageNetworkError, Err: err}
	}

	var responseErr *remote.ResponseError
	if errors.As(err, &responseErr) && responseErr.Message != "" {
		return &FormError{Message: responseErr.Message, Err: err}
	}

	return &FormError{Message: fallback, Err: err}
}
