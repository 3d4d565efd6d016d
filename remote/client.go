package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/medidesk/console/notifications"
	"github.com/medidesk/console/patients"
)

const (
	loginPath         = "/login_user"
	registerPath      = "/register_users"
	patientsPath      = "/patients"
	notificationsPath = "/notification"
)

var (
	ErrNetwork         = errors.New("unable to reach the patient service")
	ErrInvalidResponse = errors.New("invalid response from the patient service")
)

// ResponseError is returned when the patient service answers with a non-2xx status
type ResponseError struct {
	StatusCode int
	// Message is the "message" attribute of the response body, empty if there was none
	Message string
}

func (r *ResponseError) Error() string {
	if r.Message == "" {
		return fmt.Sprintf("patient service responded with status %d", r.StatusCode)
	}
	return fmt.Sprintf("patient service responded with status %d: %s", r.StatusCode, r.Message)
}

//go:generate mockgen --build_flags=--mod=mod -source=./client.go -destination=./test/mock_client.go -package test MockClient

type Client interface {
	Login(ctx context.Context, request LoginRequest) (*LoginResponse, error)
	Register(ctx context.Context, request RegisterRequest) (*RegisterResponse, error)
	ListPatients(ctx context.Context, token *oauth2.Token) ([]patients.Patient, error)
	ListNotifications(ctx context.Context, token *oauth2.Token) ([]notifications.Notification, error)
}

type client struct {
	http      *resty.Client
	validator *ResponseValidator
	logger    *zap.SugaredLogger
}

var _ Client = &client{}
var _ patients.Source = &client{}

func NewClient(cfg *Config, logger *zap.SugaredLogger) (Client, error) {
	var validator *ResponseValidator
	if cfg.ValidateResponses {
		v, err := NewResponseValidator(context.Background())
		if err != nil {
			return nil, err
		}
		validator = v
	}

	baseUrl := strings.TrimRight(cfg.BaseUrl, "/")
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}

	httpClient := resty.New().
		SetBaseURL(baseUrl).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetLogger(logger)

	return &client{
		http:      httpClient,
		validator: validator,
		logger:    logger,
	}, nil
}

func (c *client) Login(ctx context.Context, request LoginRequest) (*LoginResponse, error) {
	body, err := c.do(ctx, http.MethodPost, loginPath, nil, request)
	if err != nil {
		return nil, err
	}

	result := struct {
		Data struct {
			Token string         `json:"token"`
			User  map[string]any `json:"user"`
		} `json:"data"`
	}{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	if result.Data.Token == "" {
		return nil, fmt.Errorf("%w: token is missing", ErrInvalidResponse)
	}

	user, err := DecodeUser(result.Data.User)
	if err != nil {
		c.logger.Warnw("unable to interpret login user, keeping raw attributes", zap.Error(err))
		user = &User{Raw: result.Data.User}
	}

	return &LoginResponse{
		Token: result.Data.Token,
		User:  user,
	}, nil
}

func (c *client) Register(ctx context.Context, request RegisterRequest) (*RegisterResponse, error) {
	body, err := c.do(ctx, http.MethodPost, registerPath, nil, request)
	if err != nil {
		return nil, err
	}

	response := &RegisterResponse{Raw: json.RawMessage(body)}
	result := struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}{}
	if err := json.Unmarshal(body, &result); err == nil {
		response.Token = result.Data.Token
	}

	return response, nil
}

func (c *client) ListPatients(ctx context.Context, token *oauth2.Token) ([]patients.Patient, error) {
	body, err := c.do(ctx, http.MethodGet, patientsPath, token, nil)
	if err != nil {
		return nil, err
	}

	var records []map[string]any
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	list := make([]patients.Patient, 0, len(records))
	for _, record := range records {
		p, err := patients.DecodePatient(record)
		if err != nil {
			c.logger.Warnw("showing patient with malformed attributes left empty", "patientId", p.Id, zap.Error(err))
		}
		list = append(list, p)
	}

	seen := make(map[string]struct{}, len(list))
	for _, p := range list {
		if _, ok := seen[p.Id]; ok {
			return nil, fmt.Errorf("%w: duplicate patient id %q", ErrInvalidResponse, p.Id)
		}
		seen[p.Id] = struct{}{}
	}

	return list, nil
}

func (c *client) ListNotifications(ctx context.Context, token *oauth2.Token) ([]notifications.Notification, error) {
	body, err := c.do(ctx, http.MethodGet, notificationsPath, token, nil)
	if err != nil {
		return nil, err
	}

	var list []notifications.Notification
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	if list == nil {
		list = []notifications.Notification{}
	}
	return list, nil
}

// do executes a single request and returns the body of a successful response
func (c *client) do(ctx context.Context, method, path string, token *oauth2.Token, payload any) ([]byte, error) {
	req := c.http.R().SetContext(ctx)
	if payload != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(payload)
	}
	if token != nil && token.AccessToken != "" {
		req.SetAuthScheme(token.Type()).SetAuthToken(token.AccessToken)
	}

	res, err := req.Execute(method, path)
	if err != nil {
		c.logger.Errorw("patient service request failed", "method", method, "path", path, zap.Error(err))
		return nil, fmt.Errorf("%w: %s %s: %w", ErrNetwork, method, path, err)
	}

	status := res.StatusCode()
	body := res.Body()
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		responseErr := &ResponseError{
			StatusCode: status,
			Message:    extractMessage(body),
		}
		c.logger.Infow("patient service rejected request", "method", method, "path", path, "status", status, "message", responseErr.Message)
		return nil, responseErr
	}

	if c.validator != nil {
		if err := c.validator.Validate(ctx, method, path, status, res.Header(), body); err != nil {
			c.logger.Warnw("patient service response failed validation", "method", method, "path", path, zap.Error(err))
			return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
		}
	}

	return body, nil
}

func extractMessage(body []byte) string {
	result := struct {
		Message string `json:"message"`
	}{}
	if err := json.Unmarshal(body, &result); err != nil {
		return ""
	}
	return result.Message
}
