package authz

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/structs"
	"github.com/open-policy-agent/opa/ast"
	"github.com/open-policy-agent/opa/rego"
	"go.uber.org/zap"

	"github.com/medidesk/console/sessions"
)

const LoginPath = "/login"

var (
	//go:embed policy.rego
	authzPolicy string

	ErrUnauthorized = errors.New("the session is not authorized for the requested page")
)

type Request struct {
	Path    string
	Method  string
	Session *sessions.Session
}

// Decision is the outcome of a guard evaluation. Redirect is set when access is denied.
type Decision struct {
	Allowed  bool
	Redirect string
}

type sessionInput struct {
	Established  bool   `json:"established"`
	TokenExpired bool   `json:"tokenExpired"`
	UserName     string `json:"userName"`
}

type Guard interface {
	Authorize(ctx context.Context, request Request) (Decision, error)
	EvaluatePolicy(ctx context.Context, input map[string]interface{}) error
}

func NewGuard(logger *zap.SugaredLogger) (Guard, error) {
	compiler, err := ast.CompileModules(map[string]string{
		"policy.rego": authzPolicy,
	})
	if err != nil {
		return nil, err
	}

	return &embeddedOpaGuard{
		logger: logger,
		policy: compiler,
	}, nil
}

type embeddedOpaGuard struct {
	logger *zap.SugaredLogger
	policy *ast.Compiler
}

func (e *embeddedOpaGuard) Authorize(ctx context.Context, request Request) (Decision, error) {
	in := map[string]interface{}{
		"path":   splitPath(request.Path),
		"method": strings.ToUpper(request.Method),
	}

	session := request.Session
	sessionStruct := structs.New(sessionInput{
		Established:  session.IsEstablished(),
		TokenExpired: session != nil && session.TokenExpired(),
		UserName:     userName(session),
	})
	sessionStruct.TagName = "json"
	in["session"] = sessionStruct.Map()

	err := e.EvaluatePolicy(ctx, in)
	if errors.Is(err, ErrUnauthorized) {
		return Decision{Allowed: false, Redirect: LoginPath}, nil
	} else if err != nil {
		return Decision{}, err
	}

	return Decision{Allowed: true}, nil
}

func (e *embeddedOpaGuard) EvaluatePolicy(ctx context.Context, input map[string]interface{}) error {
	r := rego.New(
		rego.Package("http.authz.console"),
		rego.Query("allow"),
		rego.Compiler(e.policy),
		rego.Input(input),
	)

	results, err := r.Eval(ctx)
	if err != nil {
		return fmt.Errorf("unable to evaluate authorization policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return fmt.Errorf("evaluating authorization policy returned no results")
	}

	val, ok := results[0].Expressions[0].Value.(bool)
	if !ok {
		return fmt.Errorf("unexpected authorization result: %v", results[0].Expressions[0].Value)
	}

	e.logger.Debugw("authorization policy eval", zap.Any("input", input), zap.Bool("allow", val))

	if !val {
		return ErrUnauthorized
	}

	return nil
}

func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	if len(parts) > 0 && parts[0] == "" {
		parts = parts[1:]
	}
	return parts
}

func userName(session *sessions.Session) string {
	if session == nil {
		return ""
	}
	return session.UserName
}
