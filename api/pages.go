package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medidesk/console/auth"
	internalErrs "github.com/medidesk/console/errors"
	"github.com/medidesk/console/sessions"
)

type indexPage struct {
	Title    string
	UserName string
}

type loginPage struct {
	Title    string
	UserName string
	Error    string
	Email    string
}

type registerPage struct {
	Title    string
	UserName string
	Error    string
	Form     auth.RegistrationForm
	Roles    []roleOption
}

type roleOption struct {
	Value string
	Label string
}

var roleOptions = []roleOption{
	{Value: "doctor", Label: "Doctor"},
	{Value: "nurse", Label: "Nurse"},
	{Value: "admin", Label: "Administrator"},
}

// (GET /)
func (h *Handler) Index(c echo.Context) error {
	page := indexPage{Title: "Care"}
	if session := sessions.FromContext(c.Request().Context()); session.IsEstablished() {
		page.UserName = session.UserName
	}
	return c.Render(http.StatusOK, "index.html", page)
}

// (GET /login)
func (h *Handler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", loginPage{Title: "Sign in"})
}

// (POST /login)
func (h *Handler) Login(c echo.Context) error {
	form := auth.LoginForm{}
	if err := c.Bind(&form); err != nil {
		return internalErrs.BadRequest.Wrap(err)
	}

	session, err := h.auth.Login(c.Request().Context(), form)
	if err != nil {
		var formErr *auth.FormError
		if errors.As(err, &formErr) {
			return c.Render(http.StatusOK, "login.html", loginPage{
				Title: "Sign in",
				Error: formErr.Message,
				Email: form.Email,
			})
		}
		return err
	}

	h.startSession(c, session)
	return redirect(c, "/dashboard")
}

// (GET /register)
func (h *Handler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", registerPage{
		Title: "Create an account",
		Roles: roleOptions,
	})
}

// (POST /register)
func (h *Handler) Register(c echo.Context) error {
	form := auth.RegistrationForm{}
	if err := c.Bind(&form); err != nil {
		return internalErrs.BadRequest.Wrap(err)
	}

	session, err := h.auth.Register(c.Request().Context(), form)
	if err != nil {
		var formErr *auth.FormError
		if errors.As(err, &formErr) {
			form.Password = ""
			return c.Render(http.StatusOK, "register.html", registerPage{
				Title: "Create an account",
				Error: formErr.Message,
				Form:  form,
				Roles: roleOptions,
			})
		}
		return err
	}

	h.startSession(c, session)
	return redirect(c, "/dashboard")
}

// (POST /logout)
func (h *Handler) Logout(c echo.Context) error {
	session := sessions.FromContext(c.Request().Context())
	if session != nil {
		id := session.Id
		if err := h.auth.Logout(c.Request().Context(), session); err != nil {
			return internalErrs.InternalServerError.Wrap(err)
		}
		h.patients.Remove(id)
	}

	clearSessionCookie(c, h.config)
	return redirect(c, "/login")
}
