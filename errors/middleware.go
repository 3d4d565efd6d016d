package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const errorTemplate = "error.html"

type errorPage struct {
	Title    string
	UserName string
	Code     int
	Status   string
	Message  string
}

func CustomHTTPErrorHandler(err error, c echo.Context) {
	e := HttpError{}
	if errors.As(err, &e) {
		// The cause stays internal, only the public message is rendered
		err = echo.NewHTTPError(e.Code, e.Err.Error()).SetInternal(err)
	}

	he := &echo.HTTPError{}
	if c.Response().Committed || !errors.As(err, &he) || !wantsHTML(c) || c.Echo().Renderer == nil {
		c.Echo().DefaultHTTPErrorHandler(err, c)
		return
	}

	page := errorPage{
		Title:   http.StatusText(he.Code),
		Code:    he.Code,
		Status:  http.StatusText(he.Code),
		Message: http.StatusText(he.Code),
	}
	if msg, ok := he.Message.(string); ok && msg != "" {
		page.Message = msg
	}
	if rerr := c.Render(he.Code, errorTemplate, page); rerr != nil {
		c.Echo().DefaultHTTPErrorHandler(err, c)
	}
}

func wantsHTML(c echo.Context) bool {
	accept := c.Request().Header.Get(echo.HeaderAccept)
	return accept == "" || strings.Contains(accept, echo.MIMETextHTML)
}
