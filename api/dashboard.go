package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/medidesk/console/dashboard"
	internalErrs "github.com/medidesk/console/errors"
	"github.com/medidesk/console/notifications"
	"github.com/medidesk/console/patients"
	"github.com/medidesk/console/remote"
	"github.com/medidesk/console/sessions"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type dashboardPage struct {
	Title         string
	UserName      string
	View          dashboard.View
	Notifications []notifications.Item
	FetchedTime   time.Time
}

// snapshot returns the patients of the session, fetching them when the cache is empty or was
// invalidated. Failures are logged and the previous collection is used.
func (h *Handler) snapshot(c echo.Context, session *sessions.Session) patients.Snapshot {
	snapshot, err := h.patients.For(session.Id).Get(c.Request().Context(), session.Token)
	if err != nil {
		h.logger.Warnw("showing previous patients collection", "sessionId", session.Id, zap.Error(err))
	}
	return snapshot
}

// notifications returns the undismissed notifications. Failures are logged and yield no notifications.
func (h *Handler) notifications(c echo.Context, session *sessions.Session) []notifications.Item {
	list, err := h.client.ListNotifications(c.Request().Context(), session.Token)
	if err != nil {
		h.logger.Warnw("unable to fetch notifications", "sessionId", session.Id, zap.Error(err))
		return nil
	}

	if pruned := notifications.Prune(list, session.DismissedNotifications); len(pruned) != len(session.DismissedNotifications) {
		session.DismissedNotifications = pruned
		if err := h.sessions.Save(c.Request().Context(), session); err != nil {
			h.logger.Warnw("unable to save pruned notifications", "sessionId", session.Id, zap.Error(err))
		}
	}

	return notifications.Visible(list, session.DismissedNotifications)
}

// (GET /dashboard)
func (h *Handler) Dashboard(c echo.Context) error {
	session, err := h.currentSession(c)
	if err != nil {
		return err
	}

	snapshot := h.snapshot(c, session)
	return c.Render(http.StatusOK, "dashboard.html", dashboardPage{
		Title:         "Dashboard",
		UserName:      session.UserName,
		View:          session.Dashboard.ViewSnapshot(snapshot),
		Notifications: h.notifications(c, session),
		FetchedTime:   snapshot.FetchedTime,
	})
}

// updateDashboard applies fn to the dashboard state of the session and returns to the dashboard
func (h *Handler) updateDashboard(c echo.Context, fn func(*sessions.Session) error) error {
	session, err := h.currentSession(c)
	if err != nil {
		return err
	}
	if err := fn(session); err != nil {
		return err
	}
	if err := h.saveSession(c, session); err != nil {
		return err
	}
	return redirect(c, "/dashboard")
}

// (POST /dashboard/search)
func (h *Handler) Search(c echo.Context) error {
	return h.updateDashboard(c, func(session *sessions.Session) error {
		session.Dashboard.SetSearchQuery(c.FormValue("q"))
		return nil
	})
}

// (POST /dashboard/category)
func (h *Handler) SelectCategory(c echo.Context) error {
	return h.updateDashboard(c, func(session *sessions.Session) error {
		session.Dashboard.SetActiveCategory(patients.CategoryId(c.FormValue("category")))
		return nil
	})
}

// (POST /dashboard/patients/{patientId}/select)
func (h *Handler) SelectPatient(c echo.Context) error {
	return h.updateDashboard(c, func(session *sessions.Session) error {
		id := c.Param("patientId")
		patient, ok := patients.Find(h.patients.For(session.Id).Snapshot().Patients, id)
		if !ok {
			return internalErrs.NotFound.Wrap(fmt.Errorf("patient %s is not in the list", id))
		}
		session.Dashboard.SelectPatient(*patient)
		return nil
	})
}

// (POST /dashboard/panel/close)
func (h *Handler) ClosePanel(c echo.Context) error {
	return h.updateDashboard(c, func(session *sessions.Session) error {
		session.Dashboard.ClosePanel()
		return nil
	})
}

// (POST /dashboard/refresh)
func (h *Handler) Refresh(c echo.Context) error {
	session, err := h.currentSession(c)
	if err != nil {
		return err
	}

	h.patients.For(session.Id).Invalidate()
	return redirect(c, "/dashboard")
}

// (POST /dashboard/notifications/dismiss)
func (h *Handler) DismissNotification(c echo.Context) error {
	return h.updateDashboard(c, func(session *sessions.Session) error {
		session.DismissedNotifications = notifications.Dismiss(session.DismissedNotifications, c.FormValue("key"))
		return nil
	})
}

// (GET /dashboard/export.xlsx)
func (h *Handler) Export(c echo.Context) error {
	session, err := h.currentSession(c)
	if err != nil {
		return err
	}

	snapshot, err := h.patients.For(session.Id).Get(c.Request().Context(), session.Token)
	if errors.Is(err, remote.ErrNetwork) && snapshot.FetchedTime.IsZero() {
		return internalErrs.BadGateway.Wrap(err)
	} else if err != nil {
		h.logger.Warnw("exporting previous patients collection", "sessionId", session.Id, zap.Error(err))
	}
	view := session.Dashboard.ViewSnapshot(snapshot)

	var buf bytes.Buffer
	if err := patients.Export(&buf, view.Visible); err != nil {
		return internalErrs.InternalServerError.Wrap(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="patients.xlsx"`)
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}
