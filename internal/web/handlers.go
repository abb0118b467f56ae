package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"study-planner/internal/model"
	"study-planner/internal/service"
)

type handlers struct {
	subjects  *service.SubjectService
	tasks     *service.TaskService
	sessions  *service.SessionService
	dashboard *service.DashboardService
}

// indexView is the template data for the dashboard page.
type indexView struct {
	service.Dashboard
	Today string
}

func (h *handlers) index(ctx echo.Context) error {
	d, err := h.dashboard.Build(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "build dashboard")
	}
	view := indexView{
		Dashboard: d,
		Today:     time.Now().Format(model.DateLayout),
	}
	return ctx.Render(http.StatusOK, dashboardTemplate, view)
}

func (h *handlers) addSubject(ctx echo.Context) error {
	var input service.NewSubject
	if err := ctx.Bind(&input); err != nil {
		return err
	}
	if _, err := h.subjects.CreateSubject(ctx.Request().Context(), input); err != nil {
		return errors.Wrap(err, "add subject")
	}
	return redirectHome(ctx)
}

func (h *handlers) addTask(ctx echo.Context) error {
	var input service.NewTask
	if err := ctx.Bind(&input); err != nil {
		return err
	}
	if _, err := h.tasks.CreateTask(ctx.Request().Context(), input); err != nil {
		return errors.Wrap(err, "add task")
	}
	return redirectHome(ctx)
}

func (h *handlers) logSession(ctx echo.Context) error {
	var input service.NewSession
	if err := ctx.Bind(&input); err != nil {
		return err
	}
	if _, err := h.sessions.LogSession(ctx.Request().Context(), input); err != nil {
		return errors.Wrap(err, "log session")
	}
	return redirectHome(ctx)
}

func (h *handlers) completeTask(ctx echo.Context) error {
	id, err := pathID(ctx, "task_id")
	if err != nil {
		return err
	}
	if _, err := h.tasks.CompleteTask(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "complete task")
	}
	return redirectHome(ctx)
}

func (h *handlers) dashboardJSON(ctx echo.Context) error {
	d, err := h.dashboard.Build(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "build dashboard")
	}
	return ctx.JSON(http.StatusOK, d)
}

func (h *handlers) subjectJSON(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	detail, err := h.subjects.Detail(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "subject detail")
	}
	return ctx.JSON(http.StatusOK, detail)
}

// pathID parses an unsigned integer path parameter. Anything else does not match a route.
func pathID(ctx echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, errHttpNotFound
	}
	return uint(id), nil
}

func redirectHome(ctx echo.Context) error {
	return ctx.Redirect(http.StatusFound, "/")
}
