package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/Durgatriveni/Task-backend/api/http/presenter"
	"github.com/Durgatriveni/Task-backend/pkg/security/jwt"
	"github.com/Durgatriveni/Task-backend/pkg/task"
)

type TaskHandler struct {
	uc  task.UseCase
	log *logrus.Entry
}

func NewTaskHandler(uc task.UseCase, log *logrus.Entry) *TaskHandler {
	return &TaskHandler{uc: uc, log: log}
}

type taskRequest struct {
	Name        string `json:"taskName"`
	Description string `json:"taskDescription"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
	Status      string `json:"status"`
}

var errBadDueDate = errors.New("dueDate must be RFC3339 or YYYY-MM-DD")

func (r taskRequest) fields() (task.Fields, error) {
	due, err := parseDueDate(r.DueDate)
	if err != nil {
		return task.Fields{}, err
	}
	return task.Fields{
		Name:        r.Name,
		Description: r.Description,
		Priority:    task.Priority(strings.TrimSpace(r.Priority)),
		DueDate:     due,
		Status:      task.Status(strings.TrimSpace(r.Status)),
	}, nil
}

// parseDueDate accepts full timestamps and the plain dates sent by date pickers.
// An empty value is left zero for the use case to reject.
func parseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errBadDueDate
}

// @Summary Create a task
// @Description Appends a task to the caller's collection. Status defaults to Pending, priority to Low.
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Param       input body taskRequest true "Task fields"
// @Security    CookieAuth
// @Success     201 {object} task.Task
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     403 {object} presenter.ErrorResponse
// @Failure     404 {object} presenter.ErrorResponse
// @Router      /tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	id, _ := jwt.IdentityFrom(c)
	var req taskRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	f, err := req.fields()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	t, err := h.uc.Create(c.UserContext(), id, f)
	if err != nil {
		return h.fail(c, err, "Error adding task")
	}
	return presenter.JSON(c, http.StatusCreated, t)
}

// @Summary List own tasks
// @Tags    tasks
// @Produce json
// @Security CookieAuth
// @Success 200 {array} task.Task
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /tasks [get]
func (h *TaskHandler) ListOwn(c *fiber.Ctx) error {
	id, _ := jwt.IdentityFrom(c)
	tasks, err := h.uc.ListOwn(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err, "Error fetching tasks")
	}
	return presenter.JSON(c, http.StatusOK, tasks)
}

// @Summary List every user's tasks
// @Description Each task carries the username of its owner.
// @Tags    tasks
// @Produce json
// @Success 200 {array} task.OwnedTask
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /tasks/all [get]
func (h *TaskHandler) ListAll(c *fiber.Ctx) error {
	tasks, err := h.uc.ListAll(c.UserContext())
	if err != nil {
		return h.fail(c, err, "Internal Server Error")
	}
	return presenter.JSON(c, http.StatusOK, tasks)
}

// @Summary Update an own task
// @Tags    tasks
// @Accept  json
// @Produce json
// @Param   taskId path string true "Task ID"
// @Param   input body taskRequest true "Task fields"
// @Security CookieAuth
// @Success 200 {object} task.Task
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /tasks/{taskId} [put]
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	id, _ := jwt.IdentityFrom(c)
	var req taskRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	f, err := req.fields()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	t, err := h.uc.Update(c.UserContext(), id, c.Params("taskId"), f)
	if err != nil {
		return h.fail(c, err, "Internal Server Error")
	}
	return presenter.JSON(c, http.StatusOK, t)
}

// @Summary Delete a task
// @Description Owners may delete their own tasks, admins any task.
// @Tags    tasks
// @Produce json
// @Param   taskId path string true "Task ID"
// @Security CookieAuth
// @Success 200 {object} presenter.MessageResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /tasks/{taskId} [delete]
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id, _ := jwt.IdentityFrom(c)
	if err := h.uc.Delete(c.UserContext(), id, c.Params("taskId")); err != nil {
		return h.fail(c, err, "Server error")
	}
	return presenter.Message(c, http.StatusOK, "Task deleted successfully")
}

func (h *TaskHandler) fail(c *fiber.Ctx, err error, internalMsg string) error {
	var verr task.ValidationError
	switch {
	case errors.As(err, &verr):
		return presenter.Error(c, http.StatusBadRequest, verr.Error())
	case errors.Is(err, task.ErrOwnerNotFound):
		return presenter.Error(c, http.StatusNotFound, "User not found")
	case errors.Is(err, task.ErrTaskNotFound):
		return presenter.Error(c, http.StatusNotFound, "Task not found")
	}
	h.log.WithError(err).WithField("path", c.Path()).Error(internalMsg)
	return presenter.Error(c, http.StatusInternalServerError, internalMsg)
}
