package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/cristianlarad/ARCADE-MAX/internal/client"
	"github.com/cristianlarad/ARCADE-MAX/internal/entity"
	"github.com/cristianlarad/ARCADE-MAX/internal/repository"
	"github.com/cristianlarad/ARCADE-MAX/internal/service"
)

type BoardHandler struct {
	boardService *service.BoardService
}

func NewBoardHandler(boardService *service.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

type taskResponse struct {
	entity.Task
	Category entity.StatusCategory `json:"category"`
	Style    entity.StatusStyle    `json:"style"`
}

type reorderRequest struct {
	Order []string `json:"order"`
}

// GetTasks serves the session's task board, seeding from the backend when it
// hasn't been seeded yet or when ?refresh=true forces a refetch.
func (h *BoardHandler) GetTasks(c echo.Context) error {
	session := sessionFromContext(c)
	if session == "" {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	filter := c.QueryParam("status")
	refresh := c.QueryParam("refresh") == "true"

	tasks, err := h.boardService.TaskBoard(c.Request().Context(), session, filter, refresh)
	if err != nil {
		return c.JSON(backendStatus(err), map[string]string{"error": err.Error()})
	}

	out := make([]taskResponse, len(tasks))
	for i, task := range tasks {
		category := entity.StatusFromCode(task.Status)
		out[i] = taskResponse{Task: task, Category: category, Style: entity.StyleFor(category)}
	}

	return c.JSON(200, out)
}

// ReorderTasks applies a drag-and-drop permutation. Local only; nothing is
// pushed to the backend.
func (h *BoardHandler) ReorderTasks(c echo.Context) error {
	session := sessionFromContext(c)
	if session == "" {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	req := reorderRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	if err := h.boardService.ReorderTasks(session, c.QueryParam("status"), req.Order); err != nil {
		if errors.Is(err, repository.ErrNotPermutation) {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]string{"message": "Order updated"})
}

func (h *BoardHandler) DeleteTask(c echo.Context) error {
	session := sessionFromContext(c)
	if session == "" {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	err := h.boardService.DeleteTask(c.Request().Context(), session, c.QueryParam("status"), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrAlreadyDeleted) {
			return c.JSON(409, map[string]string{"error": err.Error()})
		}
		return c.JSON(backendStatus(err), map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]string{"message": "Tarea eliminada exitosamente"})
}

func (h *BoardHandler) CompleteTask(c echo.Context) error {
	session := sessionFromContext(c)
	if session == "" {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	err := h.boardService.CompleteTask(c.Request().Context(), session, c.QueryParam("status"), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotAssigned) {
			return c.JSON(409, map[string]string{"error": err.Error()})
		}
		return c.JSON(backendStatus(err), map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]string{"message": "Tarea completada exitosamente"})
}

func (h *BoardHandler) ClearRecycleBin(c echo.Context) error {
	session := sessionFromContext(c)
	if session == "" {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	if err := h.boardService.ClearRecycleBin(c.Request().Context(), session); err != nil {
		return c.JSON(backendStatus(err), map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]string{"message": "Papelera vaciada exitosamente"})
}

func (h *BoardHandler) GetProjects(c echo.Context) error {
	session := sessionFromContext(c)
	if session == "" {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	refresh := c.QueryParam("refresh") == "true"
	projects, err := h.boardService.ProjectBoard(c.Request().Context(), session, refresh)
	if err != nil {
		return c.JSON(backendStatus(err), map[string]string{"error": err.Error()})
	}

	return c.JSON(200, projects)
}

func (h *BoardHandler) ReorderProjects(c echo.Context) error {
	session := sessionFromContext(c)
	if session == "" {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	req := reorderRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	if err := h.boardService.ReorderProjects(session, req.Order); err != nil {
		if errors.Is(err, repository.ErrNotPermutation) {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]string{"message": "Order updated"})
}

func (h *BoardHandler) DeleteProject(c echo.Context) error {
	session := sessionFromContext(c)
	if session == "" {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	err := h.boardService.DeleteProject(c.Request().Context(), session, c.Param("id"))
	if err != nil {
		return c.JSON(backendStatus(err), map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]string{"message": "Proyecto eliminado exitosamente"})
}

// GetStatusStyles exposes the badge configuration per category so the
// frontend renders every status the same way everywhere.
func (h *BoardHandler) GetStatusStyles(c echo.Context) error {
	categories := []entity.StatusCategory{
		entity.StatusPending,
		entity.StatusAssigned,
		entity.StatusRealized,
		entity.StatusDeleted,
	}

	styles := make(map[entity.StatusCategory]entity.StatusStyle, len(categories))
	for _, category := range categories {
		styles[category] = entity.StyleFor(category)
	}

	return c.JSON(200, styles)
}

// backendStatus maps a remote failure onto the response: structured backend
// errors keep their status, anything else is a 500.
func backendStatus(err error) int {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatus > 0 {
		return apiErr.HTTPStatus
	}
	return 500
}
