package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/khangha1908/TodoX/internal/service"
)

type taskCreateRequest struct {
	Title       string      `json:"title"`
	Category    categoryRef `json:"category"`
	DueDate     dateRef     `json:"dueDate"`
	Priority    string      `json:"priority"`
	Description string      `json:"description"`
}

type bulkDeleteRequest struct {
	TaskIDs []uint `json:"taskIds"`
}

func (s *Server) listTasks(c echo.Context) error {
	input := service.ListInput{Filter: c.QueryParam("filter")}
	if input.Filter == "" {
		input.Filter = service.FilterAll
	}

	switch category := c.QueryParam("category"); category {
	case "", "all":
	case "none":
		input.NoCategory = true
	default:
		id, err := strconv.ParseUint(category, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid category id"})
		}
		v := uint(id)
		input.CategoryID = &v
	}

	result, err := s.tasks.List(c.Request().Context(), currentUser(c).ID, input, time.Now())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) createTask(c echo.Context) error {
	var req taskCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}

	task, err := s.tasks.Create(c.Request().Context(), currentUser(c).ID, service.TaskInput{
		Title:       req.Title,
		CategoryID:  req.Category.ID,
		DueDate:     req.DueDate.Time,
		Priority:    req.Priority,
		Description: req.Description,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

func (s *Server) updateTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	fields, err := decodeFields(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}

	patch, err := taskPatchFrom(fields)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}

	task, err := s.tasks.Update(c.Request().Context(), currentUser(c).ID, id, patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) deleteTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	task, err := s.tasks.Delete(c.Request().Context(), currentUser(c).ID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) bulkDeleteTasks(c echo.Context) error {
	var req bulkDeleteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}

	count, err := s.tasks.BulkDelete(c.Request().Context(), currentUser(c).ID, req.TaskIDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deletedCount": count})
}

func (s *Server) bulkUpdateTasks(c echo.Context) error {
	fields, err := decodeFields(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}

	var taskIDs []uint
	if raw, ok := fields["taskIds"]; ok {
		if err := json.Unmarshal(raw, &taskIDs); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
		}
	}

	var patch service.BulkPatch
	if raw, ok := fields["status"]; ok {
		if err := json.Unmarshal(raw, &patch.Status); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
		}
		patch.SetStatus = true
	}
	if raw, ok := fields["completedAt"]; ok {
		var ref dateRef
		if err := json.Unmarshal(raw, &ref); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
		}
		patch.CompletedAt = ref.Time
		patch.SetDone = true
	}

	count, err := s.tasks.BulkUpdate(c.Request().Context(), currentUser(c).ID, taskIDs, patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"modifiedCount": count})
}

func (s *Server) dueSoonTasks(c echo.Context) error {
	tasks, err := s.reminders.DueSoon(c.Request().Context(), currentUser(c).ID, time.Now())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"tasks": tasks})
}

// taskPatchFrom turns present body keys into a typed patch. Null values pass
// through as nil pointers, which clear the corresponding field.
func taskPatchFrom(fields map[string]json.RawMessage) (service.TaskPatch, error) {
	var patch service.TaskPatch

	if raw, ok := fields["title"]; ok {
		if err := json.Unmarshal(raw, &patch.Title); err != nil {
			return patch, err
		}
		patch.SetTitle = true
	}
	if raw, ok := fields["status"]; ok {
		if err := json.Unmarshal(raw, &patch.Status); err != nil {
			return patch, err
		}
		patch.SetStatus = true
	}
	if raw, ok := fields["priority"]; ok {
		if err := json.Unmarshal(raw, &patch.Priority); err != nil {
			return patch, err
		}
		patch.SetPriority = true
	}
	if raw, ok := fields["description"]; ok {
		if err := json.Unmarshal(raw, &patch.Description); err != nil {
			return patch, err
		}
		patch.SetDesc = true
	}
	if raw, ok := fields["category"]; ok {
		var ref categoryRef
		if err := json.Unmarshal(raw, &ref); err != nil {
			return patch, err
		}
		patch.CategoryID = ref.ID
		patch.SetCategory = true
	}
	if raw, ok := fields["dueDate"]; ok {
		var ref dateRef
		if err := json.Unmarshal(raw, &ref); err != nil {
			return patch, err
		}
		patch.DueDate = ref.Time
		patch.SetDueDate = true
	}
	if raw, ok := fields["completedAt"]; ok {
		var ref dateRef
		if err := json.Unmarshal(raw, &ref); err != nil {
			return patch, err
		}
		patch.CompletedAt = ref.Time
		patch.SetDone = true
	}

	return patch, nil
}
