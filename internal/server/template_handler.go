package server

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/khangha1908/TodoX/internal/service"
)

type templateCreateRequest struct {
	Name        string      `json:"name"`
	Title       string      `json:"title"`
	Category    categoryRef `json:"category"`
	DueDate     dateRef     `json:"dueDate"`
	Priority    string      `json:"priority"`
	Description string      `json:"description"`
}

func (s *Server) listTemplates(c echo.Context) error {
	templates, err := s.templates.List(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, templates)
}

func (s *Server) createTemplate(c echo.Context) error {
	var req templateCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}

	template, err := s.templates.Create(c.Request().Context(), currentUser(c).ID, service.TemplateInput{
		Name:        req.Name,
		Title:       req.Title,
		CategoryID:  req.Category.ID,
		DueDate:     req.DueDate.Time,
		Priority:    req.Priority,
		Description: req.Description,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, template)
}

func (s *Server) updateTemplate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	fields, err := decodeFields(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}

	patch, err := templatePatchFrom(fields)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}

	template, err := s.templates.Update(c.Request().Context(), currentUser(c).ID, id, patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, template)
}

func (s *Server) deleteTemplate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	template, err := s.templates.Delete(c.Request().Context(), currentUser(c).ID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, template)
}

func templatePatchFrom(fields map[string]json.RawMessage) (service.TemplatePatch, error) {
	var patch service.TemplatePatch

	if raw, ok := fields["name"]; ok {
		if err := json.Unmarshal(raw, &patch.Name); err != nil {
			return patch, err
		}
		patch.SetName = true
	}
	if raw, ok := fields["title"]; ok {
		if err := json.Unmarshal(raw, &patch.Title); err != nil {
			return patch, err
		}
		patch.SetTitle = true
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

	return patch, nil
}
