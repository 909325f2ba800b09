package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/khangha1908/TodoX/internal/service"
)

type categoryRequest struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

func (s *Server) listCategories(c echo.Context) error {
	categories, err := s.categories.List(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (s *Server) createCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}

	category, err := s.categories.Create(c.Request().Context(), currentUser(c).ID, service.CategoryInput{
		Name:        req.Name,
		Color:       req.Color,
		Description: req.Description,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, category)
}

func (s *Server) updateCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}

	category, err := s.categories.Update(c.Request().Context(), currentUser(c).ID, id, service.CategoryInput{
		Name:        req.Name,
		Color:       req.Color,
		Description: req.Description,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

func (s *Server) deleteCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	category, err := s.categories.Delete(c.Request().Context(), currentUser(c).ID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}
