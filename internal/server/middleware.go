package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/khangha1908/TodoX/internal/model"
)

const userContextKey = "user"

// requireAuth resolves the bearer token to a user and stores it on the
// context. Missing or broken tokens get a 401 with no further detail.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing token, authorization denied"})
		}

		user, err := s.auth.ResolveToken(c.Request().Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid token"})
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

func currentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}
