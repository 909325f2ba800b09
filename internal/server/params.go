package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse id: %w", err)
	}
	return uint(id), nil
}

// decodeFields reads the request body as a key-presence map, which is what
// partial updates need: an absent key and an explicit null are different.
// An empty body reads as no fields, so the update becomes a no-op.
func decodeFields(c echo.Context) (map[string]json.RawMessage, error) {
	fields := map[string]json.RawMessage{}
	if err := json.NewDecoder(c.Request().Body).Decode(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return fields, nil
		}
		return nil, fmt.Errorf("decode body: %w", err)
	}
	return fields, nil
}

// categoryRef accepts a category reference as a number, a numeric string,
// or one of null / "" / "none" for no category.
type categoryRef struct {
	ID *uint
}

func (r *categoryRef) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" || raw == `""` || raw == `"none"` {
		r.ID = nil
		return nil
	}
	raw = strings.Trim(raw, `"`)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid category reference %s", raw)
	}
	v := uint(id)
	r.ID = &v
	return nil
}

// dateRef accepts a due date as an RFC 3339 string, with null or "" meaning
// no date. Date pickers submit "" when nothing is chosen.
type dateRef struct {
	Time *time.Time
}

func (r *dateRef) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" || raw == `""` {
		r.Time = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(b, &t); err != nil {
		return fmt.Errorf("invalid date %s: %w", raw, err)
	}
	r.Time = &t
	return nil
}
