package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pthm/hxdemo/lib/todos"
)

const stubSize = 20

// stub serves a fixed set of todos in the remote source's wire format.
type stub struct {
	records []todos.TodoRecord
}

func newStub(n int) *stub {
	records := make([]todos.TodoRecord, n)
	for i := range records {
		records[i] = todos.TodoRecord{
			ID:        strconv.Itoa(i + 1),
			Title:     fmt.Sprintf("Todo %d", i+1),
			Completed: i%3 == 0,
		}
	}
	return &stub{records: records}
}

// StubHandler serves the seeded todo source at /api/todos on its own.
func StubHandler() http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.GET("/api/todos", newStub(stubSize).handleList)
	return e
}

func (s *stub) handleList(c echo.Context) error {
	limit := todos.DefaultLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}
	return c.JSON(http.StatusOK, s.records[:min(limit, len(s.records))])
}
