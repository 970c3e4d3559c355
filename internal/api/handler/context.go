package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rushhour/scheduling/internal/api/middleware"
	"github.com/rushhour/scheduling/internal/core/domain"
)

// callerFrom extracts the caller injected by the Auth middleware. Its
// absence means the route was mounted without authentication.
func callerFrom(c echo.Context) (domain.Caller, error) {
	caller, ok := middleware.CallerFrom(c)
	if !ok || caller.AccountID == 0 {
		return domain.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return caller, nil
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Validation("id must be a positive number")
	}
	return id, nil
}

// pageRequest reads pageNumber and pageSize. Absent values take defaults.
func pageRequest(c echo.Context) (domain.PageRequest, error) {
	var req domain.PageRequest
	if raw := c.QueryParam("pageNumber"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return req, domain.Validation("pageNumber must be a positive number")
		}
		req.Number = n
	}
	if raw := c.QueryParam("pageSize"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > domain.MaxPageSize {
			return req, domain.Validation("pageSize must be between 1 and 100")
		}
		req.Size = n
	}
	return req.Normalize(), nil
}

func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return nil
}
