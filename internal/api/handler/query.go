package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Jorge-Nunes/noty-sub001/internal/backend"
)

// listOptions reads the shared paging/filter query parameters. Unparseable
// numbers fall back to zero, which the backend treats as its defaults.
func listOptions(c echo.Context) backend.ListOptions {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return backend.ListOptions{
		Page:   page,
		Limit:  limit,
		Search: c.QueryParam("search"),
		Status: c.QueryParam("status"),
	}
}
