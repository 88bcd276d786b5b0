package handler

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-reservation/internal/middleware"
	"github.com/iliyamo/court-reservation/internal/model"
)

var errNoPrincipal = errors.New("no principal in context")

// principal returns the caller set by middleware.JWTAuth.
func principal(c echo.Context) (model.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return model.Principal{}, errNoPrincipal
	}
	return p, nil
}

// target reads the caller and the :id path parameter.  Failures come
// back as *echo.HTTPError so handlers can return them unchanged.
func target(c echo.Context) (model.Principal, uint64, error) {
	actor, err := principal(c)
	if err != nil {
		return actor, 0, errUnauthorized
	}
	id, err := pathID(c, "id")
	if err != nil {
		return actor, 0, invalidParam(err)
	}
	return actor, id, nil
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// pageParams reads ?page=&size=.  Missing or malformed values fall back to
// zero and are clamped by the service.
func pageParams(c echo.Context) (page, size int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	size, _ = strconv.Atoi(c.QueryParam("size"))
	return page, size
}

// dateParam parses an optional YYYY-MM-DD query parameter.
func dateParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	d, err := model.ParseDay(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a date in %s format", name, model.DateLayout)
	}
	return &d, nil
}

// clockParam parses a required HH:MM query parameter.
func clockParam(c echo.Context, name string) (model.ClockTime, error) {
	t, err := model.ParseClock(c.QueryParam(name))
	if err != nil {
		return 0, fmt.Errorf("%s must be a time in HH:MM format", name)
	}
	return t, nil
}
