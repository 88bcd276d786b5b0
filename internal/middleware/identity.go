package middleware

// identity.go holds the helpers that move the authenticated principal in
// and out of the Echo context.  Handlers read it with PrincipalFrom; the
// rate limiter uses rateIdentity to build per-user bucket keys.

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-reservation/internal/model"
)

const principalKey = "principal"

// PrincipalFrom returns the principal stored by JWTAuth.  ok is false on
// routes without authentication.
func PrincipalFrom(c echo.Context) (model.Principal, bool) {
	p, ok := c.Get(principalKey).(model.Principal)
	return p, ok
}

// SetPrincipal stores p on the context.  Tests use it to bypass JWTAuth.
func SetPrincipal(c echo.Context, p model.Principal) { c.Set(principalKey, p) }

// rateIdentity names the caller for rate limiting: the user id when a
// principal is present, otherwise "anon".
func rateIdentity(c echo.Context) string {
	if p, ok := PrincipalFrom(c); ok && p.UserID != 0 {
		return strconv.FormatUint(p.UserID, 10)
	}
	return "anon"
}
