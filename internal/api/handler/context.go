package handler

import (
	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the claims injected by the OptionalAuth middleware.
// Both values are empty for anonymous requests; the dispatcher's auth gate
// is the authority on whether an empty uid is acceptable.
func ctxIdentity(c echo.Context) (uid, email string) {
	uid, _ = c.Get("uid").(string)
	email, _ = c.Get("email").(string)
	return uid, email
}
