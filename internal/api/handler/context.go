package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxFounder extracts the founder display name injected by the Auth
// middleware and performs a fast-fail check before any service call: an
// empty founder means the middleware did not run (or the token carried no
// identity), so the request is rejected rather than attributed to nobody.
func ctxFounder(c echo.Context) (string, error) {
	founder, _ := c.Get("founder").(string)
	if founder == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return founder, nil
}
