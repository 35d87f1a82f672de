package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careslot/booking-api/internal/core/domain"
	"github.com/careslot/booking-api/internal/core/ports"
)

// ctxActor extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: both the user id and
// a known role must be present, otherwise the token is structurally valid
// but operationally unusable.
func ctxActor(c echo.Context) (ports.Actor, error) {
	userID, _ := c.Get("user_id").(string)
	roleStr, _ := c.Get("role").(string)

	role := domain.Role(roleStr)
	if userID == "" || !role.Valid() {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	return ports.Actor{ID: userID, Role: role}, nil
}
