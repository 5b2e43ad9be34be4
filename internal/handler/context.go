package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	errs "fintrack/internal/errors"
)

// IdentityContextKey is where the request gate stores the authenticated user id.
const IdentityContextKey = "user"

// userID pulls the authenticated identity injected by the request gate.
func userID(c echo.Context) (uuid.UUID, error) {
	id, ok := c.Get(IdentityContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, errs.ErrorResponse{
			Error: "no token provided",
			Code:  "NO_TOKEN",
		})
	}
	return id, nil
}

// domainError translates a service error into the transport response.
func domainError(err error) *echo.HTTPError {
	he := errs.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}

// bindError is the shared response for unparseable request bodies.
func bindError() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, errs.ErrorResponse{
		Error: "invalid request body",
		Code:  "INVALID_REQUEST",
	})
}

// validationError reports failed field validation.
func validationError(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, errs.ErrorResponse{
		Error: err.Error(),
		Code:  "VALIDATION_ERROR",
	})
}

// pathID parses a uuid path parameter.
func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errs.ErrorResponse{
			Error: "invalid " + name,
			Code:  "INVALID_UUID",
		})
	}
	return id, nil
}
