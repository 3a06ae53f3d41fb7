package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// pathID parses the ":id" path parameter; anything but a positive integer is a 404.
func pathID(ctx echo.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errHttpNotFound
	}
	return id, nil
}
