package catalogapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/coursedesk/coursedesk/internal/app"
	"github.com/coursedesk/coursedesk/internal/webserver"
)

// InitRouter registers every catalog API route on the web server
func InitRouter() {
	registerCourseRoutes()
	registerOrderRoutes()
	registerSearchRoutes()
	registerCollectionRoutes()
}

// GetAppContext retrieves the application context injected by the web server
func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(webserver.AppContextKey).(app.AppContext)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	body := map[string]interface{}{
		"code":  code,
		"error": message,
	}
	if detail != nil {
		body["detail"] = detail
	}
	return c.JSON(status, body)
}

func parseIDParam(c echo.Context, name string) (int, error) {
	return strconv.Atoi(c.Param(name))
}
