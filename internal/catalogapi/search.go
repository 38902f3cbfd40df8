package catalogapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/coursedesk/coursedesk/internal/webserver"
)

// registerSearchRoutes registers the course search endpoint
func registerSearchRoutes() {
	webserver.ApiGET("/search", searchCourses)
}

func searchCourses(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("query"))
	if query == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Search query is required", nil)
	}

	results, err := GetAppContext(c).CourseRepo().Search(c.Request().Context(), query)
	if err != nil {
		zap.L().Error("failed to perform search", zap.String("query", query), zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to perform search", nil)
	}
	return ok(c, results)
}
