package catalogapi

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/coursedesk/coursedesk/internal/catalog"
	"github.com/coursedesk/coursedesk/internal/webserver"
)

// registerCourseRoutes registers the course catalog endpoints
func registerCourseRoutes() {
	webserver.ApiGET("/getCourses", listCourses)
	webserver.ApiPUT("/updateCourse/:id", updateCourse)
	webserver.ApiGET("/getCourseImage/:id", getCourseImage)
}

func listCourses(c echo.Context) error {
	courses, err := GetAppContext(c).CourseRepo().List(c.Request().Context())
	if err != nil {
		zap.L().Error("failed to fetch courses", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch courses", nil)
	}
	return ok(c, courses)
}

func updateCourse(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid course ID", nil)
	}

	var patch map[string]interface{}
	if err := c.Bind(&patch); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse update", nil)
	}

	updated, err := GetAppContext(c).CourseRepo().Patch(c.Request().Context(), id, patch)
	if errors.Is(err, catalog.ErrNotFound) {
		return fail(c, http.StatusNotFound, "COURSE_NOT_FOUND", "Course not found", nil)
	}
	if err != nil {
		zap.L().Error("failed to update course", zap.Int("id", id), zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update course", nil)
	}

	return ok(c, map[string]interface{}{
		"message":       "Course updated successfully",
		"updatedCourse": updated,
	})
}

func getCourseImage(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid course ID", nil)
	}

	appctx := GetAppContext(c)
	course, err := appctx.CourseRepo().FindByID(c.Request().Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		return fail(c, http.StatusNotFound, "IMAGE_NOT_FOUND", "Course or image not found", nil)
	}
	if err != nil {
		zap.L().Error("failed to fetch course image", zap.Int("id", id), zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch course image", nil)
	}
	if course.Image == "" {
		return fail(c, http.StatusNotFound, "IMAGE_NOT_FOUND", "Course or image not found", nil)
	}

	path, err := resolveAssetPath(appctx.Config().Web.AssetsDir, course.Image)
	if err != nil {
		zap.L().Warn("rejected image path outside assets dir",
			zap.Int("id", id), zap.String("image", course.Image))
		return fail(c, http.StatusNotFound, "IMAGE_NOT_FOUND", "Image file does not exist", nil)
	}
	if _, err := os.Stat(path); err != nil {
		return fail(c, http.StatusNotFound, "IMAGE_NOT_FOUND", "Image file does not exist", nil)
	}
	return c.File(path)
}

// resolveAssetPath joins an image reference onto the assets base directory
// and rejects any path that escapes it.
func resolveAssetPath(baseDir, image string) (string, error) {
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	path := filepath.Clean(filepath.Join(base, filepath.FromSlash(image)))
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Errorf("image path escapes assets dir: %s", image)
	}
	return path, nil
}
