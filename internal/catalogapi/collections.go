package catalogapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/coursedesk/coursedesk/internal/domain"
	"github.com/coursedesk/coursedesk/internal/webserver"
)

// registerCollectionRoutes registers the generic collection gateway. The
// route only resolves allow-listed names; free-form pass-through is not
// exposed.
func registerCollectionRoutes() {
	webserver.ApiGET("/collections/:collectionName", listCollection)
}

func listCollection(c echo.Context) error {
	appctx := GetAppContext(c)
	cfg := appctx.Config()
	name := c.Param("collectionName")

	if !cfg.Gateway.Enabled || !domain.IsExposed(cfg.Gateway.Collections, name) {
		return fail(c, http.StatusNotFound, "COLLECTION_NOT_FOUND", "Collection not found", nil)
	}

	docs, err := appctx.Browser().ListAll(c.Request().Context(), name)
	if err != nil {
		zap.L().Error("failed to fetch collection", zap.String("collection", name), zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch documents", nil)
	}
	return ok(c, docs)
}
