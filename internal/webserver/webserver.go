package webserver

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/bwmarrin/snowflake"
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/coursedesk/coursedesk/config"
	"github.com/coursedesk/coursedesk/pkg/metrics"
)

// AppContextKey is the echo context key the application object is stored
// under for handler packages to retrieve.
const AppContextKey = "coursedesk_app"

var server *WebServer

type WebServer struct {
	root    *echo.Echo
	cfg     *config.AppConfig
	started time.Time
}

// jsonSerializer plugs jsoniter in as the echo JSON codec
type jsonSerializer struct{}

func (jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := jsoniter.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	if err := jsoniter.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unable to parse request body").SetInternal(err)
	}
	return nil
}

// Init builds the package server. appctx is the application object handed to
// every request; handler packages assert it to the interface they need.
func Init(cfg *config.AppConfig, appctx interface{}) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}

	idnode, err := snowflake.NewNode(1)
	if err != nil {
		zap.S().Errorf("snowflake node init error %s", err.Error())
	}

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			if idnode == nil {
				return ""
			}
			return idnode.Generate().String()
		},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			metrics.Incr("http_requests_total")
			zap.L().Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AppContextKey, appctx)
			return next(c)
		}
	})

	e.Static("/Assets", filepath.Join(cfg.Web.AssetsDir, "Assets"))

	server = &WebServer{root: e, cfg: cfg, started: time.Now()}
	server.root.GET("/status", serverStatus)
	return server
}

func serverStatus(c echo.Context) error {
	body := map[string]interface{}{
		"appid":  server.cfg.System.Appid,
		"uptime": time.Since(server.started).String(),
		"time":   time.Now().Format(time.RFC3339),
	}
	if v, ok := metrics.Latest("mongodb_up"); ok {
		body["mongodb_up"] = v == 1
	}
	return c.JSON(http.StatusOK, body)
}

// Listen blocks serving HTTP until shutdown
func Listen() error {
	addr := fmt.Sprintf("%s:%d", server.cfg.Web.Host, server.cfg.Web.Port)
	zap.S().Infof("starting web server on %s", addr)
	err := server.root.Start(addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func Shutdown(ctx context.Context) error {
	if server == nil {
		return nil
	}
	return server.root.Shutdown(ctx)
}

func ApiGET(path string, h echo.HandlerFunc) {
	server.root.GET(path, h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.root.POST(path, h)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.root.PUT(path, h)
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.root.DELETE(path, h)
}
