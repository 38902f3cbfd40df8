package app

import (
	"context"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/coursedesk/coursedesk/config"
	"github.com/coursedesk/coursedesk/internal/catalog"
	"github.com/coursedesk/coursedesk/internal/database"
	"github.com/coursedesk/coursedesk/pkg/metrics"
)

type Application struct {
	appConfig  *config.AppConfig
	conn       *database.Connector
	sched      *cron.Cron
	courseRepo catalog.CourseRepository
	orderRepo  catalog.OrderRepository
	browser    catalog.CollectionBrowser
}

// Ensure Application implements all interfaces
var (
	_ DBProvider         = (*Application)(nil)
	_ ConfigProvider     = (*Application)(nil)
	_ RepositoryProvider = (*Application)(nil)
	_ SchedulerProvider  = (*Application)(nil)
	_ AppContext         = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Database() *mongo.Database {
	return a.conn.Database()
}

func (a *Application) Connector() *database.Connector {
	return a.conn
}

func (a *Application) CourseRepo() catalog.CourseRepository {
	return a.courseRepo
}

func (a *Application) OrderRepo() catalog.OrderRepository {
	return a.orderRepo
}

func (a *Application) Browser() catalog.CollectionBrowser {
	return a.browser
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// OverrideRepositories swaps the store repositories (used in tests)
func (a *Application) OverrideRepositories(c catalog.CourseRepository, o catalog.OrderRepository, b catalog.CollectionBrowser) {
	a.courseRepo = c
	a.orderRepo = o
	a.browser = b
}

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)

	if err := metrics.InitMetrics(cfg.System.Workdir); err != nil {
		zap.S().Warn("Failed to initialize metrics:", err)
	}

	// Open the store connection. A failure here is logged and the process
	// keeps serving; each request then fails with an upstream error.
	creds, err := config.LoadCredentials(cfg.Database.Properties)
	if err != nil {
		zap.L().Error("database credentials unavailable, serving degraded", zap.Error(err))
	}
	a.conn = database.NewConnector(cfg, creds)

	a.courseRepo = catalog.NewMongoCourseRepository(a.conn)
	a.orderRepo = catalog.NewMongoOrderRepository(a.conn)
	a.browser = catalog.NewMongoCollectionBrowser(a.conn)

	// wait for database initialization to complete
	go func() {
		time.Sleep(3 * time.Second)
		a.checkSeedCourses()
	}()

	a.initJob()
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}

	if a.conn != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.conn.Close(ctx)
	}

	_ = metrics.Close()
	_ = zap.L().Sync()
}
