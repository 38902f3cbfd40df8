package app

import (
	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/coursedesk/coursedesk/config"
	"github.com/coursedesk/coursedesk/internal/catalog"
)

// DBProvider provides raw database access
type DBProvider interface {
	Database() *mongo.Database
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// RepositoryProvider provides the store repositories handlers operate on
type RepositoryProvider interface {
	CourseRepo() catalog.CourseRepository
	OrderRepo() catalog.OrderRepository
	Browser() catalog.CollectionBrowser
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AppContext combines all provider interfaces for full application context.
// Handlers should depend on specific providers or this combined interface.
type AppContext interface {
	DBProvider
	ConfigProvider
	RepositoryProvider
	SchedulerProvider
}
