package database

import (
	"context"
	"crypto/tls"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/coursedesk/coursedesk/config"
)

// ErrNotConnected is returned for every store operation while the startup
// connection has not been established. Startup failure degrades requests,
// it never halts the process.
var ErrNotConnected = errors.New("database connection is not established")

// Connector owns the single long-lived client for the process lifetime.
// Operations borrow collection handles per request; the weighted semaphore
// bounds concurrent outstanding calls and OpContext applies the per-call
// deadline.
type Connector struct {
	client   *mongo.Client
	database *mongo.Database
	inflight *semaphore.Weighted
	timeout  time.Duration
}

// BuildURI assembles the connection string from the five credential values.
// Username and password are URL-encoded, the rest is concatenated verbatim.
func BuildURI(creds config.Credentials) string {
	return creds.Prefix +
		url.QueryEscape(creds.User) + ":" +
		url.QueryEscape(creds.Password) +
		creds.URL + creds.Params
}

// NewConnector opens the client with TLS and retryable writes enabled. A
// connect or ping failure is logged and the connector is returned anyway;
// subsequent operations fail with ErrNotConnected.
func NewConnector(cfg *config.AppConfig, creds config.Credentials) *Connector {
	c := &Connector{
		inflight: semaphore.NewWeighted(cfg.Database.MaxInflight),
		timeout:  time.Duration(cfg.Database.Timeout) * time.Second,
	}

	name := creds.Name
	if name == "" {
		name = cfg.Database.Name
	}

	opts := options.Client().
		ApplyURI(BuildURI(creds)).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetRetryWrites(true).
		SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12}).
		SetConnectTimeout(c.timeout).
		SetServerSelectionTimeout(c.timeout)

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		zap.L().Error("database connect failed, serving degraded", zap.Error(err))
		return c
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		zap.L().Error("database ping failed at startup", zap.Error(err))
	} else {
		zap.L().Info("database connection successful", zap.String("database", name))
	}

	c.client = client
	c.database = client.Database(name)
	return c
}

func (c *Connector) Connected() bool {
	return c.database != nil
}

func (c *Connector) Database() *mongo.Database {
	return c.database
}

// Collection resolves a named collection handle. Any string resolves; the
// allow-list lives at the API layer.
func (c *Connector) Collection(name string) (*mongo.Collection, error) {
	if c.database == nil {
		return nil, ErrNotConnected
	}
	return c.database.Collection(name), nil
}

// OpContext derives the per-operation deadline from the request context
func (c *Connector) OpContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, c.timeout)
}

// Guard acquires an in-flight slot, blocking until one frees up or the
// context expires. The returned release must be called once.
func (c *Connector) Guard(ctx context.Context) (func(), error) {
	if err := c.inflight.Acquire(ctx, 1); err != nil {
		return nil, errors.Wrap(err, "store admission")
	}
	return func() { c.inflight.Release(1) }, nil
}

func (c *Connector) Ping(ctx context.Context) error {
	if c.client == nil {
		return ErrNotConnected
	}
	ctx, cancel := c.OpContext(ctx)
	defer cancel()
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *Connector) Close(ctx context.Context) {
	if c.client == nil {
		return
	}
	if err := c.client.Disconnect(ctx); err != nil {
		zap.L().Warn("database disconnect failed", zap.Error(err))
	}
}
