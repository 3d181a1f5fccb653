// Package mongodb implements the MongoDB database adapter that runs
// translated command documents against a live server.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/mongolift/mongolift/internal/config"
	"github.com/mongolift/mongolift/internal/core/statement"
	"github.com/mongolift/mongolift/internal/core/translator"
	"github.com/mongolift/mongolift/internal/debug"
)

// Adapter wraps a mongo client scoped to one database.
type Adapter struct {
	client *mongo.Client
	db     *mongo.Database
	config *config.Config
}

// NewAdapter creates an unconnected adapter for the given configuration.
func NewAdapter(cfg *config.Config) *Adapter {
	return &Adapter{config: cfg}
}

// Connect establishes the client connection and verifies it with a ping.
func (a *Adapter) Connect(ctx context.Context) error {
	client, err := mongo.Connect(options.Client().ApplyURI(a.config.URI))
	if err != nil {
		return fmt.Errorf("mongodb: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, a.config.ConnectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("mongodb: ping: %w", err)
	}

	a.client = client
	a.db = client.Database(a.config.Database)
	debug.Debug("connected to mongodb", "database", a.config.Database)
	return nil
}

// Disconnect closes the client connection.
func (a *Adapter) Disconnect(ctx context.Context) error {
	if a.client == nil {
		return nil
	}
	return a.client.Disconnect(ctx)
}

// Ping checks that the connection is alive.
func (a *Adapter) Ping(ctx context.Context) error {
	if a.client == nil {
		return fmt.Errorf("mongodb: not connected")
	}
	return a.client.Ping(ctx, nil)
}

// RunCommand runs a raw command document against the database and decodes
// the server reply.
func (a *Adapter) RunCommand(ctx context.Context, cmd bson.D) (bson.M, error) {
	if a.db == nil {
		return nil, fmt.Errorf("mongodb: not connected")
	}
	var reply bson.M
	if err := a.db.RunCommand(ctx, cmd).Decode(&reply); err != nil {
		return nil, fmt.Errorf("mongodb: run command: %w", err)
	}
	return reply, nil
}

// Execute binds the operation's parameters and runs the resulting command.
func (a *Adapter) Execute(ctx context.Context, op *translator.Operation, bindings statement.Bindings, opts *statement.QueryOptions) (bson.M, error) {
	wire, err := op.ExecutableWire(bindings, opts)
	if err != nil {
		return nil, err
	}
	debug.Debug("executing command", "collections", op.Collections)
	return a.RunCommand(ctx, wire)
}
