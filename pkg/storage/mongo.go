package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/ndexcontent/tcgaloader/pkg/graph"
	"github.com/ndexcontent/tcgaloader/pkg/report"
)

// Mongo defaults.
const (
	DefaultMongoDatabase   = "tcgaloader"
	DefaultMongoCollection = "networks"
)

// MongoConfig configures [NewMongoStore].
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	// Timeout bounds connecting and each write. Zero means 10s.
	Timeout time.Duration
}

// MongoStore upserts one document per network, keyed by network name.
type MongoStore struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
}

// networkDocument is the stored form of an [Output].
type networkDocument struct {
	ID          string              `bson:"_id"`
	Name        string              `bson:"name"`
	Description string              `bson:"description,omitempty"`
	RunID       string              `bson:"run_id,omitempty"`
	Columns     []string            `bson:"columns"`
	Records     []map[string]string `bson:"records"`
	Graph       *graph.Graph        `bson:"graph,omitempty"`
	UpdatedAt   time.Time           `bson:"updated_at"`
}

// NewMongoStore connects to MongoDB and pings the primary.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{
		client:  client,
		coll:    client.Database(cfg.Database).Collection(cfg.Collection),
		timeout: cfg.Timeout,
	}, nil
}

// Save replaces the network's document, inserting it when missing.
func (s *MongoStore) Save(ctx context.Context, out Output) error {
	doc := newDocument(out, time.Now().UTC())

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save %s: %w", doc.ID, err)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func newDocument(out Output, now time.Time) networkDocument {
	n := out.Network
	cols := n.Columns()
	rows := make([]map[string]string, len(n.Records))
	for i, r := range n.Records {
		rows[i] = report.Fields(r, cols)
	}
	return networkDocument{
		ID:          n.Name,
		Name:        n.Name,
		Description: n.Description,
		RunID:       out.RunID,
		Columns:     cols,
		Records:     rows,
		Graph:       out.Graph,
		UpdatedAt:   now,
	}
}

var _ Store = (*MongoStore)(nil)
