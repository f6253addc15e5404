package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/halfmesh/pkg/errors"
	"github.com/matzehuels/halfmesh/pkg/meshio"
)

// MongoStore persists snapshots in a MongoDB collection, one document per
// name. The wire type's bson tags define the stored shape, so snapshots are
// queryable server-side (by name, id, or vertex count).
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoOptions configures a [MongoStore].
type MongoOptions struct {
	URI        string
	Database   string // defaults to "halfmesh"
	Collection string // defaults to "meshes"
}

// mongoRecord is the stored document: the name as primary key plus the
// snapshot itself.
type mongoRecord struct {
	Name string          `bson:"_id"`
	Doc  meshio.Document `bson:"doc"`
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.Database == "" {
		opts.Database = "halfmesh"
	}
	if opts.Collection == "" {
		opts.Collection = "meshes"
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, Retryable(errors.Wrap(errors.ErrCodeStore, err, "connect to mongodb"))
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, Retryable(errors.Wrap(errors.ErrCodeStore, err, "ping mongodb"))
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(opts.Database).Collection(opts.Collection),
	}, nil
}

// Put stores a snapshot under name.
func (s *MongoStore) Put(ctx context.Context, name string, doc meshio.Document) error {
	if err := errors.ValidateMeshName(name); err != nil {
		return err
	}
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": name},
		mongoRecord{Name: name, Doc: doc},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return Retryable(errors.Wrap(errors.ErrCodeStore, err, "store snapshot %q", name))
	}
	return nil
}

// Get retrieves the snapshot stored under name.
func (s *MongoStore) Get(ctx context.Context, name string) (meshio.Document, error) {
	if err := errors.ValidateMeshName(name); err != nil {
		return meshio.Document{}, err
	}
	var rec mongoRecord
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return meshio.Document{}, errors.New(errors.ErrCodeMeshNotFound, "mesh %q not found", name)
	}
	if err != nil {
		return meshio.Document{}, Retryable(errors.Wrap(errors.ErrCodeStore, err, "read snapshot %q", name))
	}
	return rec.Doc, nil
}

// Delete removes the snapshot stored under name.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateMeshName(name); err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": name}); err != nil {
		return Retryable(errors.Wrap(errors.ErrCodeStore, err, "delete snapshot %q", name))
	}
	return nil
}

// List returns the stored names.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, Retryable(errors.Wrap(errors.ErrCodeStore, err, "list snapshots"))
	}
	defer cursor.Close(ctx)

	var names []string
	for cursor.Next(ctx) {
		var rec struct {
			Name string `bson:"_id"`
		}
		if err := cursor.Decode(&rec); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "decode snapshot name")
		}
		names = append(names, rec.Name)
	}
	if err := cursor.Err(); err != nil {
		return nil, Retryable(errors.Wrap(errors.ErrCodeStore, err, "list snapshots"))
	}
	return names, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
