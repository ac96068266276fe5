package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const collectionName = "documents"

// Mongo implements Store on a single MongoDB collection. Documents of all
// types share the collection and are told apart by their `type` field,
// which carries a secondary index.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewMongo connects to MongoDB, verifies the connection and prepares the
// document collection.
func NewMongo(ctx context.Context, uri, dbName string, logger *zap.Logger) (*Mongo, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	coll := client.Database(dbName).Collection(collectionName)

	// The type discriminator is the primary query axis.
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "type", Value: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to index document type: %w", err)
	}

	return &Mongo{client: client, coll: coll, logger: logger}, nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Get loads a single document by id.
func (m *Mongo) Get(ctx context.Context, id string) (bson.Raw, error) {
	raw, err := m.coll.FindOne(ctx, bson.M{"_id": id}).Raw()
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %s", ErrUnavailable, id, err)
	}
	return raw, nil
}

// Find returns every document matching the equality selector.
func (m *Mongo) Find(ctx context.Context, sel Selector, sort ...SortField) ([]bson.Raw, error) {
	filter := bson.M{}
	for field, value := range sel {
		if in, ok := value.(In); ok {
			filter[field] = bson.M{"$in": []string(in)}
			continue
		}
		filter[field] = value
	}

	opts := options.Find()
	if len(sort) > 0 {
		keys := bson.D{}
		for _, s := range sort {
			order := 1
			if s.Desc {
				order = -1
			}
			keys = append(keys, bson.E{Key: s.Field, Value: order})
		}
		opts.SetSort(keys)
	}

	cursor, err := m.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: find: %s", ErrUnavailable, err)
	}

	var docs []bson.Raw
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: find decode: %s", ErrUnavailable, err)
	}
	return docs, nil
}

// Put inserts the document when it carries no revision, otherwise replaces
// it with a compare-and-swap on the held revision token. On success the
// document carries its new revision.
func (m *Mongo) Put(ctx context.Context, doc Doc) (string, error) {
	oldRev := doc.DocRev()
	doc.SetRev(NextRev(oldRev))

	if oldRev == "" {
		if _, err := m.coll.InsertOne(ctx, doc); err != nil {
			doc.SetRev(oldRev)
			if mongo.IsDuplicateKeyError(err) {
				return "", fmt.Errorf("put %s: %w", doc.DocID(), ErrConflict)
			}
			return "", fmt.Errorf("%w: put %s: %s", ErrUnavailable, doc.DocID(), err)
		}
		return doc.DocRev(), nil
	}

	res, err := m.coll.ReplaceOne(ctx, bson.M{"_id": doc.DocID(), "_rev": oldRev}, doc)
	if err != nil {
		doc.SetRev(oldRev)
		return "", fmt.Errorf("%w: put %s: %s", ErrUnavailable, doc.DocID(), err)
	}
	if res.MatchedCount == 0 {
		doc.SetRev(oldRev)
		return "", fmt.Errorf("put %s: %w", doc.DocID(), ErrConflict)
	}
	return doc.DocRev(), nil
}

// Remove deletes a document, requiring the caller to hold its current
// revision token.
func (m *Mongo) Remove(ctx context.Context, id, rev string) error {
	if rev == "" {
		return fmt.Errorf("remove %s: %w", id, ErrMissingRevision)
	}

	res, err := m.coll.DeleteOne(ctx, bson.M{"_id": id, "_rev": rev})
	if err != nil {
		return fmt.Errorf("%w: remove %s: %s", ErrUnavailable, id, err)
	}
	if res.DeletedCount == 0 {
		count, err := m.coll.CountDocuments(ctx, bson.M{"_id": id})
		if err == nil && count == 0 {
			return fmt.Errorf("remove %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("remove %s: %w", id, ErrConflict)
	}
	return nil
}

// BulkRemove deletes the documents in one ordered bulk write. Every
// document must carry its current revision; a short delete count is
// reported as a conflict.
func (m *Mongo) BulkRemove(ctx context.Context, docs []Doc) error {
	if len(docs) == 0 {
		return nil
	}

	ops := make([]mongo.WriteModel, 0, len(docs))
	for _, doc := range docs {
		if doc.DocRev() == "" {
			return fmt.Errorf("bulk remove %s: %w", doc.DocID(), ErrMissingRevision)
		}
		ops = append(ops, mongo.NewDeleteOneModel().
			SetFilter(bson.M{"_id": doc.DocID(), "_rev": doc.DocRev()}))
	}

	res, err := m.coll.BulkWrite(ctx, ops, options.BulkWrite().SetOrdered(true))
	if err != nil {
		return fmt.Errorf("%w: bulk remove: %s", ErrUnavailable, err)
	}
	if res.DeletedCount != int64(len(docs)) {
		m.logger.Warn("bulk remove incomplete",
			zap.Int64("deleted", res.DeletedCount),
			zap.Int("requested", len(docs)))
		return fmt.Errorf("bulk remove: %w", ErrConflict)
	}
	return nil
}
