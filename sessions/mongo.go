package sessions

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "sessions"

// MongoStore keeps one document per session. Expired documents are removed by a TTL index.
type MongoStore struct {
	collection *mongo.Collection
}

var _ Store = &MongoStore{}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		collection: db.Collection(CollectionName),
	}
}

func (m *MongoStore) Initialize(ctx context.Context) error {
	_, err := m.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "expirationTime", Value: 1},
			},
			Options: options.Index().
				SetExpireAfterSeconds(0).
				SetName("SessionExpiration"),
		},
	})
	return err
}

func (m *MongoStore) Get(ctx context.Context, id string) (*Session, error) {
	session := &Session{}
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrSessionNotFound
	} else if err != nil {
		return nil, fmt.Errorf("unable to get session: %w", err)
	}
	if session.IsExpired() {
		return nil, ErrSessionNotFound
	}

	return session, nil
}

func (m *MongoStore) Save(ctx context.Context, session *Session) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := m.collection.ReplaceOne(ctx, bson.M{"_id": session.Id}, session, opts); err != nil {
		return fmt.Errorf("unable to save session: %w", err)
	}
	return nil
}

func (m *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := m.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("unable to delete session: %w", err)
	}
	return nil
}
