// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mythenpark/parkvote/models"
)

// Mongo is the document-store variant: an event_votes collection with
// a unique compound index on (eventId, deviceId), and an
// event_statistics collection keyed by eventId.
//
// The collection API has no multi-document transaction here, so
// cross-document consistency (vote record vs. aggregate) depends on
// the ledger's per-pair critical section. Within a single document the
// counter update is atomic: IncrementCount is a FindOneAndUpdate with
// an aggregation-pipeline $max clamp, never read-then-write.
type Mongo struct {
	client *mongo.Client
	votes  *mongo.Collection
	stats  *mongo.Collection
}

type mongoVote struct {
	EventID    int       `bson:"eventId"`
	DeviceID   string    `bson:"deviceId"`
	EventTitle string    `bson:"eventTitle,omitempty"`
	IPHash     string    `bson:"ipHash,omitempty"`
	CreatedAt  time.Time `bson:"createdAt"`
}

type mongoStat struct {
	EventID    int    `bson:"eventId"`
	EventTitle string `bson:"eventTitle,omitempty"`
	JoinCount  int    `bson:"joinCount"`
}

// OpenMongo connects to the document store, verifies the connection
// and ensures the uniqueness indexes. The client is process-wide and
// reused for every request.
func OpenMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connect mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, errors.Wrap(err, "ping mongo")
	}

	db := client.Database(database)
	m := &Mongo{
		client: client,
		votes:  db.Collection("event_votes"),
		stats:  db.Collection("event_statistics"),
	}

	// The unique compound index is the storage-layer backstop for the
	// one-vote-per-device-per-event invariant.
	_, err = m.votes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "eventId", Value: 1}, {Key: "deviceId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		client.Disconnect(ctx)
		return nil, errors.Wrap(err, "create vote index")
	}
	_, err = m.stats.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "eventId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		client.Disconnect(ctx)
		return nil, errors.Wrap(err, "create statistic index")
	}

	return m, nil
}

func (m *Mongo) Exists(ctx context.Context, eventID int, deviceID string) (bool, error) {
	err := m.votes.FindOne(ctx,
		bson.D{{Key: "eventId", Value: eventID}, {Key: "deviceId", Value: deviceID}},
		options.FindOne().SetProjection(bson.D{{Key: "_id", Value: 1}}),
	).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "find vote record")
	}
	return true, nil
}

func (m *Mongo) Insert(ctx context.Context, rec models.VoteRecord) error {
	_, err := m.votes.InsertOne(ctx, mongoVote{
		EventID:    rec.EventID,
		DeviceID:   rec.DeviceID,
		EventTitle: rec.EventTitle,
		IPHash:     rec.IPHash,
		CreatedAt:  rec.CreatedAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		return ErrConflict
	}
	if err != nil {
		return errors.Wrap(err, "insert vote record")
	}
	return nil
}

func (m *Mongo) Delete(ctx context.Context, eventID int, deviceID string) error {
	res, err := m.votes.DeleteOne(ctx,
		bson.D{{Key: "eventId", Value: eventID}, {Key: "deviceId", Value: deviceID}})
	if err != nil {
		return errors.Wrap(err, "delete vote record")
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) IncrementCount(ctx context.Context, eventID, delta int, eventTitle string) (int, error) {
	set := bson.D{
		{Key: "eventId", Value: eventID},
		{Key: "joinCount", Value: bson.D{{Key: "$max", Value: bson.A{
			0,
			bson.D{{Key: "$add", Value: bson.A{
				bson.D{{Key: "$ifNull", Value: bson.A{"$joinCount", 0}}},
				delta,
			}}},
		}}}},
	}
	if eventTitle != "" {
		set = append(set, bson.E{Key: "eventTitle", Value: eventTitle})
	}

	var stat mongoStat
	err := m.stats.FindOneAndUpdate(ctx,
		bson.D{{Key: "eventId", Value: eventID}},
		mongo.Pipeline{bson.D{{Key: "$set", Value: set}}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&stat)
	if err != nil {
		return 0, errors.Wrap(err, "upsert statistic")
	}
	return stat.JoinCount, nil
}

func (m *Mongo) ListCounts(ctx context.Context) (map[int]int, error) {
	cur, err := m.stats.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(err, "query statistics")
	}
	defer cur.Close(ctx)

	counts := make(map[int]int)
	for cur.Next(ctx) {
		var stat mongoStat
		if err := cur.Decode(&stat); err != nil {
			return nil, errors.Wrap(err, "decode statistic")
		}
		counts[stat.EventID] = stat.JoinCount
	}
	return counts, errors.Wrap(cur.Err(), "iterate statistics")
}

func (m *Mongo) ListVotedEvents(ctx context.Context, deviceID string) ([]int, error) {
	cur, err := m.votes.Find(ctx,
		bson.D{{Key: "deviceId", Value: deviceID}},
		options.Find().SetProjection(bson.D{{Key: "eventId", Value: 1}}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "query voted events")
	}
	defer cur.Close(ctx)

	events := []int{}
	for cur.Next(ctx) {
		var vote mongoVote
		if err := cur.Decode(&vote); err != nil {
			return nil, errors.Wrap(err, "decode vote record")
		}
		events = append(events, vote.EventID)
	}
	return events, errors.Wrap(cur.Err(), "iterate voted events")
}

func (m *Mongo) Close() error {
	return m.client.Disconnect(context.Background())
}
