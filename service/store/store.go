package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dorkfi/dorkfi-backend/config"
	"github.com/dorkfi/dorkfi-backend/schema"
)

// ErrSnapshotNotFound is returned when no snapshot exists for an address.
var ErrSnapshotNotFound = errors.New("snapshot not found")

type Service struct {
	cfg config.MongoDBConfig
	mc  *mongo.Client
}

func NewService(cfg config.MongoDBConfig, mc *mongo.Client) *Service {
	return &Service{cfg, mc}
}

func (s *Service) CheckpointCollection() *mongo.Collection {
	return s.mc.Database(s.cfg.DB).Collection(s.cfg.CheckpointCollection)
}

func (s *Service) SnapshotCollection() *mongo.Collection {
	return s.mc.Database(s.cfg.DB).Collection(s.cfg.SnapshotCollection)
}

func (s *Service) EnsureDBIndexes(ctx context.Context) ([]string, error) {
	unique := true
	return s.SnapshotCollection().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: schema.SnapshotAddressKey, Value: 1}}, Options: &options.IndexOptions{Unique: &unique}},
		{Keys: bson.D{{Key: schema.SnapshotTimestampKey, Value: 1}}},
	})
}

func (s *Service) LatestRound(ctx context.Context) (uint64, error) {
	var cp schema.Checkpoint
	if err := s.CheckpointCollection().FindOne(ctx, bson.M{
		schema.CheckpointRoundKey: bson.M{"$exists": true},
	}).Decode(&cp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, err
	}
	return cp.Round, nil
}

func (s *Service) UpdateLatestRound(ctx context.Context, round uint64) error {
	_, err := s.CheckpointCollection().UpdateOne(ctx, bson.M{
		schema.CheckpointRoundKey: bson.M{"$exists": true},
	}, bson.M{
		"$set": bson.M{
			schema.CheckpointRoundKey:     round,
			schema.CheckpointTimestampKey: time.Now(),
		},
	}, options.Update().SetUpsert(true))
	return err
}

func (s *Service) Snapshot(ctx context.Context, address string) (schema.Snapshot, error) {
	var snap schema.Snapshot
	if err := s.SnapshotCollection().FindOne(ctx, bson.M{
		schema.SnapshotAddressKey: address,
	}).Decode(&snap); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return snap, ErrSnapshotNotFound
		}
		return snap, err
	}
	return snap, nil
}

func (s *Service) CountSnapshots(ctx context.Context) (int64, error) {
	return s.SnapshotCollection().CountDocuments(ctx, bson.M{})
}

func (s *Service) IterateSnapshots(ctx context.Context, cb func(schema.Snapshot) (stop bool, err error)) error {
	cur, err := s.SnapshotCollection().Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("find snapshots: %w", err)
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var snap schema.Snapshot
		if err := cur.Decode(&snap); err != nil {
			return fmt.Errorf("decode snapshot: %w", err)
		}
		stop, err := cb(snap)
		if err != nil {
			return err
		}
		if stop {
			break
		}
	}
	return cur.Err()
}

// UpsertSnapshots writes one document per address. An existing document is
// only replaced when the incoming snapshot's timestamp is strictly greater,
// mirroring the reducer's latest-wins rule.
func (s *Service) UpsertSnapshots(ctx context.Context, snapshots []schema.Snapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	writes := make([]mongo.WriteModel, 0, len(snapshots))
	for _, snap := range snapshots {
		writes = append(writes,
			mongo.NewUpdateOneModel().
				SetFilter(bson.M{
					schema.SnapshotAddressKey: snap.Address,
					schema.SnapshotTimestampKey: bson.M{
						"$lt": snap.Timestamp,
					},
				}).
				SetUpdate(bson.M{
					"$set": bson.M{
						schema.SnapshotRoundKey:      snap.Round,
						schema.SnapshotTimestampKey:  snap.Timestamp,
						schema.SnapshotCollateralKey: snap.Collateral,
						schema.SnapshotBorrowKey:     snap.Borrow,
					},
				}))
	}
	if _, err := s.SnapshotCollection().BulkWrite(ctx, writes); err != nil {
		return fmt.Errorf("bulk write: %w", err)
	}
	// Upserting through the timestamp filter would collide with the unique
	// address index for brand-new documents, so insert missing addresses
	// separately.
	var inserts []mongo.WriteModel
	for _, snap := range snapshots {
		inserts = append(inserts,
			mongo.NewUpdateOneModel().
				SetFilter(bson.M{schema.SnapshotAddressKey: snap.Address}).
				SetUpdate(bson.M{
					"$setOnInsert": bson.M{
						schema.SnapshotRoundKey:      snap.Round,
						schema.SnapshotTimestampKey:  snap.Timestamp,
						schema.SnapshotCollateralKey: snap.Collateral,
						schema.SnapshotBorrowKey:     snap.Borrow,
					},
				}).
				SetUpsert(true))
	}
	if _, err := s.SnapshotCollection().BulkWrite(ctx, inserts); err != nil {
		return fmt.Errorf("bulk write: %w", err)
	}
	return nil
}
