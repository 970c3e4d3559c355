package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rushhour/scheduling/internal/core/domain"
	"github.com/rushhour/scheduling/internal/core/ports"
)

const auditCollection = "audit_events"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	col *mongo.Collection
}

var _ ports.AuditRepository = (*AuditRepository)(nil)

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(auditCollection)}
}

type auditDoc struct {
	ID         string    `bson:"_id"`
	Action     string    `bson:"action"`
	Entity     string    `bson:"entity"`
	EntityIDs  []int64   `bson:"entity_ids"`
	ActorID    int64     `bson:"actor_id"`
	ActorRole  string    `bson:"actor_role"`
	OccurredAt time.Time `bson:"occurred_at"`
}

// Insert persists one audit event. Re-inserting the same event id is a no-op.
func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	doc := auditDoc{
		ID:         event.ID,
		Action:     string(event.Action),
		Entity:     event.Entity,
		EntityIDs:  event.EntityIDs,
		ActorID:    event.ActorID,
		ActorRole:  string(event.ActorRole),
		OccurredAt: event.OccurredAt.UTC(),
	}
	_, err := r.col.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// List returns events newest first.
func (r *AuditRepository) List(ctx context.Context, page domain.PageRequest) ([]domain.AuditEvent, int64, error) {
	page = page.Normalize()

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count audit events: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: -1}}).
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Size))
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find audit events: %w", err)
	}
	defer cur.Close(ctx)

	var docs []auditDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode audit events: %w", err)
	}

	events := make([]domain.AuditEvent, len(docs))
	for i, d := range docs {
		events[i] = domain.AuditEvent{
			ID:         d.ID,
			Action:     domain.AuditAction(d.Action),
			Entity:     d.Entity,
			EntityIDs:  d.EntityIDs,
			ActorID:    d.ActorID,
			ActorRole:  domain.Role(d.ActorRole),
			OccurredAt: d.OccurredAt,
		}
	}
	return events, total, nil
}

// EnsureIndexes creates the indexes the audit listing relies on.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "occurred_at", Value: -1}}},
		{Keys: bson.D{{Key: "entity", Value: 1}, {Key: "entity_ids", Value: 1}}},
		{Keys: bson.D{{Key: "actor_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
