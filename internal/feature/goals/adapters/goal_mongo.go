package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"goal_backend/internal/feature/goals/domain/entity"
	"goal_backend/internal/feature/goals/usecase"
)

const goalsCollection = "goals"

// goalDocument mirrors the documents of the goals collection.
type goalDocument struct {
	ID        string    `bson:"_id"`
	User      string    `bson:"user"`
	Text      string    `bson:"text"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (d goalDocument) toEntity() entity.Goal {
	return entity.Goal{
		ID:        d.ID,
		UserID:    d.User,
		Text:      d.Text,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type goalMongo struct {
	coll *mongo.Collection
	now  func() time.Time
}

var _ usecase.GoalRepository = (*goalMongo)(nil)

func NewGoalMongo(db *mongo.Database) *goalMongo {
	return &goalMongo{coll: db.Collection(goalsCollection), now: time.Now}
}

// EnsureIndexes creates the owner index used by ListByUser.
func (r *goalMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("goals: create user index: %w", err)
	}
	return nil
}

func (r *goalMongo) ListByUser(ctx context.Context, userID string) ([]entity.Goal, error) {
	return r.list(ctx, bson.M{"user": userID})
}

func (r *goalMongo) ListAll(ctx context.Context) ([]entity.Goal, error) {
	return r.list(ctx, bson.M{})
}

func (r *goalMongo) list(ctx context.Context, filter bson.M) ([]entity.Goal, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(oldestFirst()))
	if err != nil {
		return nil, err
	}
	var docs []goalDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	goals := make([]entity.Goal, 0, len(docs))
	for _, d := range docs {
		goals = append(goals, d.toEntity())
	}
	return goals, nil
}

func oldestFirst() bson.D {
	return bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}
}

func (r *goalMongo) FindByID(ctx context.Context, id string) (*entity.Goal, error) {
	var doc goalDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrGoalNotFound
		}
		return nil, err
	}
	g := doc.toEntity()
	return &g, nil
}

func (r *goalMongo) Create(ctx context.Context, g *entity.Goal) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	now := r.now().UTC()
	g.CreatedAt, g.UpdatedAt = now, now

	doc := goalDocument{ID: g.ID, User: g.UserID, Text: g.Text, CreatedAt: now, UpdatedAt: now}
	_, err := r.coll.InsertOne(ctx, doc)
	return err
}

func (r *goalMongo) UpdateText(ctx context.Context, id, text string) (*entity.Goal, error) {
	update := bson.M{"$set": bson.M{"text": text, "updatedAt": r.now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc goalDocument
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrGoalNotFound
		}
		return nil, err
	}
	g := doc.toEntity()
	return &g, nil
}

func (r *goalMongo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return usecase.ErrGoalNotFound
	}
	return nil
}
