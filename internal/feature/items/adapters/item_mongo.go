package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"goal_backend/internal/feature/items/domain/entity"
	"goal_backend/internal/feature/items/usecase"
)

const itemsCollection = "items"

type itemDocument struct {
	ID   string    `bson:"_id"`
	Name string    `bson:"name"`
	Date time.Time `bson:"date"`
}

type itemMongo struct {
	coll *mongo.Collection
}

var _ usecase.ItemRepository = (*itemMongo)(nil)

func NewItemMongo(db *mongo.Database) *itemMongo {
	return &itemMongo{coll: db.Collection(itemsCollection)}
}

func (r *itemMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "date", Value: -1}}})
	if err != nil {
		return fmt.Errorf("items: create date index: %w", err)
	}
	return nil
}

func (r *itemMongo) List(ctx context.Context) ([]entity.Item, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var docs []itemDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	items := make([]entity.Item, 0, len(docs))
	for _, d := range docs {
		items = append(items, entity.Item{ID: d.ID, Name: d.Name, Date: d.Date})
	}
	return items, nil
}

func (r *itemMongo) Create(ctx context.Context, item *entity.Item) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	_, err := r.coll.InsertOne(ctx, itemDocument{ID: item.ID, Name: item.Name, Date: item.Date})
	return err
}

func (r *itemMongo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return usecase.ErrItemNotFound
	}
	return nil
}
