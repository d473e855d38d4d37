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

	"goal_backend/internal/feature/auth/domain/entity"
	"goal_backend/internal/feature/auth/usecase"
)

const usersCollection = "users"

// userDocument はusersコレクションのドキュメント形式です。
type userDocument struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Password  string    `bson:"password"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func toUserDocument(u *entity.User) userDocument {
	return userDocument{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (d userDocument) toEntity() *entity.User {
	return &entity.User{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		Password:  d.Password,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// userMongo はUserRepositoryインターフェースのMongoDB実装です。
type userMongo struct {
	coll *mongo.Collection
	now  func() time.Time
}

var _ usecase.UserRepository = (*userMongo)(nil)

func NewUserMongo(db *mongo.Database) *userMongo {
	return &userMongo{coll: db.Collection(usersCollection), now: time.Now}
}

// EnsureIndexes はemailの一意インデックスを作成します。
func (r *userMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users: create email index: %w", err)
	}
	return nil
}

func (r *userMongo) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errNilUser
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := r.now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now

	if _, err := r.coll.InsertOne(ctx, toUserDocument(u)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

func (r *userMongo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userMongo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *userMongo) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}
