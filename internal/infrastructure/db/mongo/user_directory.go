package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/voltgrid/market-platform/internal/core/domain"
)

const usersCollection = "market_users"

// UserDirectory is the production identity directory backed by MongoDB.
// Email carries no unique index: sign-up accepts every create.
type UserDirectory struct {
	coll *mongo.Collection
}

func NewUserDirectory(db *mongo.Database) *UserDirectory {
	return &UserDirectory{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	UserID    string         `bson:"user_id"`
	Name      string         `bson:"name"`
	Email     string         `bson:"email"`
	Company   string         `bson:"company,omitempty"`
	Role      string         `bson:"role"`
	Tier      string         `bson:"tier"`
	Verified  bool           `bson:"verified"`
	Metadata  map[string]any `bson:"metadata,omitempty"`
	CreatedAt int64          `bson:"created_at"`
}

func toMongoUser(u *domain.User) mongoUser {
	return mongoUser{
		UserID:    u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Company:   u.Company,
		Role:      string(u.Role),
		Tier:      string(u.Tier),
		Verified:  u.Verified,
		Metadata:  u.Metadata,
		CreatedAt: u.CreatedAt.Unix(),
	}
}

func (mu mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:        mu.UserID,
		Name:      mu.Name,
		Email:     mu.Email,
		Company:   mu.Company,
		Role:      domain.Role(mu.Role),
		Tier:      domain.Tier(mu.Tier),
		Verified:  mu.Verified,
		Metadata:  mu.Metadata,
		CreatedAt: unixToTime(mu.CreatedAt),
	}
}

func (d *UserDirectory) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return d.findOne(ctx, bson.M{"email": email})
}

func (d *UserDirectory) FindByRole(ctx context.Context, role domain.Role) (*domain.User, error) {
	return d.findOne(ctx, bson.M{"role": string(role)})
}

func (d *UserDirectory) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := d.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (d *UserDirectory) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if _, err := d.coll.InsertOne(ctx, toMongoUser(user)); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user.Clone(), nil
}

func (d *UserDirectory) List(ctx context.Context) ([]*domain.User, error) {
	cursor, err := d.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*domain.User
	for cursor.Next(ctx) {
		var mu mongoUser
		if err := cursor.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, mu.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
