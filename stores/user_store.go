package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/princinho/taskbackend/database"
	"github.com/princinho/taskbackend/models"
	"github.com/princinho/taskbackend/observability"
	"github.com/princinho/taskbackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type UserStore struct {
	col     *mongo.Collection
	metrics *observability.Metrics
}

func NewUserStore(db *mongo.Database, metrics *observability.Metrics) *UserStore {
	return &UserStore{
		col:     db.Collection(database.UsersCollection),
		metrics: metrics,
	}
}

// FindByUsername returns nil, nil when no user has that name.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user *models.User

	err := s.metrics.ObserveStore("users.find_by_username", func() error {
		var err error
		user, err = decodeOne[models.User](s.col.FindOne(ctx, bson.M{"username": username}).Decode)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// Create inserts the user and fills in its id and timestamps.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.ID = bson.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now

	err := s.metrics.ObserveStore("users.create", func() error {
		_, err := s.col.InsertOne(ctx, user)
		return err
	})
	if err != nil {
		if utils.IsDuplicateKey(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// SetRefreshToken overwrites whatever refresh token the user had.
func (s *UserStore) SetRefreshToken(ctx context.Context, id bson.ObjectID, token string) error {
	var matched int64

	err := s.metrics.ObserveStore("users.set_refresh_token", func() error {
		res, err := s.col.UpdateByID(ctx, id, bson.M{
			"$set": bson.M{
				"refreshToken": token,
				"updatedAt":    time.Now().UTC(),
			},
		})
		if err != nil {
			return err
		}
		matched = res.MatchedCount
		return nil
	})
	if err != nil {
		return fmt.Errorf("update refresh token: %w", err)
	}
	if matched == 0 {
		return fmt.Errorf("update refresh token: user %s not found", id.Hex())
	}
	return nil
}
