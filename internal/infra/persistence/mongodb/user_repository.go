package mongodb

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type userRepository struct {
	base
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(r.ctx(ctx), filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return doc.toEntity(), nil
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now

	if _, err := r.coll.InsertOne(r.ctx(ctx), fromUserEntity(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrEmailTaken
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	return nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()
	result, err := r.coll.UpdateByID(r.ctx(ctx), user.ID.String(), bson.M{"$set": bson.M{
		"email":        user.Email,
		"passwordHash": user.PasswordHash,
		"firstName":    user.FirstName,
		"lastName":     user.LastName,
		"roles":        user.Roles.ToStrings(),
		"active":       user.Active,
		"updatedAt":    user.UpdatedAt,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrEmailTaken
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}
	if result.MatchedCount == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// LockByID writes to the user document so concurrent transactions touching the
// same user hit a write conflict and are retried one after another.
func (r *userRepository) LockByID(ctx context.Context, id uuid.UUID) error {
	result, err := r.coll.UpdateByID(r.ctx(ctx), id.String(), bson.M{"$inc": bson.M{"lockVersion": 1}})
	if err != nil {
		return errors.Wrap(err, "failed to lock user")
	}
	if result.MatchedCount == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}
