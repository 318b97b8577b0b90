package mongodb

import (
	"context"
	"strings"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type addressRepository struct {
	base
}

func (r *addressRepository) CreateAddress(ctx context.Context, address *entity.Address) error {
	if address.ID == uuid.Nil {
		address.ID = uuid.New()
	}
	now := time.Now()
	address.CreatedAt, address.UpdatedAt = now, now

	if _, err := r.coll.InsertOne(r.ctx(ctx), fromAddressEntity(address)); err != nil {
		return translateAddressError(err, "failed to create address")
	}

	return nil
}

func (r *addressRepository) FindAddressByID(ctx context.Context, id uuid.UUID) (*entity.Address, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *addressRepository) FindActiveAddressesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error) {
	opts := options.Find().SetSort(bson.D{{Key: "isDefault", Value: -1}, {Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(r.ctx(ctx), bson.M{"userId": userID.String(), "active": true}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find addresses by user")
	}

	var docs []addressDocument
	if err := cursor.All(r.ctx(ctx), &docs); err != nil {
		return nil, errors.Wrap(err, "failed to decode addresses")
	}

	addresses := make([]*entity.Address, 0, len(docs))
	for i := range docs {
		addresses = append(addresses, docs[i].toEntity())
	}

	return addresses, nil
}

func (r *addressRepository) FindDefaultAddressByUser(ctx context.Context, userID uuid.UUID) (*entity.Address, error) {
	return r.findOne(ctx, bson.M{"userId": userID.String(), "active": true, "isDefault": true})
}

func (r *addressRepository) findOne(ctx context.Context, filter bson.M) (*entity.Address, error) {
	var doc addressDocument
	if err := r.coll.FindOne(r.ctx(ctx), filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrAddressNotFound
		}

		return nil, errors.Wrap(err, "failed to find address")
	}

	return doc.toEntity(), nil
}

func (r *addressRepository) UpdateAddress(ctx context.Context, address *entity.Address) error {
	address.UpdatedAt = time.Now()
	doc := fromAddressEntity(address)

	result, err := r.coll.UpdateByID(r.ctx(ctx), doc.ID, bson.M{
		"$set": bson.M{
			"fullName":      doc.FullName,
			"streetAddress": doc.StreetAddress,
			"aptSuite":      doc.AptSuite,
			"city":          doc.City,
			"state":         doc.State,
			"postalCode":    doc.PostalCode,
			"country":       doc.Country,
			"phoneNumber":   doc.PhoneNumber,
			"latitude":      doc.Latitude,
			"longitude":     doc.Longitude,
			"isDefault":     doc.IsDefault,
			"active":        doc.Active,
			"updatedAt":     doc.UpdatedAt,
		},
	})
	if err != nil {
		return translateAddressError(err, "failed to update address")
	}
	if result.MatchedCount == 0 {
		return repository.ErrAddressNotFound
	}

	return nil
}

func (r *addressRepository) ClearDefaultAddresses(ctx context.Context, userID, exceptID uuid.UUID) (int64, error) {
	result, err := r.coll.UpdateMany(r.ctx(ctx),
		bson.M{
			"userId":    userID.String(),
			"active":    true,
			"isDefault": true,
			"_id":       bson.M{"$ne": exceptID.String()},
		},
		bson.M{"$set": bson.M{"isDefault": false, "updatedAt": time.Now()}},
	)
	if err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to clear default addresses")
	}

	return result.ModifiedCount, nil
}

func (r *addressRepository) DeactivateAddress(ctx context.Context, id uuid.UUID) error {
	result, err := r.coll.UpdateOne(r.ctx(ctx),
		bson.M{"_id": id.String(), "active": true},
		bson.M{"$set": bson.M{"active": false, "updatedAt": time.Now()}},
	)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to deactivate address")
	}
	if result.MatchedCount == 0 {
		return repository.ErrAddressNotFound
	}

	return nil
}

func translateAddressError(err error, msg string) error {
	if mongo.IsDuplicateKeyError(err) && strings.Contains(err.Error(), oneDefaultPerUser) {
		return repository.ErrDefaultAddressConflict
	}

	return domainerrors.NewDatabaseExecuteError(err, msg)
}
