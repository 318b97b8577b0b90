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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type designAssetRepository struct {
	base
}

func (r *designAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.DesignAsset, error) {
	var doc designAssetDocument
	if err := r.coll.FindOne(r.ctx(ctx), bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrDesignAssetNotFound
		}

		return nil, errors.Wrap(err, "failed to find design asset")
	}

	return doc.toEntity()
}

func (r *designAssetRepository) List(ctx context.Context) ([]*entity.DesignAsset, error) {
	cursor, err := r.coll.Find(r.ctx(ctx), bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list design assets")
	}

	var docs []designAssetDocument
	if err := cursor.All(r.ctx(ctx), &docs); err != nil {
		return nil, errors.Wrap(err, "failed to decode design assets")
	}

	assets := make([]*entity.DesignAsset, 0, len(docs))
	for i := range docs {
		a, err := docs[i].toEntity()
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}

	return assets, nil
}

func (r *designAssetRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(r.ctx(ctx), bson.M{})
	if err != nil {
		return 0, errors.Wrap(err, "failed to count design assets")
	}

	return n, nil
}

func (r *designAssetRepository) Create(ctx context.Context, asset *entity.DesignAsset) error {
	if asset.ID == uuid.Nil {
		asset.ID = uuid.New()
	}
	now := time.Now()
	asset.CreatedAt, asset.UpdatedAt = now, now

	doc, err := fromDesignAssetEntity(asset)
	if err != nil {
		return err
	}
	if _, err := r.coll.InsertOne(r.ctx(ctx), doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDesignAssetTypeTaken
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create design asset")
	}

	return nil
}

func (r *designAssetRepository) Update(ctx context.Context, asset *entity.DesignAsset) error {
	asset.UpdatedAt = time.Now()
	doc, err := fromDesignAssetEntity(asset)
	if err != nil {
		return err
	}

	result, err := r.coll.UpdateByID(r.ctx(ctx), doc.ID, bson.M{"$set": bson.M{
		"name":            doc.Name,
		"mockupImageUrl":  doc.MockupImageURL,
		"basePrice":       doc.BasePrice,
		"printAreaTop":    doc.PrintAreaTop,
		"printAreaLeft":   doc.PrintAreaLeft,
		"printAreaWidth":  doc.PrintAreaWidth,
		"printAreaHeight": doc.PrintAreaHeight,
		"updatedAt":       doc.UpdatedAt,
	}})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update design asset")
	}
	if result.MatchedCount == 0 {
		return repository.ErrDesignAssetNotFound
	}

	return nil
}

func (r *designAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.coll.DeleteOne(r.ctx(ctx), bson.M{"_id": id.String()})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete design asset")
	}
	if result.DeletedCount == 0 {
		return repository.ErrDesignAssetNotFound
	}

	return nil
}
