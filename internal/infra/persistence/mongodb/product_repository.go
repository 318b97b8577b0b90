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

type productRepository struct {
	base
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var doc productDocument
	if err := r.coll.FindOne(r.ctx(ctx), bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return doc.toEntity()
}

func (r *productRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}

	return r.find(ctx, bson.M{"_id": bson.M{"$in": keys}}, nil)
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	query := bson.M{}
	if filter.ActiveOnly {
		query["active"] = true
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	return r.find(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *productRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entity.Product, error) {
	cursor, err := r.coll.Find(r.ctx(ctx), filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find products")
	}

	var docs []productDocument
	if err := cursor.All(r.ctx(ctx), &docs); err != nil {
		return nil, errors.Wrap(err, "failed to decode products")
	}

	products := make([]*entity.Product, 0, len(docs))
	for i := range docs {
		p, err := docs[i].toEntity()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, nil
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := time.Now()
	product.CreatedAt, product.UpdatedAt = now, now

	doc, err := fromProductEntity(product)
	if err != nil {
		return err
	}
	if _, err := r.coll.InsertOne(r.ctx(ctx), doc); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	return nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	product.UpdatedAt = time.Now()
	doc, err := fromProductEntity(product)
	if err != nil {
		return err
	}

	result, err := r.coll.UpdateByID(r.ctx(ctx), doc.ID, bson.M{"$set": bson.M{
		"name":            doc.Name,
		"description":     doc.Description,
		"category":        doc.Category,
		"images":          doc.Images,
		"basePrice":       doc.BasePrice,
		"availableSizes":  doc.AvailableSizes,
		"availableColors": doc.AvailableColors,
		"stockQuantity":   doc.StockQuantity,
		"active":          doc.Active,
		"updatedAt":       doc.UpdatedAt,
	}})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update product")
	}
	if result.MatchedCount == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func (r *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	result, err := r.coll.UpdateOne(r.ctx(ctx),
		bson.M{"_id": id.String(), "stockQuantity": bson.M{"$gte": qty}},
		bson.M{
			"$inc": bson.M{"stockQuantity": -qty},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to decrement stock")
	}
	if result.MatchedCount == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}

		return repository.ErrInsufficientStock
	}

	return nil
}
