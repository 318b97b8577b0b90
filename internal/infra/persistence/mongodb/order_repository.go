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

type orderRepository struct {
	base
}

// Create inserts the order document with its embedded items in one write.
func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
	}
	now := time.Now()
	order.CreatedAt, order.UpdatedAt = now, now

	doc, err := fromOrderEntity(order)
	if err != nil {
		return err
	}
	if _, err := r.coll.InsertOne(r.ctx(ctx), doc); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var doc orderDocument
	if err := r.coll.FindOne(r.ctx(ctx), bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return doc.toEntity()
}

func (r *orderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error) {
	return r.find(ctx, bson.M{"customerId": customerID.String()},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *orderRepository) FindAll(ctx context.Context) ([]*entity.Order, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *orderRepository) UpdateStatus(ctx context.Context, change repository.StatusChange) error {
	result, err := r.coll.UpdateOne(r.ctx(ctx),
		bson.M{"_id": change.OrderID.String(), "status": change.From.String()},
		bson.M{"$set": bson.M{
			"status":    change.To.String(),
			"heldFrom":  optionalStatus(change.HeldFrom),
			"updatedAt": change.At,
		}},
	)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update order status")
	}
	if result.MatchedCount == 1 {
		return nil
	}

	count, err := r.coll.CountDocuments(r.ctx(ctx), bson.M{"_id": change.OrderID.String()})
	if err != nil {
		return errors.Wrap(err, "failed to check order existence")
	}
	if count == 0 {
		return repository.ErrOrderNotFound
	}

	return repository.ErrOrderStatusMismatch
}

func (r *orderRepository) AttachTrackingURL(ctx context.Context, id uuid.UUID, url string) error {
	result, err := r.coll.UpdateByID(r.ctx(ctx), id.String(), bson.M{"$set": bson.M{"trackingTokenUrl": url}})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to attach tracking url")
	}
	if result.MatchedCount == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

func (r *orderRepository) FindMissingTracking(ctx context.Context, createdBefore time.Time, limit int) ([]*entity.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	// A nil match covers both an explicit null and a missing field.
	return r.find(ctx, bson.M{"trackingTokenUrl": nil, "createdAt": bson.M{"$lt": createdBefore}}, opts)
}

func (r *orderRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entity.Order, error) {
	cursor, err := r.coll.Find(r.ctx(ctx), filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find orders")
	}

	var docs []orderDocument
	if err := cursor.All(r.ctx(ctx), &docs); err != nil {
		return nil, errors.Wrap(err, "failed to decode orders")
	}

	orders := make([]*entity.Order, 0, len(docs))
	for i := range docs {
		o, err := docs[i].toEntity()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
