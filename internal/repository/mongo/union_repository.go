package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/union-tracker/internal/domain"
	"github.com/union-tracker/internal/domain/repository"
)

// unionDocument is the stored form of a union.
type unionDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	domain.Union `bson:",inline"`
}

func (d *unionDocument) toDomain() *domain.Union {
	u := d.Union
	u.ID = d.ID.Hex()
	return &u
}

type unionRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

func NewUnionRepository(db *DB, collection string) repository.UnionRepository {
	return &unionRepository{
		coll:   db.Collection(collection),
		logger: db.logger,
	}
}

func (r *unionRepository) Find(ctx context.Context, opts domain.FindOptions) ([]*domain.Union, error) {
	findOpts := options.Find()
	if sort := buildSort(opts.Sort); len(sort) > 0 {
		findOpts.SetSort(sort)
	}
	if projection := buildProjection(opts.Select); projection != nil {
		findOpts.SetProjection(projection)
	}
	if opts.Skip > 0 {
		findOpts.SetSkip(opts.Skip)
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cursor, err := r.coll.Find(ctx, buildFilter(opts.Conditions), findOpts)
	if err != nil {
		r.logger.Error("Failed to find unions", zap.Error(err))
		return nil, fmt.Errorf("find unions: %w", err)
	}
	return r.decodeAll(ctx, cursor)
}

func (r *unionRepository) Count(ctx context.Context, conditions []domain.Condition) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, buildFilter(conditions))
	if err != nil {
		r.logger.Error("Failed to count unions", zap.Error(err))
		return 0, fmt.Errorf("count unions: %w", err)
	}
	return n, nil
}

func (r *unionRepository) GetByID(ctx context.Context, id string) (*domain.Union, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var doc unionDocument
	err = r.coll.FindOne(ctx, bson.D{{Key: idField, Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get union", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("get union: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *unionRepository) Create(ctx context.Context, u *domain.Union) error {
	doc := unionDocument{Union: *u}

	res, err := r.coll.InsertOne(ctx, &doc)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicateKey
	}
	if err != nil {
		r.logger.Error("Failed to insert union", zap.Error(err))
		return fmt.Errorf("insert union: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("insert union: unexpected id type %T", res.InsertedID)
	}
	u.ID = oid.Hex()

	r.logger.Debug("Union inserted", zap.String("id", u.ID))
	return nil
}

func (r *unionRepository) Update(ctx context.Context, id string, patch domain.UnionPatch) (*domain.Union, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var doc unionDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: idField, Value: oid}},
		buildUpdate(patch),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)

	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, nil
	case mongo.IsDuplicateKeyError(err):
		return nil, repository.ErrDuplicateKey
	case err != nil:
		r.logger.Error("Failed to update union", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("update union: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *unionRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: idField, Value: oid}})
	if err != nil {
		r.logger.Error("Failed to delete union", zap.String("id", id), zap.Error(err))
		return false, fmt.Errorf("delete union: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *unionRepository) FindWithinRadius(ctx context.Context, center domain.Coordinate, radiusRadians float64) ([]*domain.Union, error) {
	cursor, err := r.coll.Find(ctx, radiusFilter(center, radiusRadians))
	if err != nil {
		r.logger.Error("Failed to search unions by radius", zap.Error(err))
		return nil, fmt.Errorf("find unions within radius: %w", err)
	}
	return r.decodeAll(ctx, cursor)
}

func (r *unionRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("delete all unions: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *unionRepository) decodeAll(ctx context.Context, cursor *mongo.Cursor) ([]*domain.Union, error) {
	defer cursor.Close(ctx)

	unions := make([]*domain.Union, 0)
	for cursor.Next(ctx) {
		var doc unionDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode union: %w", err)
		}
		unions = append(unions, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate unions: %w", err)
	}
	return unions, nil
}
