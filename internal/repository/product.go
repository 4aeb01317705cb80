package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/nontawatz/mini-commerce-api/internal/model"
)

// ProductRepository defines the interface for product-related database operations.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	ListProducts(ctx context.Context, limit, offset int64) ([]*model.Product, error)
	CountProducts(ctx context.Context) (int64, error)
	SearchProducts(ctx context.Context, params SearchProductsParams) ([]*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// SearchProductsParams defines the filters for product search.
type SearchProductsParams struct {
	Query    string
	MinPrice float64
	MaxPrice float64
}

const productCollection = "products"

type productMongoRepository struct {
	db *mongo.Database
}

func NewProductMongoRepository(db *mongo.Database) ProductRepository {
	return &productMongoRepository{db: db}
}

func (r *productMongoRepository) CreateProduct(
	ctx context.Context,
	product *model.Product,
) (*model.Product, error) {
	product.CreatedAt = time.Now()

	result, err := r.db.Collection(productCollection).InsertOne(ctx, product)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		product.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return product, nil
}

func (r *productMongoRepository) ListProducts(
	ctx context.Context,
	limit, offset int64,
) ([]*model.Product, error) {
	findOptions := options.Find().
		SetLimit(limit).
		SetSkip(offset).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(productCollection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeProducts(ctx, cursor)
}

func (r *productMongoRepository) CountProducts(ctx context.Context) (int64, error) {
	return r.db.Collection(productCollection).CountDocuments(ctx, bson.M{})
}

func (r *productMongoRepository) SearchProducts(
	ctx context.Context,
	params SearchProductsParams,
) ([]*model.Product, error) {
	filter := bson.M{
		"title": bson.M{"$regex": params.Query, "$options": "i"},
		"price": bson.M{"$gte": params.MinPrice, "$lte": params.MaxPrice},
	}

	cursor, err := r.db.Collection(productCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeProducts(ctx, cursor)
}

func (r *productMongoRepository) DeleteProduct(ctx context.Context, id string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	result := r.db.Collection(productCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	return result.Err()
}

func decodeProducts(ctx context.Context, cursor *mongo.Cursor) ([]*model.Product, error) {
	var products []*model.Product
	for cursor.Next(ctx) {
		var product model.Product
		if err := cursor.Decode(&product); err != nil {
			return nil, err
		}
		products = append(products, &product)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
