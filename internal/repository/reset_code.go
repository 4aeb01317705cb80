package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/nontawatz/mini-commerce-api/internal/model"
)

// ResetCodeRepository defines the interface for password reset code operations.
type ResetCodeRepository interface {
	// CreateCode stores a new password reset code.
	CreateCode(ctx context.Context, code *model.PasswordResetCode) (*model.PasswordResetCode, error)

	// ConsumeCode atomically marks the matching unused, unexpired code for the
	// given email as used and returns it. The match and the mark happen in a
	// single conditional update, so at most one concurrent caller can consume
	// a given code.
	ConsumeCode(ctx context.Context, email, code string) (*model.PasswordResetCode, error)

	// InvalidateUserCodes marks all unused codes for a user as used.
	InvalidateUserCodes(ctx context.Context, userID string) error
}

const resetCodeCollection = "password_reset_codes"

type resetCodeMongoRepository struct {
	db *mongo.Database
}

// NewResetCodeMongoRepository creates a new MongoDB repository for password reset codes.
func NewResetCodeMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
) ResetCodeRepository {
	collection := db.Collection(resetCodeCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}, {Key: "code", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0), // TTL index
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create password reset code indexes")
	}

	return &resetCodeMongoRepository{db: db}
}

func (r *resetCodeMongoRepository) CreateCode(
	ctx context.Context,
	code *model.PasswordResetCode,
) (*model.PasswordResetCode, error) {
	now := time.Now()
	code.CreatedAt = now
	code.UpdatedAt = now
	code.Used = false

	result, err := r.db.Collection(resetCodeCollection).InsertOne(ctx, code)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		code.ID = objectID
	}

	return code, nil
}

func (r *resetCodeMongoRepository) ConsumeCode(
	ctx context.Context,
	email, code string,
) (*model.PasswordResetCode, error) {
	filter := bson.M{
		"email":      email,
		"code":       code,
		"used":       false,
		"expires_at": bson.M{"$gt": time.Now()},
	}
	update := bson.M{
		"$set": bson.M{
			"used":       true,
			"updated_at": time.Now(),
		},
	}

	result := r.db.Collection(resetCodeCollection).FindOneAndUpdate(ctx, filter, update)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var resetCode model.PasswordResetCode
	if err := result.Decode(&resetCode); err != nil {
		return nil, err
	}

	return &resetCode, nil
}

func (r *resetCodeMongoRepository) InvalidateUserCodes(ctx context.Context, userID string) error {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return err
	}

	filter := bson.M{
		"user_id": objectID,
		"used":    false,
	}
	update := bson.M{
		"$set": bson.M{
			"used":       true,
			"updated_at": time.Now(),
		},
	}

	_, err = r.db.Collection(resetCodeCollection).UpdateMany(ctx, filter, update)
	return err
}
