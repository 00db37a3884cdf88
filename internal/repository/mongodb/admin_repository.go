package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/open-builders/school-bot/internal/common/errors"
	"github.com/open-builders/school-bot/internal/domain/admin"
)

const adminDocumentID = "admin"

var _ admin.Repository = (*AdminRepository)(nil)

// AdminRepository keeps the singleton config/admin document.
type AdminRepository struct {
	collection *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{collection: db.Collection(configCollection)}
}

func (r *AdminRepository) Get(ctx context.Context) (*admin.Config, error) {
	var cfg admin.Config
	err := r.collection.FindOne(ctx, bson.M{"_id": adminDocumentID}).Decode(&cfg)
	if err != nil {
		return nil, storeError("get admin config", "admin config", adminDocumentID, err)
	}
	if cfg.AdminID == 0 {
		return nil, apperrors.NewNotFoundError("admin config", adminDocumentID)
	}
	return &cfg, nil
}

func (r *AdminRepository) SetAdminID(ctx context.Context, id int64) error {
	update := bson.M{"$set": bson.M{"adminId": id, "updatedAt": time.Now().UTC()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": adminDocumentID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return apperrors.NewStoreUnavailableError("set admin id", err)
	}
	return nil
}
