package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/open-builders/school-bot/internal/common/errors"
	"github.com/open-builders/school-bot/internal/domain/school"
)

var _ school.Repository = (*SchoolRepository)(nil)

type SchoolRepository struct {
	collection *mongo.Collection
}

func NewSchoolRepository(db *mongo.Database) *SchoolRepository {
	return &SchoolRepository{collection: db.Collection(schoolsCollection)}
}

func directoryID(province, city string) string {
	return province + "/" + city
}

// Add uses $addToSet with $each: existing names are kept in place and new
// ones are appended in the given order.
func (r *SchoolRepository) Add(ctx context.Context, province, city string, names []string) error {
	if len(names) == 0 {
		return nil
	}

	update := bson.M{
		"$addToSet": bson.M{"schoolNames": bson.M{"$each": names}},
		"$set": bson.M{
			"province":  province,
			"city":      city,
			"updatedAt": time.Now().UTC(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": directoryID(province, city)}, update, options.Update().SetUpsert(true))
	if err != nil {
		return apperrors.NewStoreUnavailableError("add schools", err)
	}
	return nil
}

func (r *SchoolRepository) Get(ctx context.Context, province, city string) ([]string, error) {
	var dir school.Directory
	err := r.collection.FindOne(ctx, bson.M{"_id": directoryID(province, city)}).Decode(&dir)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []string{}, nil
	}
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("get schools", err)
	}
	if dir.SchoolNames == nil {
		return []string{}, nil
	}
	return dir.SchoolNames, nil
}
