package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/open-builders/school-bot/internal/common/errors"
	"github.com/open-builders/school-bot/internal/domain/user"
)

// Compile-time check to ensure UserRepository implements the interface
var _ user.Repository = (*UserRepository)(nil)

// UserRepository handles MongoDB operations for User
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection(usersCollection)}
}

func (r *UserRepository) Get(ctx context.Context, id int64) (*user.User, error) {
	var u user.User
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, storeError("get user", "user", id, err)
	}
	return &u, nil
}

func (r *UserRepository) Upsert(ctx context.Context, id int64, p user.Patch, merge bool) error {
	filter := bson.M{"_id": id}

	if !merge {
		doc := user.User{ID: id}
		p.Apply(&doc)
		_, err := r.collection.ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true))
		if err != nil {
			return apperrors.NewStoreUnavailableError("replace user", err)
		}
		return nil
	}

	update := bson.M{}
	if fields := p.Fields(); len(fields) > 0 {
		update["$set"] = bson.M(fields)
	} else {
		// $set must not be empty; still create the record on first write
		update["$setOnInsert"] = bson.M{"coins": 0, "profileCompletionAwarded": false}
	}

	if _, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return apperrors.NewStoreUnavailableError("upsert user", err)
	}
	return nil
}

func (r *UserRepository) AddCoins(ctx context.Context, id int64, delta int) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"coins": delta}})
	if err != nil {
		return apperrors.NewStoreUnavailableError("add coins", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NewNotFoundError("user", id)
	}
	return nil
}

// GrantCompletionAward relies on a single conditional update, so concurrent
// or repeated calls grant the bonus at most once.
func (r *UserRepository) GrantCompletionAward(ctx context.Context, id int64, bonus int) (bool, error) {
	unset := bson.A{nil, ""}
	filter := bson.M{
		"_id":                      id,
		"name":                     bson.M{"$nin": unset},
		"age":                      bson.M{"$gt": 0},
		"school":                   bson.M{"$nin": unset},
		"phoneNumber":              bson.M{"$nin": unset},
		"profileCompletionAwarded": bson.M{"$ne": true},
	}
	update := bson.M{
		"$inc": bson.M{"coins": bonus},
		"$set": bson.M{"profileCompletionAwarded": true},
	}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, apperrors.NewStoreUnavailableError("grant completion award", err)
	}
	return res.ModifiedCount == 1, nil
}
