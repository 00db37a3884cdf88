package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/open-builders/school-bot/internal/common/errors"
	"github.com/open-builders/school-bot/internal/domain/channel"
)

var (
	_ channel.ForcedRepository       = (*ForcedChannelRepository)(nil)
	_ channel.AdministeredRepository = (*AdministeredChatRepository)(nil)
)

type ForcedChannelRepository struct {
	collection *mongo.Collection
}

func NewForcedChannelRepository(db *mongo.Database) *ForcedChannelRepository {
	return &ForcedChannelRepository{collection: db.Collection(channelsCollection)}
}

// Add replaces any previous entry for the same channel.
func (r *ForcedChannelRepository) Add(ctx context.Context, ch channel.ForcedChannel) error {
	if ch.CreatedAt.IsZero() {
		ch.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": ch.ChannelID}, ch, options.Replace().SetUpsert(true))
	if err != nil {
		return apperrors.NewStoreUnavailableError("add forced channel", err)
	}
	return nil
}

func (r *ForcedChannelRepository) List(ctx context.Context) ([]channel.ForcedChannel, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("list forced channels", err)
	}
	defer cursor.Close(ctx)

	channels := []channel.ForcedChannel{}
	if err := cursor.All(ctx, &channels); err != nil {
		return nil, apperrors.NewStoreUnavailableError("decode forced channels", err)
	}
	return channels, nil
}

type AdministeredChatRepository struct {
	collection *mongo.Collection
}

func NewAdministeredChatRepository(db *mongo.Database) *AdministeredChatRepository {
	return &AdministeredChatRepository{collection: db.Collection(administeredChatsCollection)}
}

func (r *AdministeredChatRepository) Upsert(ctx context.Context, c channel.AdministeredChat) error {
	c.LastUpdated = time.Now().UTC()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": c.ChatID}, c, options.Replace().SetUpsert(true))
	if err != nil {
		return apperrors.NewStoreUnavailableError("upsert administered chat", err)
	}
	return nil
}

func (r *AdministeredChatRepository) Remove(ctx context.Context, chatID int64) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": chatID}); err != nil {
		return apperrors.NewStoreUnavailableError("remove administered chat", err)
	}
	return nil
}

func (r *AdministeredChatRepository) List(ctx context.Context) ([]channel.AdministeredChat, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("list administered chats", err)
	}
	defer cursor.Close(ctx)

	chats := []channel.AdministeredChat{}
	if err := cursor.All(ctx, &chats); err != nil {
		return nil, apperrors.NewStoreUnavailableError("decode administered chats", err)
	}
	return chats, nil
}
