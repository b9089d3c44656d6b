package repository_recsys

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"

	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_interface"
	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_models"
	"github.com/echofinder/recommendation-engine/mongo"
)

// embeddingRepository 曲目Embedding向量仓库
type embeddingRepository struct {
	db         mongo.Database
	collection string
}

func NewEmbeddingRepository(db mongo.Database, collection string) recsys_interface.EmbeddingRepository {
	return &embeddingRepository{
		db:         db,
		collection: collection,
	}
}

func (r *embeddingRepository) GetAll(ctx context.Context) ([]*recsys_models.SongEmbedding, error) {
	return r.findEmbeddings(ctx, bson.M{})
}

func (r *embeddingRepository) GetBySongIDs(ctx context.Context, songIDs []string) ([]*recsys_models.SongEmbedding, error) {
	if len(songIDs) == 0 {
		return nil, nil
	}
	return r.findEmbeddings(ctx, bson.M{"song_id": bson.M{"$in": songIDs}})
}

func (r *embeddingRepository) findEmbeddings(ctx context.Context, filter bson.M) ([]*recsys_models.SongEmbedding, error) {
	collection := r.db.Collection(r.collection)

	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query embeddings: %w", err)
	}
	defer cursor.Close(ctx)

	var embeddings []*recsys_models.SongEmbedding
	if err = cursor.All(ctx, &embeddings); err != nil {
		return nil, fmt.Errorf("failed to decode embeddings: %w", err)
	}
	return embeddings, nil
}

// BulkUpsert 以song_id为键整条覆盖，重复重建同一首曲目是幂等的
func (r *embeddingRepository) BulkUpsert(ctx context.Context, embeddings []*recsys_models.SongEmbedding) (int, error) {
	if len(embeddings) == 0 {
		return 0, nil
	}
	collection := r.db.Collection(r.collection)

	bulk := collection.BulkWrite()
	now := time.Now().UTC().Format(time.RFC3339)
	for _, embedding := range embeddings {
		embedding.UpdatedAt = now
		model := driver.NewUpdateOneModel().
			SetFilter(bson.M{"song_id": embedding.SongID}).
			SetUpdate(bson.M{"$set": bson.M{
				"song_id":    embedding.SongID,
				"spotify_id": embedding.SpotifyID,
				"lastfm_id":  embedding.LastfmID,
				"embeddings": embedding.Embeddings,
				"updatedAt":  embedding.UpdatedAt,
			}}).
			SetUpsert(true)
		bulk.AddModel(model)
	}

	result, err := bulk.Execute(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk upsert embeddings: %w", err)
	}
	return int(result.ModifiedCount() + result.UpsertedCount()), nil
}
