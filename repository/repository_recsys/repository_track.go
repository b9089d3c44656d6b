package repository_recsys

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	driver "go.mongodb.org/mongo-driver/mongo"

	"github.com/echofinder/recommendation-engine/domain"
	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_interface"
	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_models"
	"github.com/echofinder/recommendation-engine/mongo"
)

// trackRepository 曲目元数据仓库
type trackRepository struct {
	db         mongo.Database
	collection string
}

func NewTrackRepository(db mongo.Database, collection string) recsys_interface.TrackRepository {
	return &trackRepository{
		db:         db,
		collection: collection,
	}
}

func (r *trackRepository) GetBySongID(ctx context.Context, songID string) (*recsys_models.Track, error) {
	collection := r.db.Collection(r.collection)

	var track recsys_models.Track
	err := collection.FindOne(ctx, bson.M{"song_id": songID}).Decode(&track)
	if err != nil {
		if err == driver.ErrNoDocuments {
			return nil, domain.ErrDataUnavailable
		}
		return nil, fmt.Errorf("failed to find track %s: %w", songID, err)
	}
	return &track, nil
}

func (r *trackRepository) GetBySongIDs(ctx context.Context, songIDs []string) ([]*recsys_models.Track, error) {
	if len(songIDs) == 0 {
		return nil, nil
	}
	return r.findTracks(ctx, bson.M{"song_id": bson.M{"$in": songIDs}})
}

func (r *trackRepository) GetByArtistNames(ctx context.Context, names []string) ([]*recsys_models.Track, error) {
	if len(names) == 0 {
		return nil, nil
	}
	return r.findTracks(ctx, bson.M{"artists.name": bson.M{"$in": names}})
}

// GetByGenreTags all_tags是逗号分隔的标签串，逐个风格做子串正则匹配后合并去重
func (r *trackRepository) GetByGenreTags(ctx context.Context, tags []string) ([]*recsys_models.Track, error) {
	seen := make(map[string]struct{})
	var result []*recsys_models.Track

	for _, tag := range tags {
		if tag == "" {
			continue
		}
		tracks, err := r.findTracks(ctx, bson.M{
			"all_tags": bson.M{"$regex": primitive.Regex{Pattern: tag}},
		})
		if err != nil {
			return nil, err
		}
		for _, track := range tracks {
			if _, ok := seen[track.SongID]; ok {
				continue
			}
			seen[track.SongID] = struct{}{}
			result = append(result, track)
		}
	}
	return result, nil
}

func (r *trackRepository) GetPendingEmbeddings(ctx context.Context) ([]*recsys_models.Track, error) {
	return r.findTracks(ctx, bson.M{"embeddingsStatus": recsys_models.EmbeddingsStatusPending})
}

func (r *trackRepository) GetAll(ctx context.Context) ([]*recsys_models.Track, error) {
	return r.findTracks(ctx, bson.M{})
}

func (r *trackRepository) findTracks(ctx context.Context, filter bson.M) ([]*recsys_models.Track, error) {
	collection := r.db.Collection(r.collection)

	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer cursor.Close(ctx)

	var tracks []*recsys_models.Track
	if err = cursor.All(ctx, &tracks); err != nil {
		return nil, fmt.Errorf("failed to decode tracks: %w", err)
	}
	return tracks, nil
}

// BulkUpsert 以song_id为键批量覆盖写入
func (r *trackRepository) BulkUpsert(ctx context.Context, tracks []*recsys_models.Track) (int, error) {
	if len(tracks) == 0 {
		return 0, nil
	}
	collection := r.db.Collection(r.collection)

	bulk := collection.BulkWrite()
	now := time.Now().UTC().Format(time.RFC3339)
	for _, track := range tracks {
		track.UpdatedAt = now
		model := driver.NewUpdateOneModel().
			SetFilter(bson.M{"song_id": track.SongID}).
			SetUpdate(bson.M{"$set": track}).
			SetUpsert(true)
		bulk.AddModel(model)
	}

	result, err := bulk.Execute(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk upsert tracks: %w", err)
	}
	return int(result.ModifiedCount() + result.UpsertedCount()), nil
}

// MarkEmbedded 回写推算出的热度并将状态置为done
func (r *trackRepository) MarkEmbedded(ctx context.Context, tracks []*recsys_models.Track) error {
	if len(tracks) == 0 {
		return nil
	}
	collection := r.db.Collection(r.collection)

	bulk := collection.BulkWrite()
	for _, track := range tracks {
		update := bson.M{
			"embeddingsStatus": recsys_models.EmbeddingsStatusDone,
		}
		if track.PopularityScore != nil {
			update["popularity_score"] = *track.PopularityScore
		}
		model := driver.NewUpdateOneModel().
			SetFilter(bson.M{"song_id": track.SongID}).
			SetUpdate(bson.M{"$set": update})
		bulk.AddModel(model)
	}

	if _, err := bulk.Execute(ctx); err != nil {
		return fmt.Errorf("failed to mark tracks embedded: %w", err)
	}
	return nil
}

// FieldRanges 一次聚合取回所有数值字段的全库min/max
func (r *trackRepository) FieldRanges(ctx context.Context, fields []string) (map[string]recsys_models.FeatureRange, error) {
	collection := r.db.Collection(r.collection)

	group := bson.M{"_id": nil}
	for _, field := range fields {
		group["min_"+field] = bson.M{"$min": "$" + field}
		group["max_"+field] = bson.M{"$max": "$" + field}
	}

	cursor, err := collection.Aggregate(ctx, []bson.M{{"$group": group}})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate field ranges: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []bson.M
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode field ranges: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrDataUnavailable
	}

	ranges := make(map[string]recsys_models.FeatureRange, len(fields))
	for _, field := range fields {
		ranges[field] = recsys_models.FeatureRange{
			Min: toFloat(rows[0]["min_"+field]),
			Max: toFloat(rows[0]["max_"+field]),
		}
	}
	return ranges, nil
}

func toFloat(v interface{}) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case float32:
		return float64(value)
	case int32:
		return float64(value)
	case int64:
		return float64(value)
	case int:
		return float64(value)
	}
	return 0
}
