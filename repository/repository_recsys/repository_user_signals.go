package repository_recsys

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_interface"
	"github.com/echofinder/recommendation-engine/mongo"
)

// userSignalsRepository 用户三类偏好信号的读取
// 三个集合结构各不相同，统一归一成字符串切片后交给上层聚合
type userSignalsRepository struct {
	db                 mongo.Database
	genreCollection    string
	artistCollection   string
	interactCollection string
}

func NewUserSignalsRepository(db mongo.Database, genreCollection, artistCollection, interactCollection string) recsys_interface.UserSignalsRepository {
	return &userSignalsRepository{
		db:                 db,
		genreCollection:    genreCollection,
		artistCollection:   artistCollection,
		interactCollection: interactCollection,
	}
}

// FavoriteGenres 风格偏好整体存成单条逗号分隔串，取首条记录拆分
func (r *userSignalsRepository) FavoriteGenres(ctx context.Context, userID string) ([]string, error) {
	collection := r.db.Collection(r.genreCollection)

	cursor, err := collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to query favorite genres: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		FavGenres []string `bson:"fav_genres"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode favorite genres: %w", err)
	}
	if len(docs) == 0 || len(docs[0].FavGenres) == 0 {
		return nil, nil
	}

	var genres []string
	for _, genre := range strings.Split(docs[0].FavGenres[0], ",") {
		genre = strings.TrimSpace(genre)
		if genre != "" {
			genres = append(genres, genre)
		}
	}
	return genres, nil
}

// FavoriteArtists 每条记录存一位演出者名
func (r *userSignalsRepository) FavoriteArtists(ctx context.Context, userID string) ([]string, error) {
	collection := r.db.Collection(r.artistCollection)

	cursor, err := collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to query favorite artists: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		FavArtist string `bson:"fav_artist"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode favorite artists: %w", err)
	}

	var artists []string
	for _, doc := range docs {
		if doc.FavArtist != "" {
			artists = append(artists, doc.FavArtist)
		}
	}
	return artists, nil
}

// LikedSongs 交互表中该用户有正向交互的曲目ID
func (r *userSignalsRepository) LikedSongs(ctx context.Context, userID string) ([]string, error) {
	collection := r.db.Collection(r.interactCollection)

	cursor, err := collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to query liked songs: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		SongID string `bson:"song_id"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode liked songs: %w", err)
	}

	var songIDs []string
	for _, doc := range docs {
		if doc.SongID != "" {
			songIDs = append(songIDs, doc.SongID)
		}
	}
	return songIDs, nil
}
