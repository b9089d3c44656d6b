package recsys_interface

import "context"

// UserSignalsRepository 用户偏好三信号的读取入口
// 任一信号为空时返回空切片而非错误
type UserSignalsRepository interface {
	FavoriteGenres(ctx context.Context, userID string) ([]string, error)
	FavoriteArtists(ctx context.Context, userID string) ([]string, error)
	LikedSongs(ctx context.Context, userID string) ([]string, error)
}
