package domain

const (
	CollectionTrackDetails = "trackdetails"
)
const (
	CollectionSongEmbeddings = "songs_embeddings"
)

const (
	CollectionUserFavArtists = "userfavartists"
)
const (
	CollectionUserFavGenres = "userfavgenres"
)
const (
	CollectionUserSongInteractions = "usersonginteractions"
)
