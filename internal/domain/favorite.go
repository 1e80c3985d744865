package domain

import "time"

// Favorite - a favorites ledger entry.
// Remote entries carry FavoriteID and PlaceID; local entries carry LocalID.
type Favorite struct {
	FavoriteID   string    `json:"favoriteId,omitempty"`
	UserID       string    `json:"userId,omitempty"`
	PlaceID      string    `json:"placeId,omitempty"`
	LocalID      int       `json:"localId,omitempty"`
	UserCategory *string   `json:"userCategory,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RemoteFavorite - GET /api/Favorites/user/{userId} item
type RemoteFavorite struct {
	FavoriteID   string    `json:"favoriteId"`
	UserID       string    `json:"userId"`
	PlaceID      string    `json:"placeId"`
	UserCategory *string   `json:"userCategory,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Favorite converts the backend record to a ledger entry.
func (r RemoteFavorite) Favorite() Favorite {
	return Favorite{
		FavoriteID:   r.FavoriteID,
		UserID:       r.UserID,
		PlaceID:      r.PlaceID,
		UserCategory: r.UserCategory,
		CreatedAt:    r.CreatedAt,
	}
}

// RemoteFavoriteCreate - POST /api/Favorites body
type RemoteFavoriteCreate struct {
	UserID       string  `json:"userId"`
	PlaceID      string  `json:"placeId"`
	UserCategory *string `json:"userCategory,omitempty"`
}

// LocalFavorite - element of the persisted local favorites array
type LocalFavorite struct {
	PlaceID      int       `json:"placeId"`
	UserCategory *string   `json:"userCategory,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Favorite converts the local record to a ledger entry.
func (l LocalFavorite) Favorite() Favorite {
	return Favorite{
		LocalID:      l.PlaceID,
		UserCategory: l.UserCategory,
		CreatedAt:    l.CreatedAt,
	}
}

// FavoriteOp - kind of ledger mutation
type FavoriteOp string

const (
	FavoriteAdded           FavoriteOp = "added"
	FavoriteRemoved         FavoriteOp = "removed"
	FavoriteCategoryUpdated FavoriteOp = "category_updated"
)

// FavoritesUpdated - broadcast after every local or remote ledger mutation
type FavoritesUpdated struct {
	Namespace string     `json:"namespace"`
	Mode      string     `json:"mode"`
	Op        FavoriteOp `json:"op"`
	Key       string     `json:"key"`
	At        time.Time  `json:"at"`
}

// FavoriteView - a ledger entry joined with its catalog attraction
type FavoriteView struct {
	Favorite   Favorite    `json:"favorite"`
	Attraction *Attraction `json:"attraction,omitempty"`
}
