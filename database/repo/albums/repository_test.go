package albums

import (
	"context"
	"testing"

	"github.com/anoixa/tripill/database/dbtest"
	"github.com/anoixa/tripill/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedAlbumWithTrips(t *testing.T, db *gorm.DB, userID uint, trips int) (*models.Album, []*models.Trip) {
	t.Helper()
	album := &models.Album{UserID: userID, Name: "Summer"}
	require.NoError(t, db.Create(album).Error)

	var created []*models.Trip
	for i := 0; i < trips; i++ {
		trip := &models.Trip{OwnerID: userID, AlbumID: &album.ID, Name: "trip", Image: "https://img.example/cover.jpg"}
		require.NoError(t, db.Create(trip).Error)
		created = append(created, trip)
	}
	return album, created
}

func TestRepository_CreateAndList(t *testing.T) {
	provider := dbtest.Open(t)
	repo := NewRepository(provider)
	ctx := context.Background()

	require.NoError(t, repo.CreateAlbum(ctx, &models.Album{UserID: 1, Name: "first"}))
	require.NoError(t, repo.CreateAlbum(ctx, &models.Album{UserID: 1, Name: "second"}))
	require.NoError(t, repo.CreateAlbum(ctx, &models.Album{UserID: 2, Name: "other"}))

	albums, err := repo.GetUserAlbums(ctx, 1)
	require.NoError(t, err)
	require.Len(t, albums, 2)
	assert.Equal(t, "second", albums[0].Name)
}

func TestRepository_DeleteAlbum_DetachesTrips(t *testing.T) {
	provider := dbtest.Open(t)
	repo := NewRepository(provider)
	ctx := context.Background()

	album, trips := seedAlbumWithTrips(t, provider.DB(), 1, 2)

	err := repo.DeleteAlbum(ctx, album.ID, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.DeleteAlbum(ctx, album.ID, 1))

	var count int64
	require.NoError(t, provider.DB().Model(&models.Trip{}).Where("id IN ?", []uint{trips[0].ID, trips[1].ID}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	var attached int64
	require.NoError(t, provider.DB().Model(&models.Trip{}).Where("album_id IS NOT NULL").Count(&attached).Error)
	assert.Zero(t, attached)

	_, err = repo.GetAlbumByID(ctx, album.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_RemoveTrip(t *testing.T) {
	provider := dbtest.Open(t)
	repo := NewRepository(provider)
	ctx := context.Background()

	album, trips := seedAlbumWithTrips(t, provider.DB(), 1, 2)

	require.NoError(t, repo.RemoveTrip(ctx, album.ID, trips[0].ID))
	assert.ErrorIs(t, repo.RemoveTrip(ctx, album.ID, trips[0].ID), ErrTripNotInAlbum)

	detail, err := repo.GetAlbumWithTrips(ctx, album.ID)
	require.NoError(t, err)
	require.Len(t, detail.Trips, 1)
	assert.Equal(t, trips[1].ID, detail.Trips[0].ID)
}

func TestRepository_RenameAlbum(t *testing.T) {
	provider := dbtest.Open(t)
	repo := NewRepository(provider)
	ctx := context.Background()

	album := &models.Album{UserID: 1, Name: "old"}
	require.NoError(t, repo.CreateAlbum(ctx, album))
	require.NoError(t, repo.RenameAlbum(ctx, album.ID, "new"))

	got, err := repo.GetAlbumByID(ctx, album.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Name)

	assert.ErrorIs(t, repo.RenameAlbum(ctx, 999, "x"), gorm.ErrRecordNotFound)
}
