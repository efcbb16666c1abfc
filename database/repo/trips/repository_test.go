package trips

import (
	"context"
	"errors"
	"testing"

	"github.com/anoixa/tripill/database/dbtest"
	"github.com/anoixa/tripill/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func allow(*models.Trip) error { return nil }

func TestRepository_DeleteTrip_Cascades(t *testing.T) {
	provider := dbtest.Open(t)
	repo := NewRepository(provider)
	db := provider.DB()
	ctx := context.Background()

	trip := &models.Trip{OwnerID: 1, Name: "Kyoto"}
	require.NoError(t, repo.CreateTrip(ctx, trip))
	other := &models.Trip{OwnerID: 1, Name: "Osaka"}
	require.NoError(t, repo.CreateTrip(ctx, other))

	item := &models.Item{TripID: trip.ID, Lat: 35.0, Lng: 135.7}
	require.NoError(t, db.Create(item).Error)
	keep := &models.Item{TripID: other.ID, Lat: 34.6, Lng: 135.5}
	require.NoError(t, db.Create(keep).Error)

	require.NoError(t, db.Create(&models.Appreciation{UserID: 2, TargetKind: models.TargetItem, TargetID: item.ID}).Error)
	require.NoError(t, db.Create(&models.Appreciation{UserID: 2, TargetKind: models.TargetTrip, TargetID: trip.ID}).Error)
	require.NoError(t, db.Create(&models.Appreciation{UserID: 2, TargetKind: models.TargetItem, TargetID: keep.ID}).Error)
	require.NoError(t, repo.AddCollaborator(ctx, trip.ID, 3, allow))

	require.NoError(t, repo.DeleteTrip(ctx, trip.ID, allow))

	_, err := repo.GetTripByID(ctx, trip.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var items, likes, collaborators int64
	require.NoError(t, db.Model(&models.Item{}).Count(&items).Error)
	require.NoError(t, db.Model(&models.Appreciation{}).Count(&likes).Error)
	require.NoError(t, db.Model(&models.TripCollaborator{}).Count(&collaborators).Error)
	assert.Equal(t, int64(1), items)
	assert.Equal(t, int64(1), likes)
	assert.Zero(t, collaborators)
}

func TestRepository_GuardRollsBack(t *testing.T) {
	provider := dbtest.Open(t)
	repo := NewRepository(provider)
	ctx := context.Background()

	trip := &models.Trip{OwnerID: 1, Name: "Lisbon"}
	require.NoError(t, repo.CreateTrip(ctx, trip))

	denied := errors.New("denied")
	deny := func(*models.Trip) error { return denied }

	assert.ErrorIs(t, repo.DeleteTrip(ctx, trip.ID, deny), denied)
	_, err := repo.UpdateTrip(ctx, trip.ID, deny, func(tr *models.Trip) error {
		tr.Name = "changed"
		return nil
	})
	assert.ErrorIs(t, err, denied)

	got, err := repo.GetTripByID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", got.Name)
}

func TestRepository_UpdateTrip_KeepsOwner(t *testing.T) {
	provider := dbtest.Open(t)
	repo := NewRepository(provider)
	ctx := context.Background()

	trip := &models.Trip{OwnerID: 1, Name: "Porto"}
	require.NoError(t, repo.CreateTrip(ctx, trip))

	updated, err := repo.UpdateTrip(ctx, trip.ID, allow, func(tr *models.Trip) error {
		tr.Name = "Porto 2"
		tr.OwnerID = 9
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Porto 2", updated.Name)

	got, err := repo.GetTripByID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(1), got.OwnerID)
}

func TestRepository_CollaboratorsAndAlbum(t *testing.T) {
	provider := dbtest.Open(t)
	repo := NewRepository(provider)
	ctx := context.Background()

	trip := &models.Trip{OwnerID: 1, Name: "Rome"}
	require.NoError(t, repo.CreateTrip(ctx, trip))

	require.NoError(t, repo.AddCollaborator(ctx, trip.ID, 5, allow))
	require.NoError(t, repo.AddCollaborator(ctx, trip.ID, 4, allow))
	require.NoError(t, repo.AddCollaborator(ctx, trip.ID, 4, allow))

	ids, err := repo.CollaboratorIDs(ctx, []uint{trip.ID})
	require.NoError(t, err)
	assert.Equal(t, []uint{4, 5}, ids[trip.ID])

	require.NoError(t, repo.RemoveCollaborator(ctx, trip.ID, 5, allow))
	ids, err = repo.CollaboratorIDs(ctx, []uint{trip.ID})
	require.NoError(t, err)
	assert.Equal(t, []uint{4}, ids[trip.ID])

	albumID := uint(7)
	updated, err := repo.SetAlbum(ctx, trip.ID, &albumID, allow)
	require.NoError(t, err)
	require.NotNil(t, updated.AlbumID)

	updated, err = repo.SetAlbum(ctx, trip.ID, nil, allow)
	require.NoError(t, err)
	assert.Nil(t, updated.AlbumID)

	got, err := repo.GetTripByID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AlbumID)
}
