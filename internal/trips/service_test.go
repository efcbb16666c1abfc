package trips

import (
	"context"
	"testing"
	"time"

	"github.com/anoixa/tripill/database/dbtest"
	"github.com/anoixa/tripill/database/models"
	accountsrepo "github.com/anoixa/tripill/database/repo/accounts"
	albumsrepo "github.com/anoixa/tripill/database/repo/albums"
	"github.com/anoixa/tripill/database/repo/appreciations"
	tripsrepo "github.com/anoixa/tripill/database/repo/trips"
	"github.com/anoixa/tripill/internal/accounts"
	"github.com/anoixa/tripill/internal/apperr"
	"github.com/anoixa/tripill/internal/appreciation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type env struct {
	db     *gorm.DB
	svc    *Service
	ledger *appreciation.Ledger
	owner  *models.User
	other  *models.User
}

func newEnv(t *testing.T) *env {
	t.Helper()
	provider := dbtest.Open(t)
	db := provider.DB()

	owner := &models.User{Email: "owner@example.com", Password: "x", FirstName: "Olga"}
	other := &models.User{Email: "other@example.com", Password: "x", FirstName: "Omar"}
	require.NoError(t, db.Create(owner).Error)
	require.NoError(t, db.Create(other).Error)

	ledger := appreciation.NewLedger(appreciations.NewRepository(provider))
	svc := NewService(
		tripsrepo.NewRepository(provider),
		albumsrepo.NewRepository(provider),
		accounts.NewService(accountsrepo.NewRepository(provider), nil, 0),
		ledger,
	)
	return &env{db: db, svc: svc, ledger: ledger, owner: owner, other: other}
}

func TestCanMutateTrip(t *testing.T) {
	trip := &models.Trip{ID: 1, OwnerID: 5}
	assert.True(t, CanMutateTrip(5, trip))
	assert.False(t, CanMutateTrip(6, trip))
	assert.False(t, CanMutateTrip(0, &models.Trip{}))
	assert.False(t, CanMutateTrip(5, nil))
}

func TestValidateWindow(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	before := start.Add(-time.Hour)

	assert.NoError(t, ValidateWindow(nil, nil))
	assert.NoError(t, ValidateWindow(&start, &start))
	assert.True(t, apperr.Is(ValidateWindow(&start, &before), apperr.KindInvalid))
}

func TestService_CreateUpdateDelete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(4 * 24 * time.Hour)

	view, err := e.svc.Create(ctx, e.owner.ID, TripInput{Name: " Iceland ", StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.Equal(t, "Iceland", view.Name)
	assert.Equal(t, 4, view.Days)
	assert.Equal(t, e.owner.ID, view.OwnerID)
	assert.Empty(t, view.Collaborators)

	_, err = e.svc.Create(ctx, e.owner.ID, TripInput{Name: "bad", StartDate: &end, EndDate: &start})
	assert.True(t, apperr.Is(err, apperr.KindInvalid))

	_, err = e.svc.Update(ctx, e.other.ID, view.ID, TripInput{Name: "stolen"})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	updated, err := e.svc.Update(ctx, e.owner.ID, view.ID, TripInput{Name: "Iceland ring road"})
	require.NoError(t, err)
	assert.Equal(t, "Iceland ring road", updated.Name)
	assert.Zero(t, updated.Days)

	assert.True(t, apperr.Is(e.svc.Delete(ctx, e.other.ID, view.ID), apperr.KindForbidden))
	require.NoError(t, e.svc.Delete(ctx, e.owner.ID, view.ID))
	assert.True(t, apperr.Is(e.svc.Delete(ctx, e.owner.ID, view.ID), apperr.KindNotFound))
}

func TestService_ListAndDetail(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	first, err := e.svc.Create(ctx, e.owner.ID, TripInput{Name: "first"})
	require.NoError(t, err)
	second, err := e.svc.Create(ctx, e.owner.ID, TripInput{Name: "second"})
	require.NoError(t, err)

	_, err = e.ledger.Toggle(ctx, e.other.ID, appreciation.TripTarget(first.ID))
	require.NoError(t, err)
	require.NoError(t, e.svc.AddCollaborator(ctx, e.owner.ID, first.ID, e.other.ID))

	views, err := e.svc.ListByUser(ctx, e.other.ID, e.owner.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, second.ID, views[0].ID)
	assert.Equal(t, first.ID, views[1].ID)
	assert.True(t, views[1].IsLiked)
	assert.Equal(t, int64(1), views[1].NumberOfLikes)
	assert.False(t, views[0].IsLiked)

	detail, err := e.svc.Detail(ctx, e.owner.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Olga", detail.Owner.FirstName)
	require.Len(t, detail.CollaboratorProfiles, 1)
	assert.Equal(t, e.other.ID, detail.CollaboratorProfiles[0].ID)
	assert.False(t, detail.IsLiked)

	_, err = e.svc.Detail(ctx, e.owner.ID, 404)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestService_Collaborators(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	trip, err := e.svc.Create(ctx, e.owner.ID, TripInput{Name: "road trip"})
	require.NoError(t, err)

	assert.True(t, apperr.Is(e.svc.AddCollaborator(ctx, e.owner.ID, trip.ID, e.owner.ID), apperr.KindInvalid))
	assert.True(t, apperr.Is(e.svc.AddCollaborator(ctx, e.other.ID, trip.ID, e.other.ID), apperr.KindInvalid))
	assert.True(t, apperr.Is(e.svc.AddCollaborator(ctx, e.owner.ID, trip.ID, 404), apperr.KindNotFound))

	stranger := &models.User{Email: "s@example.com", Password: "x"}
	require.NoError(t, e.db.Create(stranger).Error)
	assert.True(t, apperr.Is(e.svc.AddCollaborator(ctx, e.other.ID, trip.ID, stranger.ID), apperr.KindForbidden))

	require.NoError(t, e.svc.AddCollaborator(ctx, e.owner.ID, trip.ID, stranger.ID))
	require.NoError(t, e.svc.RemoveCollaborator(ctx, e.owner.ID, trip.ID, stranger.ID))

	detail, err := e.svc.Detail(ctx, e.owner.ID, trip.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Collaborators)
}

func TestService_Albums(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	album, err := e.svc.CreateAlbum(ctx, e.owner.ID, "Europe")
	require.NoError(t, err)

	_, err = e.svc.CreateAlbum(ctx, e.owner.ID, "   ")
	assert.True(t, apperr.Is(err, apperr.KindInvalid))

	trip, err := e.svc.Create(ctx, e.owner.ID, TripInput{Name: "Vienna", Image: "https://img.example/vienna.jpg"})
	require.NoError(t, err)

	foreign, err := e.svc.CreateAlbum(ctx, e.other.ID, "mine")
	require.NoError(t, err)
	_, err = e.svc.SetAlbum(ctx, e.owner.ID, trip.ID, &foreign.ID)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	view, err := e.svc.SetAlbum(ctx, e.owner.ID, trip.ID, &album.ID)
	require.NoError(t, err)
	require.NotNil(t, view.AlbumID)
	assert.Equal(t, album.ID, *view.AlbumID)

	albums, err := e.svc.ListAlbums(ctx, e.owner.ID)
	require.NoError(t, err)
	require.Len(t, albums, 1)
	assert.Equal(t, []string{"https://img.example/vienna.jpg"}, albums[0].Images)

	detail, err := e.svc.AlbumDetail(ctx, e.owner.ID, album.ID)
	require.NoError(t, err)
	require.Len(t, detail.Trips, 1)

	_, err = e.svc.RenameAlbum(ctx, e.other.ID, album.ID, "hijack")
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
	renamed, err := e.svc.RenameAlbum(ctx, e.owner.ID, album.ID, "Central Europe")
	require.NoError(t, err)
	assert.Equal(t, "Central Europe", renamed.Name)

	assert.True(t, apperr.Is(e.svc.DeleteAlbum(ctx, e.other.ID, album.ID), apperr.KindNotFound))
	require.NoError(t, e.svc.DeleteAlbum(ctx, e.owner.ID, album.ID))

	got, err := e.svc.GetTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AlbumID)
}

func TestService_RemoveTripFromAlbum(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	album, err := e.svc.CreateAlbum(ctx, e.owner.ID, "Asia")
	require.NoError(t, err)
	trip, err := e.svc.Create(ctx, e.owner.ID, TripInput{Name: "Seoul"})
	require.NoError(t, err)
	_, err = e.svc.SetAlbum(ctx, e.owner.ID, trip.ID, &album.ID)
	require.NoError(t, err)

	assert.True(t, apperr.Is(e.svc.RemoveTripFromAlbum(ctx, e.other.ID, album.ID, trip.ID), apperr.KindForbidden))
	require.NoError(t, e.svc.RemoveTripFromAlbum(ctx, e.owner.ID, album.ID, trip.ID))
	assert.True(t, apperr.Is(e.svc.RemoveTripFromAlbum(ctx, e.owner.ID, album.ID, trip.ID), apperr.KindNotFound))
}
