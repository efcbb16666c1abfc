package items

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"testing"

	"github.com/anoixa/tripill/database/dbtest"
	"github.com/anoixa/tripill/database/models"
	accountsrepo "github.com/anoixa/tripill/database/repo/accounts"
	albumsrepo "github.com/anoixa/tripill/database/repo/albums"
	"github.com/anoixa/tripill/database/repo/appreciations"
	itemsrepo "github.com/anoixa/tripill/database/repo/items"
	tripsrepo "github.com/anoixa/tripill/database/repo/trips"
	"github.com/anoixa/tripill/internal/accounts"
	"github.com/anoixa/tripill/internal/apperr"
	"github.com/anoixa/tripill/internal/appreciation"
	"github.com/anoixa/tripill/internal/trips"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type env struct {
	db     *gorm.DB
	svc    *Service
	ledger *appreciation.Ledger
	users  []*models.User
}

func newEnv(t *testing.T, users int) *env {
	t.Helper()
	provider := dbtest.Open(t)
	db := provider.DB()

	e := &env{db: db}
	for i := 0; i < users; i++ {
		u := &models.User{Email: fmt.Sprintf("user%d@example.com", i), Password: "x", FirstName: fmt.Sprintf("U%d", i)}
		require.NoError(t, db.Create(u).Error)
		e.users = append(e.users, u)
	}

	accountsService := accounts.NewService(accountsrepo.NewRepository(provider), nil, 0)
	e.ledger = appreciation.NewLedger(appreciations.NewRepository(provider))
	tripsService := trips.NewService(tripsrepo.NewRepository(provider), albumsrepo.NewRepository(provider), accountsService, e.ledger)
	e.svc = NewService(itemsrepo.NewRepository(provider), tripsService, accountsService, e.ledger)
	return e
}

func (e *env) newTrip(t *testing.T, owner *models.User) *models.Trip {
	t.Helper()
	trip := &models.Trip{OwnerID: owner.ID, Name: "trip"}
	require.NoError(t, e.db.Create(trip).Error)
	return trip
}

func (e *env) add(t *testing.T, owner *models.User, trip *models.Trip, lat, lng float64) *ItemView {
	t.Helper()
	view, err := e.svc.Append(context.Background(), owner.ID, trip.ID, Details{Lat: lat, Lng: lng})
	require.NoError(t, err)
	return view
}

func (e *env) ordinals(t *testing.T, trip *models.Trip) map[uint]int {
	t.Helper()
	views, err := e.svc.List(context.Background(), 0, trip.ID)
	require.NoError(t, err)
	result := make(map[uint]int, len(views))
	for _, v := range views {
		result[v.ID] = v.Ordinal
	}
	return result
}

func assertContiguous(t *testing.T, ordinals map[uint]int) {
	t.Helper()
	got := make([]int, 0, len(ordinals))
	for _, o := range ordinals {
		got = append(got, o)
	}
	sort.Ints(got)
	for i, o := range got {
		require.Equal(t, i, o, "ordinals not contiguous: %v", got)
	}
}

// A(0) B(1) C(2)
func (e *env) abc(t *testing.T) (*models.User, *models.Trip, *ItemView, *ItemView, *ItemView) {
	owner := e.users[0]
	trip := e.newTrip(t, owner)
	a := e.add(t, owner, trip, 10, 10)
	b := e.add(t, owner, trip, 20, 20)
	c := e.add(t, owner, trip, 30, 30)
	return owner, trip, a, b, c
}

func TestAppend_AssignsCountAsOrdinal(t *testing.T) {
	e := newEnv(t, 1)
	_, trip, a, b, c := e.abc(t)

	assert.Equal(t, 0, a.Ordinal)
	assert.Equal(t, 1, b.Ordinal)
	assert.Equal(t, 2, c.Ordinal)
	assert.Equal(t, trip.ID, c.TripID)
}

func TestAppend_Errors(t *testing.T) {
	e := newEnv(t, 2)
	ctx := context.Background()
	owner, stranger := e.users[0], e.users[1]
	trip := e.newTrip(t, owner)
	e.add(t, owner, trip, 1.25, 2.5)

	tests := []struct {
		name   string
		userID uint
		tripID uint
		in     Details
		kind   apperr.Kind
	}{
		{name: "missing trip", userID: owner.ID, tripID: 999, in: Details{Lat: 1, Lng: 1}, kind: apperr.KindNotFound},
		{name: "not owner", userID: stranger.ID, tripID: trip.ID, in: Details{Lat: 3, Lng: 3}, kind: apperr.KindForbidden},
		{name: "duplicate coordinate", userID: owner.ID, tripID: trip.ID, in: Details{Lat: 1.25, Lng: 2.5}, kind: apperr.KindConflict},
		{name: "latitude out of range", userID: owner.ID, tripID: trip.ID, in: Details{Lat: 91, Lng: 0}, kind: apperr.KindInvalid},
		{name: "longitude out of range", userID: owner.ID, tripID: trip.ID, in: Details{Lat: 0, Lng: -181}, kind: apperr.KindInvalid},
		{name: "nan", userID: owner.ID, tripID: trip.ID, in: Details{Lat: math.NaN(), Lng: 0}, kind: apperr.KindInvalid},
		{name: "bad note", userID: owner.ID, tripID: trip.ID, in: Details{Lat: 5, Lng: 5, Note: json.RawMessage(`{"x":`)}, kind: apperr.KindInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.svc.Append(ctx, tt.userID, tt.tripID, tt.in)
			assert.Equal(t, tt.kind, apperr.KindOf(err), "err: %v", err)
		})
	}

	assertContiguous(t, e.ordinals(t, trip))
	assert.Len(t, e.ordinals(t, trip), 1)
}

func TestReorder_MoveToFront(t *testing.T) {
	e := newEnv(t, 1)
	owner, trip, a, b, c := e.abc(t)

	moved, err := e.svc.Reorder(context.Background(), owner.ID, c.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, moved.Ordinal)
	assert.Equal(t, map[uint]int{a.ID: 1, b.ID: 2, c.ID: 0}, e.ordinals(t, trip))
}

func TestReorder_SameOrdinalIsNoop(t *testing.T) {
	e := newEnv(t, 1)
	owner, trip, _, b, _ := e.abc(t)
	before := e.ordinals(t, trip)

	_, err := e.svc.Reorder(context.Background(), owner.ID, b.ID, b.Ordinal)
	require.NoError(t, err)
	assert.Equal(t, before, e.ordinals(t, trip))
}

func TestReorder_MoveAndMoveBack(t *testing.T) {
	e := newEnv(t, 1)
	ctx := context.Background()
	owner := e.users[0]
	trip := e.newTrip(t, owner)

	var ids []uint
	for i := 0; i < 6; i++ {
		ids = append(ids, e.add(t, owner, trip, float64(i), float64(i)).ID)
	}
	original := e.ordinals(t, trip)

	for _, target := range []int{0, 5, 2} {
		_, err := e.svc.Reorder(ctx, owner.ID, ids[3], target)
		require.NoError(t, err)
		assertContiguous(t, e.ordinals(t, trip))

		_, err = e.svc.Reorder(ctx, owner.ID, ids[3], original[ids[3]])
		require.NoError(t, err)
		assert.Equal(t, original, e.ordinals(t, trip))
	}
}

func TestReorder_Errors(t *testing.T) {
	e := newEnv(t, 2)
	ctx := context.Background()
	owner, trip, a, _, _ := e.abc(t)
	before := e.ordinals(t, trip)

	_, err := e.svc.Reorder(ctx, owner.ID, a.ID, 3)
	assert.True(t, apperr.Is(err, apperr.KindInvalid))

	_, err = e.svc.Reorder(ctx, owner.ID, a.ID, -1)
	assert.True(t, apperr.Is(err, apperr.KindInvalid))

	_, err = e.svc.Reorder(ctx, e.users[1].ID, a.ID, 2)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	_, err = e.svc.Reorder(ctx, owner.ID, 999, 0)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	assert.Equal(t, before, e.ordinals(t, trip))
}

func TestDelete_Compacts(t *testing.T) {
	e := newEnv(t, 1)
	owner, trip, a, b, c := e.abc(t)

	require.NoError(t, e.svc.Delete(context.Background(), owner.ID, trip.ID, b.ID))
	assert.Equal(t, map[uint]int{a.ID: 0, c.ID: 1}, e.ordinals(t, trip))
}

func TestDelete_Errors(t *testing.T) {
	e := newEnv(t, 2)
	ctx := context.Background()
	owner, trip, a, _, _ := e.abc(t)
	otherTrip := e.newTrip(t, owner)
	foreign := e.add(t, owner, otherTrip, 1, 1)

	assert.True(t, apperr.Is(e.svc.Delete(ctx, e.users[1].ID, trip.ID, a.ID), apperr.KindForbidden))
	assert.True(t, apperr.Is(e.svc.Delete(ctx, owner.ID, trip.ID, foreign.ID), apperr.KindNotFound))
	assert.True(t, apperr.Is(e.svc.Delete(ctx, owner.ID, 999, a.ID), apperr.KindNotFound))
	assert.Len(t, e.ordinals(t, trip), 3)
}

func TestOrdinals_StayContiguousUnderRandomOperations(t *testing.T) {
	e := newEnv(t, 1)
	ctx := context.Background()
	owner := e.users[0]
	trip := e.newTrip(t, owner)
	rng := rand.New(rand.NewSource(42))

	next := 0
	for step := 0; step < 120; step++ {
		current := e.ordinals(t, trip)
		ids := make([]uint, 0, len(current))
		for id := range current {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		switch op := rng.Intn(3); {
		case op == 0 || len(ids) == 0:
			next++
			e.add(t, owner, trip, float64(next%90), float64(next/90))
		case op == 1:
			require.NoError(t, e.svc.Delete(ctx, owner.ID, trip.ID, ids[rng.Intn(len(ids))]))
		default:
			_, err := e.svc.Reorder(ctx, owner.ID, ids[rng.Intn(len(ids))], rng.Intn(len(ids)))
			require.NoError(t, err)
		}
		assertContiguous(t, e.ordinals(t, trip))
	}
}

func TestAppend_ConcurrentKeepsContiguity(t *testing.T) {
	e := newEnv(t, 1)
	owner := e.users[0]
	trip := e.newTrip(t, owner)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := e.svc.Append(context.Background(), owner.ID, trip.ID, Details{Lat: float64(i), Lng: 1})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	ordinals := e.ordinals(t, trip)
	assert.Len(t, ordinals, 20)
	assertContiguous(t, ordinals)
}

func TestUpdate(t *testing.T) {
	e := newEnv(t, 2)
	ctx := context.Background()
	owner, trip, a, b, _ := e.abc(t)

	_, err := e.svc.Update(ctx, owner.ID, b.ID, Details{Lat: a.Lat, Lng: a.Lng})
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	_, err = e.svc.Update(ctx, e.users[1].ID, b.ID, Details{Lat: 1, Lng: 1})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	updated, err := e.svc.Update(ctx, owner.ID, b.ID, Details{
		Lat:      b.Lat,
		Lng:      b.Lng,
		Location: "Harbour",
		Note:     json.RawMessage(`{"tips":["go early"]}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "Harbour", updated.Location)
	assert.JSONEq(t, `{"tips":["go early"]}`, string(updated.Note))
	assert.Equal(t, 1, updated.Ordinal)
	assertContiguous(t, e.ordinals(t, trip))
}

func TestMarkShared_Uniqueness(t *testing.T) {
	e := newEnv(t, 2)
	ctx := context.Background()
	owner := e.users[0]
	first := e.newTrip(t, owner)
	second := e.newTrip(t, owner)

	a := e.add(t, owner, first, 41.9, 12.5)
	b := e.add(t, owner, second, 41.9, 12.5)
	c := e.add(t, owner, second, 45.4, 12.3)

	shared, err := e.svc.MarkShared(ctx, owner.ID, a.ID, true)
	require.NoError(t, err)
	assert.True(t, shared.IsShared)

	_, err = e.svc.MarkShared(ctx, owner.ID, a.ID, true)
	assert.NoError(t, err)

	_, err = e.svc.MarkShared(ctx, owner.ID, b.ID, true)
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	_, err = e.svc.MarkShared(ctx, owner.ID, c.ID, true)
	assert.NoError(t, err)

	_, err = e.svc.MarkShared(ctx, e.users[1].ID, c.ID, false)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	_, err = e.svc.MarkShared(ctx, owner.ID, 999, true)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = e.svc.Update(ctx, owner.ID, c.ID, Details{Lat: 41.9, Lng: 12.5})
	assert.True(t, apperr.Is(err, apperr.KindConflict))
}

func TestMarkShared_ConcurrentOnlyOneWins(t *testing.T) {
	e := newEnv(t, 1)
	owner := e.users[0]

	var ids []uint
	for i := 0; i < 5; i++ {
		trip := e.newTrip(t, owner)
		ids = append(ids, e.add(t, owner, trip, 35.68, 139.69).ID)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for _, id := range ids {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			if _, err := e.svc.MarkShared(context.Background(), owner.ID, id, true); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestFindSharers(t *testing.T) {
	e := newEnv(t, 4)
	ctx := context.Background()
	spot := Coordinate{Lat: -33.8568, Lng: 151.2153}

	var items []*ItemView
	for _, u := range e.users {
		trip := e.newTrip(t, u)
		item := e.add(t, u, trip, spot.Lat, spot.Lng)
		items = append(items, item)
	}
	// users[3] 在该坐标有地点但未分享
	for i, u := range e.users[:3] {
		_, err := e.svc.MarkShared(ctx, u.ID, items[i].ID, true)
		require.NoError(t, err)
	}

	_, err := e.ledger.Toggle(ctx, e.users[0].ID, appreciation.ItemTarget(items[2].ID))
	require.NoError(t, err)

	sharers, err := e.svc.FindSharers(ctx, items[0].ID, e.users[0].ID)
	require.NoError(t, err)
	require.Len(t, sharers, 2)
	assert.Equal(t, e.users[1].ID, sharers[0].User.ID)
	assert.Equal(t, e.users[2].ID, sharers[1].User.ID)
	assert.Equal(t, items[1].ID, sharers[0].Item.ID)
	assert.Zero(t, sharers[0].NumberOfLikes)
	assert.Equal(t, int64(1), sharers[1].NumberOfLikes)

	lonely := e.add(t, e.users[0], e.newTrip(t, e.users[0]), 0, 0)
	none, err := e.svc.FindSharers(ctx, lonely.ID, e.users[0].ID)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = e.svc.ResolveOwnerSharedItem(ctx, e.users[3].ID, spot)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	shared, err := e.svc.SharedAt(ctx, e.users[3].ID, spot)
	require.NoError(t, err)
	assert.Len(t, shared, 3)
	assert.Equal(t, items[2].ID, shared[2].ID)
	assert.Equal(t, int64(1), shared[2].NumberOfLikes)
}

func TestGet_Visibility(t *testing.T) {
	e := newEnv(t, 2)
	ctx := context.Background()
	owner, viewer := e.users[0], e.users[1]
	trip := e.newTrip(t, owner)
	item := e.add(t, owner, trip, 1, 1)

	got, err := e.svc.Get(ctx, owner.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)

	_, err = e.svc.Get(ctx, viewer.ID, item.ID)
	assert.True(t, apperr.Is(err, apperr.KindInvalid))

	_, err = e.svc.MarkShared(ctx, owner.ID, item.ID, true)
	require.NoError(t, err)
	got, err = e.svc.Get(ctx, viewer.ID, item.ID)
	require.NoError(t, err)
	assert.True(t, got.IsShared)

	profile, err := e.svc.Owner(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, profile.ID)

	_, err = e.svc.Get(ctx, owner.ID, 999)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestList_MissingTrip(t *testing.T) {
	e := newEnv(t, 1)
	_, err := e.svc.List(context.Background(), 0, 404)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
