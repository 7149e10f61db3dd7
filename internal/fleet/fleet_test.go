package fleet

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intermernet/battery-registry/internal/database"
)

type fixture struct {
	groups     *GroupService
	batteries  *BatteryService
	aggregates *AggregateService
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	ctx := context.Background()
	db, err := database.NewService(ctx, filepath.Join(t.TempDir(), "fleet.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.InitSchema(ctx))

	return fixture{
		groups:     NewGroupService(db, log),
		batteries:  NewBatteryService(db, log),
		aggregates: NewAggregateService(db),
	}
}

func int64Ptr(v int64) *int64 { return &v }

func TestGroupLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.groups.Create(ctx, GroupInput{Name: "depot"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := f.groups.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	updated, err := f.groups.Update(ctx, created.ID, GroupInput{Name: "warehouse"})
	require.NoError(t, err)
	assert.Equal(t, &database.Group{ID: created.ID, Name: "warehouse"}, updated)

	// Repeating the same update changes nothing observable.
	again, err := f.groups.Update(ctx, created.ID, GroupInput{Name: "warehouse"})
	require.NoError(t, err)
	assert.Equal(t, updated, again)

	require.NoError(t, f.groups.Delete(ctx, created.ID))
	require.NoError(t, f.groups.Delete(ctx, created.ID))

	_, err = f.groups.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGroupMissingIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.groups.Get(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.groups.Update(ctx, 404, GroupInput{Name: "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, f.groups.Delete(ctx, 404))
}

func TestGroupListReturnsEveryCreatedGroupOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	empty, err := f.groups.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	var want []database.Group
	for _, name := range []string{"a", "b", "c", "a"} {
		g, err := f.groups.Create(ctx, GroupInput{Name: name})
		require.NoError(t, err)
		want = append(want, *g)
	}

	got, err := f.groups.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGroupDeleteRefusedWhileReferenced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	g, err := f.groups.Create(ctx, GroupInput{Name: "busy"})
	require.NoError(t, err)
	_, err = f.batteries.Create(ctx, BatteryInput{Name: "b", GroupID: int64Ptr(g.ID)})
	require.NoError(t, err)

	err = f.groups.Delete(ctx, g.ID)
	var storeErr *StoreError
	require.True(t, errors.As(err, &storeErr), "got %v", err)
	assert.Equal(t, "delete group", storeErr.Op)
}

func TestBatteryLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	g, err := f.groups.Create(ctx, GroupInput{Name: "grid"})
	require.NoError(t, err)

	in := BatteryInput{
		Name: "cell-1", Latitude: -33.86, Longitude: 151.2, SetupDate: "2024-02-29",
		Level: 75, Capacity: 120, GroupID: int64Ptr(g.ID),
	}
	created, err := f.batteries.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "cell-1", created.Name)
	assert.Equal(t, sql.NullInt64{Int64: g.ID, Valid: true}, created.GroupID)

	got, err := f.batteries.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	other, err := f.groups.Create(ctx, GroupInput{Name: "other"})
	require.NoError(t, err)

	upd := BatteryInput{
		Name: "cell-1b", Latitude: 1, Longitude: 2, SetupDate: "2024-03-01",
		Level: 50, Capacity: 200, GroupID: int64Ptr(other.ID),
	}
	updated, err := f.batteries.Update(ctx, created.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, "cell-1b", updated.Name)
	assert.EqualValues(t, 200, updated.Capacity)
	assert.EqualValues(t, "2024-03-01", updated.SetupDate)
	// The update contract does not reassign groups.
	assert.Equal(t, g.ID, updated.GroupID.Int64)

	require.NoError(t, f.batteries.Delete(ctx, created.ID))
	require.NoError(t, f.batteries.Delete(ctx, created.ID))
	_, err = f.batteries.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.batteries.Update(ctx, created.ID, upd)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBatteryCreateWithUnknownGroup(t *testing.T) {
	f := newFixture(t)

	_, err := f.batteries.Create(context.Background(), BatteryInput{Name: "stray", GroupID: int64Ptr(99)})
	var storeErr *StoreError
	require.True(t, errors.As(err, &storeErr), "got %v", err)
	assert.Equal(t, "create battery", storeErr.Op)

	all, err := f.batteries.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestBatteryFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	g, err := f.groups.Create(ctx, GroupInput{Name: "g"})
	require.NoError(t, err)

	b1, err := f.batteries.Create(ctx, BatteryInput{Name: "b1", SetupDate: "2024-01-01", GroupID: int64Ptr(g.ID)})
	require.NoError(t, err)
	b2, err := f.batteries.Create(ctx, BatteryInput{Name: "b2", SetupDate: "2024-01-02"})
	require.NoError(t, err)
	b3, err := f.batteries.Create(ctx, BatteryInput{Name: "b3", SetupDate: "2024-01-01"})
	require.NoError(t, err)

	byDate, err := f.batteries.ListBySetupDate(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, []database.Battery{*b1, *b3}, byDate)

	byDate, err = f.batteries.ListBySetupDate(ctx, "1999-12-31")
	require.NoError(t, err)
	assert.Empty(t, byDate)

	byGroup, err := f.batteries.ListByGroup(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, []database.Battery{*b1}, byGroup)

	all, err := f.batteries.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []database.Battery{*b1, *b2, *b3}, all)
}

func TestAggregatesOverStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.aggregates.ExtremeGroupCapacities(ctx)
	assert.ErrorIs(t, err, ErrEmptyDataset)

	g1, err := f.groups.Create(ctx, GroupInput{Name: "g1"})
	require.NoError(t, err)
	g2, err := f.groups.Create(ctx, GroupInput{Name: "g2"})
	require.NoError(t, err)

	a, err := f.batteries.Create(ctx, BatteryInput{Name: "a", Capacity: 10, GroupID: int64Ptr(g1.ID)})
	require.NoError(t, err)
	_, err = f.batteries.Create(ctx, BatteryInput{Name: "c", Capacity: 3, GroupID: int64Ptr(g2.ID)})
	require.NoError(t, err)
	b, err := f.batteries.Create(ctx, BatteryInput{Name: "b", Capacity: 5, GroupID: int64Ptr(g1.ID)})
	require.NoError(t, err)

	ext, err := f.aggregates.ExtremeGroupCapacities(ctx)
	require.NoError(t, err)
	assert.Equal(t, Extremes{Min: g2.ID, Max: g1.ID}, ext)

	inG1, err := f.aggregates.BatteriesInGroup(ctx, g1.ID)
	require.NoError(t, err)
	assert.Equal(t, []database.Battery{*a, *b}, inG1)

	none, err := f.aggregates.BatteriesInGroup(ctx, 12345)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
