package zonerepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golayout/internal/domain"
	"golayout/internal/pkg/cache"
	"golayout/internal/pkg/logger"
)

func TestFindAll_ServesLayoutFromCache(t *testing.T) {
	ctx := context.Background()
	memory := cache.NewMemoryClient()
	cached := []domain.Zone{{ID: 1, Code: "aaaa0001", Name: "STORAGE-aaaa0001", Kind: domain.KindStorage}}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)
	require.NoError(t, memory.Set(ctx, cache.LayoutKey, payload, time.Minute))

	// Sem DB: um cache hit não pode tocar o banco.
	repo := NewZoneRepository(nil, memory, time.Second, time.Minute, logger.Nop())

	zones, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, "STORAGE-aaaa0001", zones[0].Name)
}

func TestInvalidateLayout(t *testing.T) {
	ctx := context.Background()
	memory := cache.NewMemoryClient()
	require.NoError(t, memory.Set(ctx, cache.LayoutKey, "[]", 0))

	NewZoneRepository(nil, memory, time.Second, time.Minute, logger.Nop()).InvalidateLayout(ctx)

	_, err := memory.Get(ctx, cache.LayoutKey)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

type fakeRow struct {
	values []interface{}
}

func (f fakeRow) Scan(dest ...interface{}) error {
	for i, d := range dest {
		switch target := d.(type) {
		case *int64:
			*target = f.values[i].(int64)
		case *string:
			*target = f.values[i].(string)
		case *domain.ZoneKind:
			*target = domain.ZoneKind(f.values[i].(string))
		case *int:
			*target = f.values[i].(int)
		case *domain.RotationAngle:
			*target = domain.RotationAngle(f.values[i].(int))
		case *domain.FaceDirection:
			*target = domain.FaceDirection(f.values[i].(string))
		case *sql.NullString:
			if f.values[i] != nil {
				*target = sql.NullString{String: f.values[i].(string), Valid: true}
			}
		case *sql.NullInt64:
			if f.values[i] != nil {
				*target = sql.NullInt64{Int64: f.values[i].(int64), Valid: true}
			}
		case *time.Time:
			*target = f.values[i].(time.Time)
		case sql.Scanner:
			if err := target.Scan(f.values[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func TestScanZone_MapsParentAndArrays(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	row := fakeRow{values: []interface{}{
		int64(4), "bbbb0002", "COLUMN-aaaa0001-bbbb0002", "COLUMN", 1, 2, 3, 4,
		90, "LEFT", "node-17", int64(1), "coluna",
		now, now,
		[]byte("{}"), []byte("{7,9}"),
	}}

	z, err := scanZone(row)
	require.NoError(t, err)

	require.NotNil(t, z.ParentID)
	assert.Equal(t, int64(1), *z.ParentID)
	assert.Equal(t, domain.Rotation90, z.Rotation)
	assert.Equal(t, domain.FaceLeft, z.FaceDirection)
	require.NotNil(t, z.EntryNodeID)
	assert.Equal(t, "node-17", *z.EntryNodeID)
	assert.Equal(t, []int64{}, z.ChildIDs)
	assert.Equal(t, []int64{7, 9}, z.ShelfIDs)
	assert.False(t, z.IsRoot())
}
