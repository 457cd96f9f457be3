package shelfrepo

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionsCodec(t *testing.T) {
	raw, err := encodeConditions(map[string]string{"umidade": "baixa"})
	require.NoError(t, err)

	decoded, err := decodeConditions([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"umidade": "baixa"}, decoded)
}

func TestConditionsCodec_Empty(t *testing.T) {
	raw, err := encodeConditions(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", raw)

	decoded, err := decodeConditions(nil)
	require.NoError(t, err)
	assert.NotNil(t, decoded)
	assert.Empty(t, decoded)
}

func TestDecodeConditions_RejectsNonObject(t *testing.T) {
	_, err := decodeConditions([]byte(`["frio"]`))
	assert.Error(t, err)
}

type fakeRow struct {
	values []interface{}
}

func (f fakeRow) Scan(dest ...interface{}) error {
	for i, d := range dest {
		switch target := d.(type) {
		case *int64:
			*target = f.values[i].(int64)
		case *int:
			*target = f.values[i].(int)
		case *bool:
			*target = f.values[i].(bool)
		case *string:
			*target = f.values[i].(string)
		case *[]byte:
			*target = f.values[i].([]byte)
		case *sql.NullInt64:
			if f.values[i] != nil {
				*target = sql.NullInt64{Int64: f.values[i].(int64), Valid: true}
			}
		case *sql.NullString:
			if f.values[i] != nil {
				*target = sql.NullString{String: f.values[i].(string), Valid: true}
			}
		case *time.Time:
			*target = f.values[i].(time.Time)
		}
	}
	return nil
}

func TestScanShelf_MapsColumnAndNode(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	row := fakeRow{values: []interface{}{
		int64(7), "SHELF-aaaa0001-bbbb0002-2", int64(4), 0, 0, 4, 6, 200, 2,
		true, true, "fria", []byte(`{"temperatura":"frio"}`), "node-42", now, now,
	}}

	s, err := scanShelf(row)
	require.NoError(t, err)

	require.NotNil(t, s.ColumnID)
	assert.Equal(t, int64(4), *s.ColumnID)
	require.NotNil(t, s.ConnectedNodeID)
	assert.Equal(t, "node-42", *s.ConnectedNodeID)
	assert.Equal(t, map[string]string{"temperatura": "frio"}, s.Conditions)
	assert.True(t, s.Occupied)
}

func TestScanShelf_NullColumnAndNode(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	row := fakeRow{values: []interface{}{
		int64(8), "SHELF-NULL-1", nil, 0, 0, 4, 6, 0, 1,
		false, false, "", []byte(`{}`), nil, now, now,
	}}

	s, err := scanShelf(row)
	require.NoError(t, err)
	assert.Nil(t, s.ColumnID)
	assert.Nil(t, s.ConnectedNodeID)
	assert.Empty(t, s.Conditions)
}
