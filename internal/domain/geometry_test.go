package domain_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golayout/internal/domain"
)

func TestFaceDirection_Angle(t *testing.T) {
	cases := []struct {
		input string
		want  domain.FaceDirection
		angle int
	}{
		{"UP", domain.FaceUp, 0},
		{"north", domain.FaceUp, 0},
		{"Right", domain.FaceRight, 90},
		{"east", domain.FaceRight, 90},
		{"down", domain.FaceBottom, 180},
		{"BOTTOM", domain.FaceBottom, 180},
		{"south", domain.FaceBottom, 180},
		{" left ", domain.FaceLeft, 270},
		{"WEST", domain.FaceLeft, 270},
	}

	for _, tc := range cases {
		face, err := domain.ParseFaceDirection(tc.input)
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.want, face, tc.input)
		assert.Equal(t, tc.angle, face.Angle(), tc.input)
	}

	_, err := domain.ParseFaceDirection("diagonal")
	assert.Error(t, err)
}

func TestZone_MarshalJSONIncludesFaceAngle(t *testing.T) {
	node := "node-17"
	z := domain.Zone{
		ID: 1, Code: "aaaa0001", Name: "STORAGE-aaaa0001", Kind: domain.KindStorage,
		Rectangle:     domain.Rectangle{OriginX: 2, OriginY: 3, Width: 20, Length: 30},
		FaceDirection: domain.FaceLeft,
		EntryNodeID:   &node,
	}

	raw, err := json.Marshal(z)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, float64(270), fields["face_angle"])
	assert.Equal(t, "LEFT", fields["face_direction"])
	assert.Equal(t, float64(20), fields["width"])
	assert.Equal(t, "node-17", fields["entry_node_id"])

	// O layout em cache volta para Zone sem perder campos.
	var back domain.Zone
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, z.Rectangle, back.Rectangle)
	assert.Equal(t, z.FaceDirection, back.FaceDirection)
}

func TestRectangle_FitsInt32(t *testing.T) {
	assert.True(t, domain.Rectangle{OriginX: math.MinInt32, Width: math.MaxInt32}.FitsInt32())
	assert.False(t, domain.Rectangle{OriginX: math.MaxInt - 5, Width: 10}.FitsInt32())
	assert.False(t, domain.Rectangle{Length: math.MaxInt32 + 1}.FitsInt32())
}
