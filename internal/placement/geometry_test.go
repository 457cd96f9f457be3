package placement_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"golayout/internal/domain"
	"golayout/internal/placement"
)

func rect(x, y, w, l int) domain.Rectangle {
	return domain.Rectangle{OriginX: x, OriginY: y, Width: w, Length: l}
}

func TestDrawnBox_SwapsOnQuarterTurns(t *testing.T) {
	base := rect(3, 4, 10, 25)

	cases := []struct {
		rotation domain.RotationAngle
		want     domain.Rectangle
	}{
		{domain.Rotation0, rect(3, 4, 10, 25)},
		{domain.Rotation90, rect(3, 4, 25, 10)},
		{domain.Rotation180, rect(3, 4, 10, 25)},
		{domain.Rotation270, rect(3, 4, 25, 10)},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, placement.DrawnBox(base, tc.rotation), "rotação %d", tc.rotation)
	}
}

func TestContains_BoundaryInclusive(t *testing.T) {
	parent := rect(0, 0, 100, 50)

	assert.True(t, placement.Contains(rect(0, 0, 100, 50), parent))
	assert.True(t, placement.Contains(rect(80, 20, 20, 30), parent))
	assert.False(t, placement.Contains(rect(81, 20, 20, 30), parent))
	assert.False(t, placement.Contains(rect(-1, 0, 10, 10), parent))
}

func TestContains_HugeCoordinatesDoNotWrap(t *testing.T) {
	parent := rect(0, 0, 100, 50)

	assert.False(t, placement.Contains(rect(math.MaxInt-5, 0, 10, 10), parent))
	assert.False(t, placement.Contains(rect(0, math.MaxInt-5, 10, 10), parent))
	assert.False(t, placement.Contains(rect(0, 0, math.MaxInt, 10), parent))
	assert.False(t, placement.Contains(rect(math.MinInt, 0, 10, 10), parent))
	assert.False(t, placement.Contains(rect(0, 0, 10, 10), rect(math.MinInt, 0, math.MaxInt, 50)))
	assert.True(t, placement.Contains(rect(math.MaxInt-10, 0, 10, 10), rect(math.MaxInt-20, 0, 20, 50)))

	assert.False(t, placement.ContainsLocal(rect(math.MaxInt-5, 0, 10, 10), rect(30, 30, 10, 10)))
}

func TestContainsLocal_TranslatesIntoParentFrame(t *testing.T) {
	parent := rect(50, 10, 20, 20)

	assert.True(t, placement.ContainsLocal(rect(0, 0, 20, 20), parent))
	assert.True(t, placement.ContainsLocal(rect(10, 10, 10, 10), parent))
	assert.False(t, placement.ContainsLocal(rect(11, 0, 10, 10), parent))
	// Coordenadas absolutas dentro do pai não são locais válidas.
	assert.False(t, placement.ContainsLocal(rect(50, 10, 5, 5), parent))
}

func TestIntersects(t *testing.T) {
	a := rect(0, 0, 10, 10)

	t.Run("bordas encostadas não se sobrepõem", func(t *testing.T) {
		b := rect(10, 0, 10, 10)
		assert.False(t, placement.Intersects(a, b))
		assert.False(t, placement.Intersects(b, a))

		below := rect(0, 10, 10, 10)
		assert.False(t, placement.Intersects(a, below))
	})

	t.Run("interseção estrita se sobrepõe", func(t *testing.T) {
		b := rect(5, 5, 10, 10)
		assert.True(t, placement.Intersects(a, b))
		assert.True(t, placement.Intersects(b, a))
	})

	t.Run("coordenadas extremas não transbordam", func(t *testing.T) {
		far := rect(math.MaxInt-5, 0, 10, 10)
		assert.False(t, placement.Intersects(a, far))
		assert.False(t, placement.Intersects(far, a))
		assert.True(t, placement.Intersects(far, rect(math.MaxInt-1, 5, 1, 1)))
		assert.False(t, placement.Intersects(rect(math.MinInt, 0, 10, 10), a))
	})

	t.Run("retângulo sem área não se sobrepõe", func(t *testing.T) {
		assert.False(t, placement.Intersects(a, rect(5, 5, 0, 3)))
	})

	t.Run("simétrico", func(t *testing.T) {
		boxes := []domain.Rectangle{a, rect(9, 9, 1, 1), rect(10, 10, 5, 5), rect(-5, 2, 6, 1), rect(2, 2, 3, 3)}
		for _, x := range boxes {
			for _, y := range boxes {
				assert.Equal(t, placement.Intersects(x, y), placement.Intersects(y, x))
			}
		}
	})
}

func TestOverlaps_SubjectExclusion(t *testing.T) {
	zones := []domain.Zone{
		{ID: 1, Name: "STORAGE-a", Rectangle: rect(0, 0, 20, 30)},
		{ID: 2, Name: "PARKING-b", Rectangle: rect(40, 0, 20, 20)},
	}

	t.Run("candidata verifica todas as zonas", func(t *testing.T) {
		other, found := placement.FirstOverlap(placement.Candidate(), rect(10, 10, 5, 5), zones)
		assert.True(t, found)
		assert.Equal(t, int64(1), other.ID)
	})

	t.Run("zona persistida ignora a si mesma", func(t *testing.T) {
		assert.False(t, placement.Overlaps(placement.Persisted(1), rect(5, 5, 10, 10), zones))
		assert.True(t, placement.Overlaps(placement.Persisted(2), rect(5, 5, 10, 10), zones))
	})

	t.Run("usa o retângulo rotacionado das vizinhas", func(t *testing.T) {
		rotated := []domain.Zone{{ID: 3, Rectangle: rect(0, 0, 10, 40), Rotation: domain.Rotation90}}
		// Desenhada como [0,40)x[0,10).
		assert.True(t, placement.Overlaps(placement.Candidate(), rect(30, 0, 5, 5), rotated))
		assert.False(t, placement.Overlaps(placement.Candidate(), rect(0, 20, 5, 5), rotated))
	})
}

func TestLattice(t *testing.T) {
	assert.True(t, placement.CanContain(domain.KindStorage, domain.KindColumn))
	assert.True(t, placement.CanContain(domain.KindParking, domain.KindParkingSpot))
	assert.False(t, placement.CanContain(domain.KindParking, domain.KindColumn))
	assert.False(t, placement.CanContain(domain.KindColumn, domain.KindColumn))

	assert.ElementsMatch(t,
		[]domain.ZoneKind{domain.KindStorage, domain.KindParking, domain.KindUnloading, domain.KindLoading},
		placement.WarehouseLevelKinds())
	assert.Equal(t, []domain.ZoneKind{domain.KindStorage}, placement.AllowedParents(domain.KindColumn))
	assert.Empty(t, placement.AllowedParents(domain.KindStorage))

	kind, ok := placement.ParseKind(" parking_spot ")
	assert.True(t, ok)
	assert.Equal(t, domain.KindParkingSpot, kind)
	assert.False(t, placement.IsValidKind("SHELF"))
}

func TestLattice_ReturnsCopies(t *testing.T) {
	children := placement.AllowedChildren(domain.KindWarehouse)
	children[0] = domain.KindColumn

	assert.Equal(t, domain.KindStorage, placement.AllowedChildren(domain.KindWarehouse)[0])
}
