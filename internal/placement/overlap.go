package placement

import "golayout/internal/domain"

// Subject identifica quem está sendo posicionado: uma candidata ainda não
// persistida ou uma zona já salva (que deve ser ignorada entre as vizinhas).
type Subject struct {
	id        int64
	persisted bool
}

// Candidate é uma zona que ainda não existe no banco.
func Candidate() Subject { return Subject{} }

// Persisted é uma zona salva com o ID informado.
func Persisted(id int64) Subject { return Subject{id: id, persisted: true} }

// IsSelf indica se a zona com este ID é o próprio sujeito.
func (s Subject) IsSelf(id int64) bool {
	return s.persisted && s.id == id
}

// FirstOverlap retorna a primeira vizinha cujo retângulo desenhado se sobrepõe a box.
// A ordem de verificação segue a ordem de candidates, sem outra garantia.
func FirstOverlap(subject Subject, box domain.Rectangle, candidates []domain.Zone) (domain.Zone, bool) {
	for _, candidate := range candidates {
		if subject.IsSelf(candidate.ID) {
			continue
		}
		if Intersects(box, ZoneBox(candidate)) {
			return candidate, true
		}
	}
	return domain.Zone{}, false
}

// Overlaps indica se box se sobrepõe a alguma das candidatas, excluindo o próprio sujeito.
func Overlaps(subject Subject, box domain.Rectangle, candidates []domain.Zone) bool {
	_, found := FirstOverlap(subject, box, candidates)
	return found
}
