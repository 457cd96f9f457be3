package placement

import "golayout/internal/domain"

var allowedChildren = map[domain.ZoneKind][]domain.ZoneKind{
	domain.KindStorage:   {domain.KindColumn},
	domain.KindParking:   {domain.KindParkingSpot},
	domain.KindWarehouse: {domain.KindStorage, domain.KindParking, domain.KindUnloading, domain.KindLoading},
}

var allowedParents = map[domain.ZoneKind][]domain.ZoneKind{
	domain.KindColumn:      {domain.KindStorage},
	domain.KindParkingSpot: {domain.KindParking},
}

var warehouseLevelKinds = []domain.ZoneKind{
	domain.KindStorage, domain.KindParking, domain.KindUnloading, domain.KindLoading,
}

// AllowedChildren retorna os tipos que podem ser filhos diretos de kind.
func AllowedChildren(kind domain.ZoneKind) []domain.ZoneKind {
	return append([]domain.ZoneKind(nil), allowedChildren[kind]...)
}

// AllowedParents retorna os tipos declarados como pai de kind.
// Lista vazia significa que não há restrição declarada.
func AllowedParents(kind domain.ZoneKind) []domain.ZoneKind {
	return append([]domain.ZoneKind(nil), allowedParents[kind]...)
}

// WarehouseLevelKinds são os tipos considerados nas verificações de sobreposição no nível do armazém.
func WarehouseLevelKinds() []domain.ZoneKind {
	return append([]domain.ZoneKind(nil), warehouseLevelKinds...)
}

// CanContain indica se uma zona do tipo parent aceita um filho do tipo child.
func CanContain(parent, child domain.ZoneKind) bool {
	for _, k := range allowedChildren[parent] {
		if k == child {
			return true
		}
	}
	return false
}

// ParseKind converte um nome (sem diferenciar maiúsculas) para um ZoneKind conhecido.
func ParseKind(name string) (domain.ZoneKind, bool) {
	kind := domain.NormalizeKind(name)
	for _, k := range domain.ZoneKinds {
		if k == kind {
			return k, true
		}
	}
	return "", false
}

// IsValidKind indica se name corresponde a um tipo de zona conhecido.
func IsValidKind(name string) bool {
	_, ok := ParseKind(name)
	return ok
}
