package placement

import (
	"fmt"

	"golayout/internal/domain"
	apperror "golayout/internal/errors"
)

// Mensagens de aviso das atualizações de zona.
const (
	WarnZoneKindChanged     = "Tipo da zona foi alterado"
	WarnZoneOriginChanged   = "Origem da zona foi alterada"
	WarnZoneBoundsChanged   = "Dimensões da zona foram alteradas"
	WarnZoneChildrenShifted = "Zonas filhas foram deslocadas com a nova origem"
	WarnZoneOverlaps        = "A zona sobrepõe os limites de zonas vizinhas"
	WarnZoneGeometryChanged = "Origem e dimensões da zona foram alteradas"
)

func warnBoundsFrozenByChildren(n int) string {
	return fmt.Sprintf("Dimensões não foram alteradas. A zona possui %d zonas filhas", n)
}

func warnBoundsFrozenByShelves(n int) string {
	return fmt.Sprintf("Dimensões não foram alteradas porque a zona possui %d prateleiras", n)
}

// RootZoneName monta o nome de uma zona raiz: <TIPO>-<código>.
func RootZoneName(kind domain.ZoneKind, code string) string {
	return fmt.Sprintf("%s-%s", kind, code)
}

// ChildZoneName monta o nome de uma zona filha: <TIPO>-<código do pai>-<código>.
func ChildZoneName(kind domain.ZoneKind, parentCode, code string) string {
	return fmt.Sprintf("%s-%s-%s", kind, parentCode, code)
}

// RequireKind valida o nome do tipo e devolve a forma canônica.
func RequireKind(name string) (domain.ZoneKind, error) {
	kind, ok := ParseKind(name)
	if !ok {
		return "", apperror.NewPlacementError(apperror.KindInvalidKind, fmt.Sprintf("Tipo de zona inválido: %q.", name))
	}
	return kind, nil
}

// ValidateZoneRequest verifica os campos que não dependem do estado do layout.
func ValidateZoneRequest(req domain.ZoneRequest) (domain.FaceDirection, error) {
	if req.Width <= 0 || req.Length <= 0 {
		return "", apperror.NewValidationError("Largura e comprimento da zona devem ser positivos.")
	}
	if !req.Rectangle.FitsInt32() {
		return "", apperror.NewValidationError("Origem e dimensões da zona devem caber em um inteiro de 32 bits.")
	}
	if !req.Rotation.Valid() {
		return "", apperror.NewValidationError(fmt.Sprintf("Ângulo de rotação inválido: %d. Use 0, 90, 180 ou 270.", req.Rotation))
	}
	face, err := domain.ParseFaceDirection(req.FaceDirection)
	if err != nil {
		return "", apperror.NewValidationError(err.Error())
	}
	return face, nil
}

// ValidateRootZone decide a criação de uma zona ancorada no armazém.
// Ordem: limites do armazém, sobreposição com zonas do nível do armazém, tipo.
func ValidateRootZone(bounds domain.Rectangle, req domain.ZoneRequest, warehouseZones []domain.Zone) (domain.ZoneKind, error) {
	box := DrawnBox(req.Rectangle, req.Rotation)

	if !Contains(box, bounds) {
		return "", apperror.NewPlacementError(apperror.KindOutOfWarehouseBounds, "A zona está fora dos limites do armazém.")
	}

	if other, found := FirstOverlap(Candidate(), box, warehouseZones); found {
		return "", apperror.NewPlacementError(apperror.KindOverlapsSibling,
			fmt.Sprintf("A zona sobrepõe a zona %s.", other.Name))
	}

	return RequireKind(req.Type)
}

// ValidateChildZone decide a criação de uma zona dentro de parent.
// O tipo já validado e o pai já carregado são responsabilidade de quem chama.
func ValidateChildZone(kind domain.ZoneKind, req domain.ZoneRequest, parent domain.Zone, siblings []domain.Zone) error {
	box := DrawnBox(req.Rectangle, req.Rotation)

	if !ContainsLocal(box, ZoneBox(parent)) {
		return apperror.NewPlacementError(apperror.KindOutOfParentBounds,
			fmt.Sprintf("A zona está fora dos limites da zona pai %s.", parent.Name))
	}

	if other, found := FirstOverlap(Candidate(), box, siblings); found {
		return apperror.NewPlacementError(apperror.KindOverlapsSibling,
			fmt.Sprintf("A zona sobrepõe a zona vizinha %s.", other.Name))
	}

	if !CanContain(parent.Kind, kind) {
		return apperror.NewPlacementError(apperror.KindDisallowedChildKind,
			fmt.Sprintf("Zona do tipo %s não pode ser filha de %s.", kind, parent.Kind))
	}
	return nil
}

// PlanRootZoneUpdate calcula a atualização de uma zona raiz.
//
// Limites do armazém e tipo inválido rejeitam a requisição. Troca de tipo é
// sempre aplicada. A geometria é aplicada apenas se o novo retângulo não
// sobrepõe outra zona do nível do armazém; largura e comprimento mudam apenas
// quando a zona não tem filhas. Com filhas, um deslocamento da origem é
// repassado às filhas diretas.
func PlanRootZoneUpdate(bounds domain.Rectangle, current domain.Zone, req domain.ZoneRequest, warehouseZones []domain.Zone) (ZoneUpdatePlan, error) {
	face, err := ValidateZoneRequest(req)
	if err != nil {
		return ZoneUpdatePlan{}, err
	}

	box := DrawnBox(req.Rectangle, req.Rotation)
	if !Contains(box, bounds) {
		return ZoneUpdatePlan{}, apperror.NewPlacementError(apperror.KindOutOfWarehouseBounds, "A zona está fora dos limites do armazém.")
	}

	kind, err := RequireKind(req.Type)
	if err != nil {
		return ZoneUpdatePlan{}, err
	}

	w := newWarnings()
	plan := ZoneUpdatePlan{FaceDirection: face, EntryNodeID: req.EntryNodeID, Description: req.Description}

	if kind != current.Kind {
		plan.Rename = &ZoneRename{Kind: kind, Name: RootZoneName(kind, current.Code)}
		w.degrade(WarnZoneKindChanged)
	}

	if Overlaps(Persisted(current.ID), box, warehouseZones) {
		w.degrade(WarnZoneOverlaps)
	} else {
		plan.Move = &ZoneMove{OriginX: req.OriginX, OriginY: req.OriginY, Rotation: req.Rotation}
		w.note(WarnZoneOriginChanged)

		if children := len(current.ChildIDs); children == 0 {
			plan.Resize = &ZoneResize{Width: req.Width, Length: req.Length}
			w.note(WarnZoneBoundsChanged)
		} else {
			w.degrade(warnBoundsFrozenByChildren(children))

			shift := Offset{DX: req.OriginX - current.OriginX, DY: req.OriginY - current.OriginY}
			if !shift.IsZero() {
				plan.ChildShift = shift
				w.note(WarnZoneChildrenShifted)
			}
		}
	}

	plan.Warnings = w.list
	plan.Status = w.status
	return plan, nil
}

// PlanChildZoneUpdate calcula a atualização de uma zona filha dentro de parent.
//
// Sair dos limites do pai rejeita a requisição. Zonas com prateleiras têm a
// geometria congelada; sem prateleiras, a geometria é aplicada se não houver
// sobreposição com as vizinhas sob parent.
func PlanChildZoneUpdate(current, parent domain.Zone, siblings []domain.Zone, req domain.ZoneRequest) (ZoneUpdatePlan, error) {
	face, err := ValidateZoneRequest(req)
	if err != nil {
		return ZoneUpdatePlan{}, err
	}

	if parent.ID == current.ID {
		return ZoneUpdatePlan{}, apperror.NewValidationError("Uma zona não pode ser pai de si mesma.")
	}

	box := DrawnBox(req.Rectangle, req.Rotation)
	if !ContainsLocal(box, ZoneBox(parent)) {
		return ZoneUpdatePlan{}, apperror.NewPlacementError(apperror.KindOutOfParentBounds,
			fmt.Sprintf("A zona está fora dos limites da zona pai %s.", parent.Name))
	}

	reparent := current.ParentID == nil || *current.ParentID != parent.ID
	if reparent && !CanContain(parent.Kind, current.Kind) {
		return ZoneUpdatePlan{}, apperror.NewPlacementError(apperror.KindDisallowedChildKind,
			fmt.Sprintf("Zona do tipo %s não pode ser filha de %s.", current.Kind, parent.Kind))
	}

	w := newWarnings()
	plan := ZoneUpdatePlan{FaceDirection: face, EntryNodeID: req.EntryNodeID, Description: req.Description}

	if shelves := len(current.ShelfIDs); shelves > 0 {
		w.degrade(warnBoundsFrozenByShelves(shelves))
	} else if Overlaps(Persisted(current.ID), box, siblings) {
		w.degrade(WarnZoneOverlaps)
	} else {
		plan.Move = &ZoneMove{OriginX: req.OriginX, OriginY: req.OriginY, Rotation: req.Rotation}
		plan.Resize = &ZoneResize{Width: req.Width, Length: req.Length}
		if reparent {
			parentID := parent.ID
			plan.Relink = &parentID
		}
		w.note(WarnZoneGeometryChanged)
	}

	plan.Warnings = w.list
	plan.Status = w.status
	return plan, nil
}

// CheckZoneDeletion rejeita a exclusão de zonas com filhas ou prateleiras.
func CheckZoneDeletion(z domain.Zone) error {
	if len(z.ChildIDs) > 0 || len(z.ShelfIDs) > 0 {
		return apperror.NewPlacementError(apperror.KindZoneHasDependents,
			fmt.Sprintf("A zona %d não pode ser excluída: possui %d zonas filhas e %d prateleiras.", z.ID, len(z.ChildIDs), len(z.ShelfIDs)))
	}
	return nil
}
