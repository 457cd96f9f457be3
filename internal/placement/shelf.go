package placement

import (
	"fmt"
	"math"

	"golayout/internal/domain"
	apperror "golayout/internal/errors"
)

const (
	WarnShelfBoundsUpdated      = "Dimensões da prateleira foram atualizadas"
	WarnShelfDescriptionUpdated = "Descrição da prateleira foi atualizada"
	WarnShelfConditionsUpdated  = "Condições da prateleira foram atualizadas"
)

func warnShelfOutOfColumn(shelfID, columnID int64) string {
	return fmt.Sprintf("Prateleira %d fora dos limites da coluna %d", shelfID, columnID)
}

func warnShelfOutOfWarehouse(shelfID int64) string {
	return fmt.Sprintf("Prateleira %d fora dos limites do armazém", shelfID)
}

func warnShelfOccupied(shelfID int64) string {
	return fmt.Sprintf("Prateleira %d está ocupada", shelfID)
}

// unassignedCode ocupa o lugar de um código ausente no nome da prateleira.
const unassignedCode = "NULL"

// NewShelfName é o nome de uma prateleira recém-criada, ainda sem coluna.
func NewShelfName(level int) string {
	return fmt.Sprintf("SHELF-%s-%d", unassignedCode, level)
}

// AssignedShelfName é o nome após a atribuição: SHELF-<código do avô>-<código da coluna>-<nível>.
// Um avô vazio é gravado como NULL.
func AssignedShelfName(grandparentCode, columnCode string, level int) string {
	if grandparentCode == "" {
		grandparentCode = unassignedCode
	}
	return fmt.Sprintf("SHELF-%s-%s-%d", grandparentCode, columnCode, level)
}

// ValidateShelfRequest verifica dimensões e nível de uma requisição de prateleira.
func ValidateShelfRequest(req domain.ShelfRequest) error {
	if req.Width <= 0 || req.Length <= 0 {
		return apperror.NewValidationError("Largura e comprimento da prateleira devem ser positivos.")
	}
	if !req.Rectangle.FitsInt32() || req.Height > math.MaxInt32 || req.Level > math.MaxInt32 {
		return apperror.NewValidationError("Origem e dimensões da prateleira devem caber em um inteiro de 32 bits.")
	}
	if req.Height < 0 || req.Level < 0 {
		return apperror.NewValidationError("Altura e nível da prateleira não podem ser negativos.")
	}
	return nil
}

// ValidateNewShelf decide a criação de uma prateleira, que nasce sem coluna
// e precisa caber nos limites do armazém.
func ValidateNewShelf(bounds domain.Rectangle, req domain.ShelfRequest) error {
	if err := ValidateShelfRequest(req); err != nil {
		return err
	}
	if !Contains(req.Rectangle, bounds) {
		return apperror.NewPlacementError(apperror.KindOutOfWarehouseBounds, "A prateleira está fora dos limites do armazém.")
	}
	return nil
}

// FitsInColumn compara o retângulo da prateleira com a largura e o comprimento
// declarados da coluna. A rotação da coluna não é aplicada.
func FitsInColumn(rect domain.Rectangle, column domain.Zone) bool {
	return Contains(rect, domain.Rectangle{Width: column.Width, Length: column.Length})
}

// ValidateColumnAssignment decide se shelf pode ser anexada a column.
func ValidateColumnAssignment(shelf domain.Shelf, column domain.Zone) error {
	if column.Kind != domain.KindColumn {
		return apperror.NewPlacementError(apperror.KindColumnMismatch,
			fmt.Sprintf("A zona %d é do tipo %s, não %s.", column.ID, column.Kind, domain.KindColumn))
	}
	if !FitsInColumn(shelf.Rectangle, column) {
		return apperror.NewPlacementError(apperror.KindShelfOutOfColumnBounds,
			fmt.Sprintf("A prateleira %d não cabe na coluna %d.", shelf.ID, column.ID))
	}
	return nil
}

// PlanShelfUpdate calcula a atualização de uma prateleira.
//
// Prateleiras ocupadas têm geometria e nível congelados. Caso contrário o
// novo retângulo é verificado contra a coluna atual (ou contra o armazém,
// se não houver coluna) e o nível é sempre aplicado. Descrição e condições
// são sempre aplicadas.
func PlanShelfUpdate(shelf domain.Shelf, column *domain.Zone, bounds domain.Rectangle, req domain.ShelfRequest) (ShelfUpdatePlan, error) {
	if err := ValidateShelfRequest(req); err != nil {
		return ShelfUpdatePlan{}, err
	}

	w := newWarnings()
	plan := ShelfUpdatePlan{
		Description:     req.Description,
		Conditions:      copyConditions(req.Conditions),
		ConnectedNodeID: req.ConnectedNodeID,
	}

	if shelf.Occupied {
		w.degrade(warnShelfOccupied(shelf.ID))
	} else {
		var fits bool
		if column != nil {
			fits = FitsInColumn(req.Rectangle, *column)
		} else {
			fits = Contains(req.Rectangle, bounds)
		}

		switch {
		case fits:
			plan.Resize = &ShelfResize{Rect: req.Rectangle, Height: req.Height}
			w.note(WarnShelfBoundsUpdated)
		case column != nil:
			w.degrade(warnShelfOutOfColumn(shelf.ID, column.ID))
		default:
			w.degrade(warnShelfOutOfWarehouse(shelf.ID))
		}

		level := req.Level
		plan.Level = &level
	}

	w.note(WarnShelfDescriptionUpdated)
	w.note(WarnShelfConditionsUpdated)

	plan.Warnings = w.list
	plan.Status = w.status
	return plan, nil
}

// CheckShelfDeletion rejeita a exclusão de prateleiras ocupadas.
func CheckShelfDeletion(shelf domain.Shelf) error {
	if shelf.Occupied {
		return apperror.NewPlacementError(apperror.KindShelfOccupied,
			fmt.Sprintf("A prateleira %d está ocupada e não pode ser excluída.", shelf.ID))
	}
	return nil
}
