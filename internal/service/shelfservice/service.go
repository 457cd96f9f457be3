package shelfservice

import (
	"context"

	"golayout/internal/domain"
	apperror "golayout/internal/errors"
	"golayout/internal/pkg/database"
	"golayout/internal/pkg/logger"
	"golayout/internal/placement"
	"golayout/internal/service/zoneservice"
)

// ShelfRepository é o contrato de persistência de prateleiras.
type ShelfRepository interface {
	FindByID(ctx context.Context, id int64) (domain.Shelf, error)
	FindAll(ctx context.Context) ([]domain.Shelf, error)
	Create(ctx context.Context, shelf domain.Shelf) (domain.Shelf, error)
	Update(ctx context.Context, shelf domain.Shelf) (domain.Shelf, error)
	Delete(ctx context.Context, id int64) error
}

// ZoneReader é o acesso às zonas necessário para posicionar prateleiras.
type ZoneReader interface {
	FindByID(ctx context.Context, id int64) (domain.Zone, error)
	InvalidateLayout(ctx context.Context)
}

// LockUnassigned é a trava das prateleiras ainda sem coluna.
const LockUnassigned = "shelves:unassigned"

func shelfLock(shelf domain.Shelf) string {
	if shelf.ColumnID == nil {
		return LockUnassigned
	}
	return zoneservice.LockColumnShelves(*shelf.ColumnID)
}

// Service implementa as operações de prateleiras.
type Service struct {
	repo     ShelfRepository
	zones    ZoneReader
	tx       zoneservice.Transactor
	bounds   zoneservice.BoundsProvider
	recorder zoneservice.DecisionRecorder
	logger   logger.Logger
}

func NewService(repo ShelfRepository, zones ZoneReader, tx zoneservice.Transactor, bounds zoneservice.BoundsProvider, recorder zoneservice.DecisionRecorder, log logger.Logger) *Service {
	return &Service{
		repo:     repo,
		zones:    zones,
		tx:       tx,
		bounds:   bounds,
		recorder: recorder,
		logger:   log,
	}
}

// ListShelves retorna todas as prateleiras.
func (s *Service) ListShelves(ctx context.Context) ([]domain.Shelf, error) {
	shelves, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, asAppError("Falha interna ao listar prateleiras", err)
	}
	return shelves, nil
}

// GetShelf retorna uma prateleira pelo ID.
func (s *Service) GetShelf(ctx context.Context, id int64) (domain.Shelf, error) {
	shelf, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Shelf{}, asAppError("Falha interna ao buscar prateleira", err)
	}
	return shelf, nil
}

// AddShelf cria uma prateleira inativa e sem coluna.
func (s *Service) AddShelf(ctx context.Context, req domain.ShelfRequest) (domain.Shelf, error) {
	const op = "add_shelf"

	if err := placement.ValidateNewShelf(s.bounds.Current(), req); err != nil {
		return domain.Shelf{}, s.reject(op, err)
	}

	var created domain.Shelf
	err := s.tx.WithinLock(ctx, []string{LockUnassigned}, func(ctx context.Context) error {
		var err error
		created, err = s.repo.Create(ctx, domain.Shelf{
			Name:            placement.NewShelfName(req.Level),
			Rectangle:       req.Rectangle,
			Height:          req.Height,
			Level:           req.Level,
			Description:     req.Description,
			Conditions:      req.Conditions,
			ConnectedNodeID: req.ConnectedNodeID,
		})
		return err
	})
	if err != nil {
		return domain.Shelf{}, s.reject(op, asAppError("Falha interna ao criar prateleira", err))
	}

	s.accept(ctx, op, domain.StatusOK)
	s.logger.Info("Prateleira criada.", map[string]interface{}{"id": created.ID, "name": created.Name})
	return created, nil
}

// AssignShelfToColumn anexa a prateleira à coluna, renomeando-a e ativando-a.
func (s *Service) AssignShelfToColumn(ctx context.Context, shelfID, columnID int64) (domain.Shelf, error) {
	const op = "assign_shelf"

	current, err := s.repo.FindByID(ctx, shelfID)
	if err != nil {
		return domain.Shelf{}, s.reject(op, asAppError("Falha interna ao buscar prateleira", err))
	}

	keys := []string{shelfLock(current), zoneservice.LockColumnShelves(columnID)}
	var assigned domain.Shelf
	err = s.tx.WithinLock(ctx, keys, func(ctx context.Context) error {
		shelf, err := s.reloadUnder(ctx, current)
		if err != nil {
			return err
		}

		column, err := s.zones.FindByID(ctx, columnID)
		if err != nil {
			return err
		}

		if err := placement.ValidateColumnAssignment(shelf, column); err != nil {
			return err
		}

		var grandparentCode string
		if column.ParentID != nil {
			grandparent, err := s.zones.FindByID(ctx, *column.ParentID)
			if err != nil {
				return err
			}
			grandparentCode = grandparent.Code
		}

		shelf.Name = placement.AssignedShelfName(grandparentCode, column.Code, shelf.Level)
		shelf.ColumnID = &columnID
		shelf.Active = true

		assigned, err = s.repo.Update(ctx, shelf)
		return err
	})
	if err != nil {
		return domain.Shelf{}, s.reject(op, asAppError("Falha interna ao atribuir prateleira", err))
	}

	s.accept(ctx, op, domain.StatusOK)
	s.logger.Info("Prateleira atribuída à coluna.", map[string]interface{}{"id": assigned.ID, "name": assigned.Name, "column_zone_id": columnID})
	return assigned, nil
}

// UpdateShelf aplica a atualização de uma prateleira.
func (s *Service) UpdateShelf(ctx context.Context, id int64, req domain.ShelfRequest) (domain.ShelfUpdateResponse, error) {
	const op = "update_shelf"

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.ShelfUpdateResponse{}, s.reject(op, asAppError("Falha interna ao buscar prateleira", err))
	}

	var resp domain.ShelfUpdateResponse
	err = s.tx.WithinLock(ctx, []string{shelfLock(current)}, func(ctx context.Context) error {
		shelf, err := s.reloadUnder(ctx, current)
		if err != nil {
			return err
		}

		var column *domain.Zone
		if shelf.ColumnID != nil {
			z, err := s.zones.FindByID(ctx, *shelf.ColumnID)
			if err != nil {
				return err
			}
			column = &z
		}

		plan, err := placement.PlanShelfUpdate(shelf, column, s.bounds.Current(), req)
		if err != nil {
			return err
		}

		updated, err := s.repo.Update(ctx, plan.Apply(shelf))
		if err != nil {
			return err
		}

		resp = domain.ShelfUpdateResponse{Shelf: updated, Status: plan.Status, Warnings: plan.Warnings}
		return nil
	})
	if err != nil {
		return domain.ShelfUpdateResponse{}, s.reject(op, asAppError("Falha interna ao atualizar prateleira", err))
	}

	s.accept(ctx, op, resp.Status)
	fields := map[string]interface{}{"id": resp.Shelf.ID, "status": resp.Status, "warnings": resp.Warnings}
	if resp.Status == domain.StatusWithWarnings {
		s.logger.Warn("Prateleira atualizada com avisos.", fields)
	} else {
		s.logger.Info("Prateleira atualizada.", fields)
	}
	return resp, nil
}

// SetShelfOccupancy marca a prateleira como ocupada ou livre.
func (s *Service) SetShelfOccupancy(ctx context.Context, id int64, occupied bool) (domain.Shelf, error) {
	const op = "set_shelf_occupancy"

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Shelf{}, s.reject(op, asAppError("Falha interna ao buscar prateleira", err))
	}

	var updated domain.Shelf
	err = s.tx.WithinLock(ctx, []string{shelfLock(current)}, func(ctx context.Context) error {
		shelf, err := s.reloadUnder(ctx, current)
		if err != nil {
			return err
		}
		shelf.Occupied = occupied
		updated, err = s.repo.Update(ctx, shelf)
		return err
	})
	if err != nil {
		return domain.Shelf{}, s.reject(op, asAppError("Falha interna ao alterar ocupação da prateleira", err))
	}

	s.accept(ctx, op, domain.StatusOK)
	s.logger.Info("Ocupação da prateleira alterada.", map[string]interface{}{"id": id, "is_occupied": occupied})
	return updated, nil
}

// DeleteShelf remove uma prateleira livre.
func (s *Service) DeleteShelf(ctx context.Context, id int64) error {
	const op = "delete_shelf"

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.reject(op, asAppError("Falha interna ao buscar prateleira", err))
	}
	if err := placement.CheckShelfDeletion(current); err != nil {
		return s.reject(op, err)
	}

	err = s.tx.WithinLock(ctx, []string{shelfLock(current)}, func(ctx context.Context) error {
		shelf, err := s.reloadUnder(ctx, current)
		if err != nil {
			return err
		}
		if err := placement.CheckShelfDeletion(shelf); err != nil {
			return err
		}
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return s.reject(op, asAppError("Falha interna ao excluir prateleira", err))
	}

	s.accept(ctx, op, domain.StatusOK)
	s.logger.Info("Prateleira excluída.", map[string]interface{}{"id": id})
	return nil
}

// reloadUnder relê a prateleira dentro da transação. A trava foi escolhida pela
// coluna lida antes; se a coluna mudou no intervalo, a operação é recusada.
func (s *Service) reloadUnder(ctx context.Context, before domain.Shelf) (domain.Shelf, error) {
	shelf, err := s.repo.FindByID(ctx, before.ID)
	if err != nil {
		return domain.Shelf{}, err
	}
	if shelfLock(shelf) != shelfLock(before) {
		return domain.Shelf{}, apperror.NewConflictError("A prateleira mudou de coluna durante a operação. Tente novamente.")
	}
	return shelf, nil
}

// accept invalida o layout em cache: os ShelfIDs das colunas fazem parte dele.
func (s *Service) accept(ctx context.Context, op string, status domain.UpdateStatus) {
	s.zones.InvalidateLayout(ctx)
	s.recorder.RecordDecision(op, status, nil)
}

func (s *Service) reject(op string, err error) error {
	s.recorder.RecordDecision(op, "", err)
	s.logger.Debug("Operação de prateleira rejeitada.", map[string]interface{}{"operation": op, "error": err.Error()})
	return err
}

func asAppError(msg string, err error) error {
	if database.IsRetryable(err) {
		return apperror.NewConflictError("Alteração concorrente nas prateleiras. Tente novamente.")
	}
	if _, ok := err.(apperror.AppError); ok {
		return err
	}
	return apperror.NewInternalError(msg, err)
}
