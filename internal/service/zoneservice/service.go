package zoneservice

import (
	"context"
	"fmt"

	"golayout/internal/domain"
	apperror "golayout/internal/errors"
	"golayout/internal/pkg/database"
	"golayout/internal/pkg/logger"
	"golayout/internal/placement"
)

// ZoneRepository é o contrato de persistência de zonas.
type ZoneRepository interface {
	FindByID(ctx context.Context, id int64) (domain.Zone, error)
	FindByCode(ctx context.Context, code string) (domain.Zone, error)
	FindByKindIn(ctx context.Context, kinds []domain.ZoneKind) ([]domain.Zone, error)
	FindChildren(ctx context.Context, parentID int64) ([]domain.Zone, error)
	FindAll(ctx context.Context) ([]domain.Zone, error)
	Create(ctx context.Context, zone domain.Zone) (domain.Zone, error)
	Update(ctx context.Context, zone domain.Zone) (domain.Zone, error)
	Delete(ctx context.Context, id int64) error
	InvalidateLayout(ctx context.Context)
}

// Transactor serializa sequências ler-validar-escrever por agregado.
type Transactor interface {
	WithinLock(ctx context.Context, keys []string, fn func(ctx context.Context) error) error
}

// BoundsProvider fornece os limites fixos do armazém.
type BoundsProvider interface {
	Current() domain.Rectangle
}

// DecisionRecorder contabiliza o resultado de cada operação.
type DecisionRecorder interface {
	RecordDecision(operation string, status domain.UpdateStatus, err error)
}

// Chaves de trava dos agregados de zonas.
const LockWarehouse = "zones:warehouse"

// LockParent é a trava do conjunto de filhas de uma zona.
func LockParent(id int64) string { return fmt.Sprintf("zones:parent:%d", id) }

// LockColumnShelves é a trava do conjunto de prateleiras de uma coluna.
func LockColumnShelves(id int64) string { return fmt.Sprintf("shelves:column:%d", id) }

// Service implementa as operações de layout de zonas.
type Service struct {
	repo     ZoneRepository
	tx       Transactor
	bounds   BoundsProvider
	issuer   *placement.IdentifierIssuer
	recorder DecisionRecorder
	logger   logger.Logger
}

// NewService monta o serviço. O próprio repositório é o oráculo de unicidade dos códigos.
func NewService(repo ZoneRepository, tx Transactor, bounds BoundsProvider, recorder DecisionRecorder, maxCodeAttempts int, log logger.Logger, opts ...placement.IssuerOption) *Service {
	return &Service{
		repo:     repo,
		tx:       tx,
		bounds:   bounds,
		issuer:   placement.NewIdentifierIssuer(repo, maxCodeAttempts, opts...),
		recorder: recorder,
		logger:   log,
	}
}

// ListZones retorna todas as zonas.
func (s *Service) ListZones(ctx context.Context) ([]domain.Zone, error) {
	zones, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, asAppError("Falha interna ao listar zonas", err)
	}
	return zones, nil
}

// GetZone retorna uma zona pelo ID.
func (s *Service) GetZone(ctx context.Context, id int64) (domain.Zone, error) {
	zone, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Zone{}, asAppError("Falha interna ao buscar zona", err)
	}
	return zone, nil
}

// AddRootZone cria uma zona ancorada no armazém.
func (s *Service) AddRootZone(ctx context.Context, req domain.ZoneRequest) (domain.Zone, error) {
	const op = "add_root_zone"

	face, err := placement.ValidateZoneRequest(req)
	if err != nil {
		return domain.Zone{}, s.reject(op, err)
	}

	var created domain.Zone
	err = s.tx.WithinLock(ctx, []string{LockWarehouse}, func(ctx context.Context) error {
		warehouseZones, err := s.repo.FindByKindIn(ctx, placement.WarehouseLevelKinds())
		if err != nil {
			return err
		}

		kind, err := placement.ValidateRootZone(s.bounds.Current(), req, warehouseZones)
		if err != nil {
			return err
		}

		code, err := s.issuer.Issue(ctx)
		if err != nil {
			return err
		}

		created, err = s.repo.Create(ctx, domain.Zone{
			Code:          code,
			Name:          placement.RootZoneName(kind, code),
			Kind:          kind,
			Rectangle:     req.Rectangle,
			Rotation:      req.Rotation,
			FaceDirection: face,
			EntryNodeID:   req.EntryNodeID,
			Description:   req.Description,
		})
		return err
	})
	if err != nil {
		return domain.Zone{}, s.reject(op, asAppError("Falha interna ao criar zona raiz", err))
	}

	s.accept(ctx, op, domain.StatusOK)
	s.logger.Info("Zona raiz criada.", map[string]interface{}{"id": created.ID, "name": created.Name})
	return created, nil
}

// AddChildZone cria uma zona dentro de req.ParentZoneID.
func (s *Service) AddChildZone(ctx context.Context, req domain.ZoneRequest) (domain.Zone, error) {
	const op = "add_child_zone"

	kind, err := placement.RequireKind(req.Type)
	if err != nil {
		return domain.Zone{}, s.reject(op, err)
	}
	if req.ParentZoneID == nil {
		return domain.Zone{}, s.reject(op, apperror.NewPlacementError(apperror.KindMissingParentReference, "parent_zone_id é obrigatório para zonas filhas."))
	}
	face, err := placement.ValidateZoneRequest(req)
	if err != nil {
		return domain.Zone{}, s.reject(op, err)
	}

	parentID := *req.ParentZoneID
	var created domain.Zone
	err = s.tx.WithinLock(ctx, []string{LockParent(parentID)}, func(ctx context.Context) error {
		parent, err := s.repo.FindByID(ctx, parentID)
		if err != nil {
			return err
		}

		siblings, err := s.repo.FindChildren(ctx, parentID)
		if err != nil {
			return err
		}

		if err := placement.ValidateChildZone(kind, req, parent, siblings); err != nil {
			return err
		}

		code, err := s.issuer.Issue(ctx)
		if err != nil {
			return err
		}

		created, err = s.repo.Create(ctx, domain.Zone{
			Code:          code,
			Name:          placement.ChildZoneName(kind, parent.Code, code),
			Kind:          kind,
			Rectangle:     req.Rectangle,
			Rotation:      req.Rotation,
			FaceDirection: face,
			EntryNodeID:   req.EntryNodeID,
			ParentID:      &parentID,
			Description:   req.Description,
		})
		return err
	})
	if err != nil {
		return domain.Zone{}, s.reject(op, asAppError("Falha interna ao criar zona filha", err))
	}

	s.accept(ctx, op, domain.StatusOK)
	s.logger.Info("Zona filha criada.", map[string]interface{}{"id": created.ID, "name": created.Name, "parent_zone_id": parentID})
	return created, nil
}

// UpdateRootZone aplica a atualização de uma zona raiz, deslocando as filhas diretas quando a origem muda.
func (s *Service) UpdateRootZone(ctx context.Context, id int64, req domain.ZoneRequest) (domain.ZoneUpdateResponse, error) {
	const op = "update_root_zone"

	var resp domain.ZoneUpdateResponse
	err := s.tx.WithinLock(ctx, []string{LockWarehouse, LockParent(id)}, func(ctx context.Context) error {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !current.IsRoot() {
			return apperror.NewValidationError(fmt.Sprintf("Zona %d não é uma zona raiz.", id))
		}

		warehouseZones, err := s.repo.FindByKindIn(ctx, placement.WarehouseLevelKinds())
		if err != nil {
			return err
		}

		plan, err := placement.PlanRootZoneUpdate(s.bounds.Current(), current, req, warehouseZones)
		if err != nil {
			return err
		}

		updated, err := s.repo.Update(ctx, plan.Apply(current))
		if err != nil {
			return err
		}

		if plan.ShiftsChildren() {
			children, err := s.repo.FindChildren(ctx, id)
			if err != nil {
				return err
			}
			for _, child := range children {
				if _, err := s.repo.Update(ctx, plan.ShiftChild(child)); err != nil {
					return err
				}
			}
		}

		resp = domain.ZoneUpdateResponse{Zone: updated, Status: plan.Status, Warnings: plan.Warnings}
		return nil
	})
	if err != nil {
		return domain.ZoneUpdateResponse{}, s.reject(op, asAppError("Falha interna ao atualizar zona raiz", err))
	}

	s.accept(ctx, op, resp.Status)
	s.logUpdate(resp.Zone.ID, resp.Status, resp.Warnings)
	return resp, nil
}

// UpdateChildZone aplica a atualização de uma zona filha sob req.ParentZoneID.
func (s *Service) UpdateChildZone(ctx context.Context, id int64, req domain.ZoneRequest) (domain.ZoneUpdateResponse, error) {
	const op = "update_child_zone"

	if req.ParentZoneID == nil {
		return domain.ZoneUpdateResponse{}, s.reject(op, apperror.NewPlacementError(apperror.KindMissingParentReference, "parent_zone_id é obrigatório para zonas filhas."))
	}
	parentID := *req.ParentZoneID

	var resp domain.ZoneUpdateResponse
	err := s.tx.WithinLock(ctx, []string{LockParent(parentID), LockColumnShelves(id)}, func(ctx context.Context) error {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if current.IsRoot() {
			return apperror.NewValidationError(fmt.Sprintf("Zona %d é uma zona raiz.", id))
		}

		parent, err := s.repo.FindByID(ctx, parentID)
		if err != nil {
			return err
		}

		siblings, err := s.repo.FindChildren(ctx, parentID)
		if err != nil {
			return err
		}

		plan, err := placement.PlanChildZoneUpdate(current, parent, siblings, req)
		if err != nil {
			return err
		}

		updated, err := s.repo.Update(ctx, plan.Apply(current))
		if err != nil {
			return err
		}

		resp = domain.ZoneUpdateResponse{Zone: updated, Status: plan.Status, Warnings: plan.Warnings}
		return nil
	})
	if err != nil {
		return domain.ZoneUpdateResponse{}, s.reject(op, asAppError("Falha interna ao atualizar zona filha", err))
	}

	s.accept(ctx, op, resp.Status)
	s.logUpdate(resp.Zone.ID, resp.Status, resp.Warnings)
	return resp, nil
}

// DeleteZone remove uma zona sem filhas nem prateleiras.
func (s *Service) DeleteZone(ctx context.Context, id int64) error {
	const op = "delete_zone"

	err := s.tx.WithinLock(ctx, []string{LockParent(id), LockColumnShelves(id)}, func(ctx context.Context) error {
		zone, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := placement.CheckZoneDeletion(zone); err != nil {
			return err
		}
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return s.reject(op, asAppError("Falha interna ao excluir zona", err))
	}

	s.accept(ctx, op, domain.StatusOK)
	s.logger.Info("Zona excluída.", map[string]interface{}{"id": id})
	return nil
}

func (s *Service) accept(ctx context.Context, op string, status domain.UpdateStatus) {
	s.repo.InvalidateLayout(ctx)
	s.recorder.RecordDecision(op, status, nil)
}

func (s *Service) reject(op string, err error) error {
	s.recorder.RecordDecision(op, "", err)
	s.logger.Debug("Operação de zona rejeitada.", map[string]interface{}{"operation": op, "error": err.Error()})
	return err
}

func (s *Service) logUpdate(id int64, status domain.UpdateStatus, warnings []string) {
	fields := map[string]interface{}{"id": id, "status": status, "warnings": warnings}
	if status == domain.StatusWithWarnings {
		s.logger.Warn("Zona atualizada com avisos.", fields)
		return
	}
	s.logger.Info("Zona atualizada.", fields)
}

// asAppError preserva erros de domínio e converte o restante em erro interno.
// Conflitos de serialização que esgotaram as repetições viram ConflictError.
func asAppError(msg string, err error) error {
	if database.IsRetryable(err) {
		return apperror.NewConflictError("Alteração concorrente no layout. Tente novamente.")
	}
	if _, ok := err.(apperror.AppError); ok {
		return err
	}
	return apperror.NewInternalError(msg, err)
}
