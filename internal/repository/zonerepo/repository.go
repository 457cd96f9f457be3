package zonerepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"golayout/internal/domain"
	"golayout/internal/errors"
	"golayout/internal/pkg/cache"
	"golayout/internal/pkg/database"
	"golayout/internal/pkg/logger"
)

// ZoneRepository persiste zonas no PostgreSQL.
// Dentro de TxManager.WithinLock as consultas usam a transação do contexto.
type ZoneRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewZoneRepository cria o repositório.
func NewZoneRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, log logger.Logger) *ZoneRepository {
	return &ZoneRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    log,
	}
}

const selectZone = `
    SELECT z.id, z.code, z.name, z.kind, z.origin_x, z.origin_y, z.width, z.length,
           z.rotation_angle, z.face_direction, z.entry_node_id, z.parent_zone_id, z.description,
           z.created_at, z.updated_at,
           COALESCE((SELECT array_agg(c.id ORDER BY c.id) FROM zones c WHERE c.parent_zone_id = z.id), '{}') AS child_ids,
           COALESCE((SELECT array_agg(s.id ORDER BY s.id) FROM shelves s WHERE s.column_zone_id = z.id), '{}') AS shelf_ids
    FROM zones z`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanZone(row rowScanner) (domain.Zone, error) {
	var (
		z        domain.Zone
		entry    sql.NullString
		parentID sql.NullInt64
		childIDs []int64
		shelfIDs []int64
	)
	err := row.Scan(
		&z.ID, &z.Code, &z.Name, &z.Kind, &z.OriginX, &z.OriginY, &z.Width, &z.Length,
		&z.Rotation, &z.FaceDirection, &entry, &parentID, &z.Description,
		&z.CreatedAt, &z.UpdatedAt,
		pq.Array(&childIDs), pq.Array(&shelfIDs),
	)
	if err != nil {
		return domain.Zone{}, err
	}
	if parentID.Valid {
		id := parentID.Int64
		z.ParentID = &id
	}
	z.EntryNodeID = database.StringPtr(entry)
	z.ChildIDs = nonNil(childIDs)
	z.ShelfIDs = nonNil(shelfIDs)
	return z, nil
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func (r *ZoneRepository) findOne(ctx context.Context, where string, arg interface{}, notFound func() error) (domain.Zone, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	z, err := scanZone(database.Conn(ctx, r.DB).QueryRowContext(ctxTimeout, selectZone+" WHERE "+where, arg))
	if err == sql.ErrNoRows {
		return domain.Zone{}, notFound()
	}
	if err != nil {
		r.logger.Error("Falha ao buscar zona no DB.", err)
		return domain.Zone{}, errors.NewDBError("Falha ao buscar zona", err)
	}
	return z, nil
}

// FindByID busca uma zona pelo ID.
func (r *ZoneRepository) FindByID(ctx context.Context, id int64) (domain.Zone, error) {
	r.logger.Debug("Iniciando FindByID de zona.", map[string]interface{}{"id": id})
	return r.findOne(ctx, "z.id = $1", id, func() error {
		return errors.NewEntityNotFoundError("Zona", id)
	})
}

// FindByCode busca uma zona pelo código curto.
func (r *ZoneRepository) FindByCode(ctx context.Context, code string) (domain.Zone, error) {
	return r.findOne(ctx, "z.code = $1", code, func() error {
		return errors.NewNotFoundError(fmt.Sprintf("Zona com código %s não encontrada.", code))
	})
}

func (r *ZoneRepository) findMany(ctx context.Context, where string, args ...interface{}) ([]domain.Zone, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := selectZone
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY z.id"

	rows, err := database.Conn(ctx, r.DB).QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao listar zonas.", err)
		return nil, errors.NewDBError("Falha ao listar zonas", err)
	}
	defer rows.Close()

	zones := []domain.Zone{}
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			r.logger.Error("Falha ao mapear zona.", err)
			return nil, errors.NewDBError("Falha ao mapear zonas do DB", err)
		}
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Erro após iteração das zonas.", err)
		return nil, errors.NewDBError("Erro após iteração de zonas", err)
	}
	return zones, nil
}

// FindByKindIn lista as zonas cujos tipos estão em kinds.
func (r *ZoneRepository) FindByKindIn(ctx context.Context, kinds []domain.ZoneKind) ([]domain.Zone, error) {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return r.findMany(ctx, "z.kind = ANY($1)", pq.Array(names))
}

// FindChildren lista as filhas diretas de parentID.
func (r *ZoneRepository) FindChildren(ctx context.Context, parentID int64) ([]domain.Zone, error) {
	return r.findMany(ctx, "z.parent_zone_id = $1", parentID)
}

// FindAll lista todas as zonas usando cache-aside fora de transações.
func (r *ZoneRepository) FindAll(ctx context.Context) ([]domain.Zone, error) {
	_, inTx := database.TxFromContext(ctx)

	if !inTx {
		cached, err := r.Cache.Get(ctx, cache.LayoutKey)
		if err == nil {
			var zones []domain.Zone
			if json.Unmarshal([]byte(cached), &zones) == nil {
				r.logger.Debug("Layout de zonas servido do cache.", map[string]interface{}{"total": len(zones)})
				return zones, nil
			}
		} else if err != cache.ErrCacheMiss {
			r.logger.Warn("Falha ao ler layout do cache.", map[string]interface{}{"error": err.Error()})
		}
	}

	zones, err := r.findMany(ctx, "")
	if err != nil {
		return nil, err
	}

	if !inTx {
		if payload, err := json.Marshal(zones); err == nil {
			if err := r.Cache.Set(ctx, cache.LayoutKey, payload, r.CacheTTL); err != nil {
				r.logger.Warn("Falha ao gravar layout no cache.", map[string]interface{}{"error": err.Error()})
			}
		}
	}
	return zones, nil
}

// InvalidateLayout descarta o layout em cache. Chamado após cada commit que altera zonas ou prateleiras.
func (r *ZoneRepository) InvalidateLayout(ctx context.Context) {
	if err := r.Cache.Delete(ctx, cache.LayoutKey); err != nil {
		r.logger.Warn("Falha ao invalidar layout no cache.", map[string]interface{}{"error": err.Error()})
	}
}

// Create insere a zona. Código duplicado vira ConflictError.
func (r *ZoneRepository) Create(ctx context.Context, z domain.Zone) (domain.Zone, error) {
	r.logger.Debug("Iniciando Create de zona.", map[string]interface{}{"code": z.Code, "kind": z.Kind})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        INSERT INTO zones (code, name, kind, origin_x, origin_y, width, length,
                           rotation_angle, face_direction, entry_node_id, parent_zone_id, description)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id, created_at, updated_at`

	err := database.Conn(ctx, r.DB).QueryRowContext(ctxTimeout, query,
		z.Code, z.Name, z.Kind, z.OriginX, z.OriginY, z.Width, z.Length,
		z.Rotation, z.FaceDirection, database.NullString(z.EntryNodeID), nullableID(z.ParentID), z.Description,
	).Scan(&z.ID, &z.CreatedAt, &z.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.Zone{}, errors.NewConflictError(fmt.Sprintf("Código de zona %s já está em uso.", z.Code))
		}
		r.logger.Error("Falha ao inserir zona no DB.", err)
		return domain.Zone{}, errors.NewDBError("Falha ao criar zona", err)
	}

	z.ChildIDs = nonNil(z.ChildIDs)
	z.ShelfIDs = nonNil(z.ShelfIDs)
	r.logger.Info("Zona criada.", map[string]interface{}{"id": z.ID, "name": z.Name})
	return z, nil
}

// Update grava os campos editáveis da zona, incluindo o pai.
func (r *ZoneRepository) Update(ctx context.Context, z domain.Zone) (domain.Zone, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE zones
        SET name = $1, kind = $2, origin_x = $3, origin_y = $4, width = $5, length = $6,
            rotation_angle = $7, face_direction = $8, entry_node_id = $9, parent_zone_id = $10,
            description = $11, updated_at = NOW()
        WHERE id = $12
        RETURNING updated_at`

	err := database.Conn(ctx, r.DB).QueryRowContext(ctxTimeout, query,
		z.Name, z.Kind, z.OriginX, z.OriginY, z.Width, z.Length,
		z.Rotation, z.FaceDirection, database.NullString(z.EntryNodeID), nullableID(z.ParentID), z.Description, z.ID,
	).Scan(&z.UpdatedAt)
	if err == sql.ErrNoRows {
		return domain.Zone{}, errors.NewEntityNotFoundError("Zona", z.ID)
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar zona no DB.", err)
		return domain.Zone{}, errors.NewDBError("Falha ao atualizar zona", err)
	}

	r.logger.Debug("Zona atualizada.", map[string]interface{}{"id": z.ID})
	return z, nil
}

// Delete remove a zona. Filhas ou prateleiras remanescentes violam a FK e viram ConflictError.
func (r *ZoneRepository) Delete(ctx context.Context, id int64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := database.Conn(ctx, r.DB).ExecContext(ctxTimeout, "DELETE FROM zones WHERE id = $1", id)
	if err != nil {
		if database.PQCode(err) == database.CodeForeignKeyViolation {
			return errors.NewConflictError(fmt.Sprintf("Zona %d ainda possui dependentes.", id))
		}
		r.logger.Error("Falha ao excluir zona no DB.", err)
		return errors.NewDBError("Falha ao excluir zona", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewDBError("Falha ao verificar exclusão da zona", err)
	}
	if affected == 0 {
		return errors.NewEntityNotFoundError("Zona", id)
	}

	r.logger.Info("Zona excluída.", map[string]interface{}{"id": id})
	return nil
}
