package shelfrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"golayout/internal/domain"
	"golayout/internal/errors"
	"golayout/internal/pkg/database"
	"golayout/internal/pkg/logger"
)

// ShelfRepository persiste prateleiras no PostgreSQL.
type ShelfRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewShelfRepository cria o repositório.
func NewShelfRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *ShelfRepository {
	return &ShelfRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

const selectShelf = `
    SELECT id, name, column_zone_id, origin_x, origin_y, width, length, height, level,
           is_occupied, is_active, description, conditions, connected_node_id, created_at, updated_at
    FROM shelves`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanShelf(row rowScanner) (domain.Shelf, error) {
	var (
		s          domain.Shelf
		columnID   sql.NullInt64
		conditions []byte
		node       sql.NullString
	)
	err := row.Scan(
		&s.ID, &s.Name, &columnID, &s.OriginX, &s.OriginY, &s.Width, &s.Length, &s.Height, &s.Level,
		&s.Occupied, &s.Active, &s.Description, &conditions, &node, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return domain.Shelf{}, err
	}
	if columnID.Valid {
		id := columnID.Int64
		s.ColumnID = &id
	}
	s.ConnectedNodeID = database.StringPtr(node)
	s.Conditions, err = decodeConditions(conditions)
	return s, err
}

func decodeConditions(raw []byte) (map[string]string, error) {
	conditions := map[string]string{}
	if len(raw) == 0 {
		return conditions, nil
	}
	if err := json.Unmarshal(raw, &conditions); err != nil {
		return nil, err
	}
	return conditions, nil
}

// encodeConditions devolve texto: o lib/pq envia []byte como bytea, que o JSONB não aceita.
func encodeConditions(conditions map[string]string) (string, error) {
	if conditions == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(conditions)
	return string(raw), err
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

// FindByID busca uma prateleira pelo ID.
func (r *ShelfRepository) FindByID(ctx context.Context, id int64) (domain.Shelf, error) {
	r.logger.Debug("Iniciando FindByID de prateleira.", map[string]interface{}{"id": id})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	s, err := scanShelf(database.Conn(ctx, r.DB).QueryRowContext(ctxTimeout, selectShelf+" WHERE id = $1", id))
	if err == sql.ErrNoRows {
		return domain.Shelf{}, errors.NewEntityNotFoundError("Prateleira", id)
	}
	if err != nil {
		r.logger.Error("Falha ao buscar prateleira no DB.", err)
		return domain.Shelf{}, errors.NewDBError("Falha ao buscar prateleira", err)
	}
	return s, nil
}

// FindAll lista todas as prateleiras.
func (r *ShelfRepository) FindAll(ctx context.Context) ([]domain.Shelf, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := database.Conn(ctx, r.DB).QueryContext(ctxTimeout, selectShelf+" ORDER BY id")
	if err != nil {
		r.logger.Error("Falha ao listar prateleiras.", err)
		return nil, errors.NewDBError("Falha ao listar prateleiras", err)
	}
	defer rows.Close()

	shelves := []domain.Shelf{}
	for rows.Next() {
		s, err := scanShelf(rows)
		if err != nil {
			r.logger.Error("Falha ao mapear prateleira.", err)
			return nil, errors.NewDBError("Falha ao mapear prateleiras do DB", err)
		}
		shelves = append(shelves, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Erro após iteração de prateleiras", err)
	}

	r.logger.Debug("Prateleiras listadas.", map[string]interface{}{"total": len(shelves)})
	return shelves, nil
}

// Create insere a prateleira.
func (r *ShelfRepository) Create(ctx context.Context, s domain.Shelf) (domain.Shelf, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	conditions, err := encodeConditions(s.Conditions)
	if err != nil {
		return domain.Shelf{}, errors.NewInternalError("Falha ao serializar condições da prateleira", err)
	}

	query := `
        INSERT INTO shelves (name, column_zone_id, origin_x, origin_y, width, length, height, level,
                             is_occupied, is_active, description, conditions, connected_node_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        RETURNING id, created_at, updated_at`

	err = database.Conn(ctx, r.DB).QueryRowContext(ctxTimeout, query,
		s.Name, nullableID(s.ColumnID), s.OriginX, s.OriginY, s.Width, s.Length, s.Height, s.Level,
		s.Occupied, s.Active, s.Description, conditions, database.NullString(s.ConnectedNodeID),
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		r.logger.Error("Falha ao inserir prateleira no DB.", err)
		return domain.Shelf{}, errors.NewDBError("Falha ao criar prateleira", err)
	}

	r.logger.Info("Prateleira criada.", map[string]interface{}{"id": s.ID, "name": s.Name})
	return s, nil
}

// Update grava todos os campos editáveis da prateleira.
func (r *ShelfRepository) Update(ctx context.Context, s domain.Shelf) (domain.Shelf, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	conditions, err := encodeConditions(s.Conditions)
	if err != nil {
		return domain.Shelf{}, errors.NewInternalError("Falha ao serializar condições da prateleira", err)
	}

	query := `
        UPDATE shelves
        SET name = $1, column_zone_id = $2, origin_x = $3, origin_y = $4, width = $5, length = $6,
            height = $7, level = $8, is_occupied = $9, is_active = $10, description = $11,
            conditions = $12, connected_node_id = $13, updated_at = NOW()
        WHERE id = $14
        RETURNING updated_at`

	err = database.Conn(ctx, r.DB).QueryRowContext(ctxTimeout, query,
		s.Name, nullableID(s.ColumnID), s.OriginX, s.OriginY, s.Width, s.Length,
		s.Height, s.Level, s.Occupied, s.Active, s.Description, conditions,
		database.NullString(s.ConnectedNodeID), s.ID,
	).Scan(&s.UpdatedAt)
	if err == sql.ErrNoRows {
		return domain.Shelf{}, errors.NewEntityNotFoundError("Prateleira", s.ID)
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar prateleira no DB.", err)
		return domain.Shelf{}, errors.NewDBError("Falha ao atualizar prateleira", err)
	}
	return s, nil
}

// Delete remove a prateleira.
func (r *ShelfRepository) Delete(ctx context.Context, id int64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := database.Conn(ctx, r.DB).ExecContext(ctxTimeout, "DELETE FROM shelves WHERE id = $1", id)
	if err != nil {
		r.logger.Error("Falha ao excluir prateleira no DB.", err)
		return errors.NewDBError("Falha ao excluir prateleira", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewDBError("Falha ao verificar exclusão da prateleira", err)
	}
	if affected == 0 {
		return errors.NewEntityNotFoundError("Prateleira", id)
	}

	r.logger.Info("Prateleira excluída.", map[string]interface{}{"id": id})
	return nil
}
