package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados do serviço.
// Ela permite que o código externo (Handler) acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "NOT_FOUND", "OVERLAPS_SIBLING")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// --- Tipos de Erro Específicos (Erros de Domínio) ---

// ValidationError representa falhas de validação de dados de entrada.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound } // 404
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// NewEntityNotFoundError é um atalho para "<entidade> com ID <id> não encontrada".
func NewEntityNotFoundError(entity string, id int64) AppError {
	return NewNotFoundError(fmt.Sprintf("%s com ID %d não encontrada.", entity, id))
}

// IsNotFound indica se err (ou algum erro encapsulado) é um NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return stderrors.As(err, &nf)
}

// ConflictError representa um conflito na regra de negócio (e.g., código duplicado, transação concorrente).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("Conflito de estado: %s", e.Msg) }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict } // 409
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError cria um novo erro de conflito.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// UnauthorizedError representa falta de credenciais válidas.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("Não autorizado: %s", e.Msg) }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um novo erro de autorização.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// RateLimitError indica que o cliente excedeu o limite de requisições.
type RateLimitError struct {
	Msg string
}

func (e *RateLimitError) Error() string    { return fmt.Sprintf("Limite excedido: %s", e.Msg) }
func (e *RateLimitError) Category() string { return "RATE_LIMITED" }
func (e *RateLimitError) HTTPStatus() int  { return http.StatusTooManyRequests } // 429
func (e *RateLimitError) Unwrap() error    { return nil }

// NewRateLimitError cria um erro de limite de requisições.
func NewRateLimitError(msg string) AppError {
	return &RateLimitError{Msg: msg}
}

// --- Rejeições de Posicionamento ---

// PlacementKind identifica o motivo de uma rejeição do motor de posicionamento.
type PlacementKind string

const (
	KindInvalidKind            PlacementKind = "INVALID_KIND"
	KindOutOfWarehouseBounds   PlacementKind = "OUT_OF_WAREHOUSE_BOUNDS"
	KindOutOfParentBounds      PlacementKind = "OUT_OF_PARENT_BOUNDS"
	KindOverlapsSibling        PlacementKind = "OVERLAPS_SIBLING"
	KindDisallowedChildKind    PlacementKind = "DISALLOWED_CHILD_KIND"
	KindMissingParentReference PlacementKind = "MISSING_PARENT_REFERENCE"
	KindColumnMismatch         PlacementKind = "COLUMN_MISMATCH"
	KindShelfOutOfColumnBounds PlacementKind = "SHELF_OUT_OF_COLUMN_BOUNDS"
	KindZoneHasDependents      PlacementKind = "ZONE_HAS_DEPENDENTS"
	KindShelfOccupied          PlacementKind = "SHELF_OCCUPIED"
)

// PlacementError é uma rejeição definitiva: nenhuma escrita parcial acontece.
type PlacementError struct {
	Kind PlacementKind
	Msg  string
}

func (e *PlacementError) Error() string    { return fmt.Sprintf("Posicionamento rejeitado: %s", e.Msg) }
func (e *PlacementError) Category() string { return string(e.Kind) }
func (e *PlacementError) Unwrap() error    { return nil }

func (e *PlacementError) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidKind, KindMissingParentReference:
		return http.StatusBadRequest // 400
	case KindZoneHasDependents, KindShelfOccupied:
		return http.StatusConflict // 409
	default:
		return http.StatusUnprocessableEntity // 422
	}
}

// Is permite errors.Is(err, ErrOverlapsSibling) comparando apenas o Kind.
func (e *PlacementError) Is(target error) bool {
	t, ok := target.(*PlacementError)
	return ok && t.Kind == e.Kind
}

// NewPlacementError cria uma rejeição de posicionamento.
func NewPlacementError(kind PlacementKind, msg string) AppError {
	return &PlacementError{Kind: kind, Msg: msg}
}

// Sentinelas para comparação com errors.Is.
var (
	ErrInvalidKind            = &PlacementError{Kind: KindInvalidKind}
	ErrOutOfWarehouseBounds   = &PlacementError{Kind: KindOutOfWarehouseBounds}
	ErrOutOfParentBounds      = &PlacementError{Kind: KindOutOfParentBounds}
	ErrOverlapsSibling        = &PlacementError{Kind: KindOverlapsSibling}
	ErrDisallowedChildKind    = &PlacementError{Kind: KindDisallowedChildKind}
	ErrMissingParentReference = &PlacementError{Kind: KindMissingParentReference}
	ErrColumnMismatch         = &PlacementError{Kind: KindColumnMismatch}
	ErrShelfOutOfColumnBounds = &PlacementError{Kind: KindShelfOutOfColumnBounds}
	ErrZoneHasDependents      = &PlacementError{Kind: KindZoneHasDependents}
	ErrShelfOccupied          = &PlacementError{Kind: KindShelfOccupied}
)

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver SQL)
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Erro Interno: %s", e.Msg) }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (DB): %s", msg, err.Error()), err)
}

// --- Helper para o Handler (Tradução Final) ---

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP e corpo de resposta.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	// Erro não tipado: tratado como erro interno genérico.
	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Ocorreu um erro inesperado."
}
