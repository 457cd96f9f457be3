package shelf

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"golayout/internal/domain"
	apperror "golayout/internal/errors"
	"golayout/internal/pkg/logger"
)

// ShelfService define o contrato que o Handler espera da camada de Serviço.
type ShelfService interface {
	ListShelves(ctx context.Context) ([]domain.Shelf, error)
	GetShelf(ctx context.Context, id int64) (domain.Shelf, error)
	AddShelf(ctx context.Context, req domain.ShelfRequest) (domain.Shelf, error)
	AssignShelfToColumn(ctx context.Context, shelfID, columnID int64) (domain.Shelf, error)
	UpdateShelf(ctx context.Context, id int64, req domain.ShelfRequest) (domain.ShelfUpdateResponse, error)
	SetShelfOccupancy(ctx context.Context, id int64, occupied bool) (domain.Shelf, error)
	DeleteShelf(ctx context.Context, id int64) error
}

// Handler agrupa todos os métodos de Handler de prateleiras.
type Handler struct {
	Service ShelfService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ShelfService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
			}
		}
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{Code: status, Category: category, Message: message})
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewValidationError(fmt.Sprintf("Parâmetro %s inválido: %q.", name, raw))
	}
	return id, nil
}

// ListShelvesHandler lida com a requisição GET /v1/shelves.
// @Summary Lista todas as prateleiras
// @Tags shelves
// @Produce json
// @Success 200 {array} domain.Shelf "Lista de prateleiras"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /shelves [get]
func (h *Handler) ListShelvesHandler(w http.ResponseWriter, r *http.Request) {
	shelves, err := h.Service.ListShelves(r.Context())
	h.handleServiceResponse(w, r, shelves, err, http.StatusOK)
}

// GetShelfHandler lida com a requisição GET /v1/shelves/{id}.
// @Summary Obtém uma prateleira por ID
// @Tags shelves
// @Produce json
// @Param id path int true "ID da Prateleira"
// @Success 200 {object} domain.Shelf "Prateleira encontrada"
// @Failure 404 {object} domain.ErrorResponse "Prateleira não encontrada"
// @Router /shelves/{id} [get]
func (h *Handler) GetShelfHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	shelf, err := h.Service.GetShelf(r.Context(), id)
	h.handleServiceResponse(w, r, shelf, err, http.StatusOK)
}

// AddShelfHandler lida com a requisição POST /v1/shelves.
// @Summary Cria uma prateleira
// @Description A prateleira nasce inativa e sem coluna.
// @Tags shelves
// @Accept json
// @Produce json
// @Param shelf body domain.ShelfRequest true "Dados da prateleira"
// @Success 201 {object} domain.Shelf "Prateleira criada com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 422 {object} domain.ErrorResponse "Fora dos limites do armazém"
// @Security ApiKeyAuth
// @Router /shelves [post]
func (h *Handler) AddShelfHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.ShelfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}

	created, err := h.Service.AddShelf(r.Context(), req)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// AssignShelfToColumnHandler lida com a requisição PATCH /v1/shelves/{id}/column/{columnId}.
// @Summary Atribui uma prateleira a uma coluna
// @Tags shelves
// @Produce json
// @Param id path int true "ID da Prateleira"
// @Param columnId path int true "ID da Coluna"
// @Success 200 {object} domain.Shelf "Prateleira atribuída"
// @Failure 404 {object} domain.ErrorResponse "Prateleira ou coluna não encontrada"
// @Failure 422 {object} domain.ErrorResponse "Zona não é coluna ou prateleira não cabe"
// @Security ApiKeyAuth
// @Router /shelves/{id}/column/{columnId} [patch]
func (h *Handler) AssignShelfToColumnHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	columnID, err := pathID(r, "columnId")
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	shelf, err := h.Service.AssignShelfToColumn(r.Context(), id, columnID)
	h.handleServiceResponse(w, r, shelf, err, http.StatusOK)
}

// UpdateShelfHandler lida com a requisição PUT /v1/shelves/{id}.
// @Summary Atualiza uma prateleira
// @Description Prateleiras ocupadas mantêm dimensões e nível; descrição e condições são sempre aplicadas.
// @Tags shelves
// @Accept json
// @Produce json
// @Param id path int true "ID da Prateleira"
// @Param shelf body domain.ShelfRequest true "Dados da prateleira"
// @Success 200 {object} domain.ShelfUpdateResponse "Prateleira atualizada"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Prateleira não encontrada"
// @Security ApiKeyAuth
// @Router /shelves/{id} [put]
func (h *Handler) UpdateShelfHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	var req domain.ShelfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}

	resp, err := h.Service.UpdateShelf(r.Context(), id, req)
	h.handleServiceResponse(w, r, resp, err, http.StatusOK)
}

// SetShelfOccupancyHandler lida com a requisição PATCH /v1/shelves/{id}/occupancy.
// @Summary Altera a ocupação de uma prateleira
// @Tags shelves
// @Accept json
// @Produce json
// @Param id path int true "ID da Prateleira"
// @Param occupancy body domain.ShelfOccupancyRequest true "Nova ocupação"
// @Success 200 {object} domain.Shelf "Prateleira atualizada"
// @Failure 404 {object} domain.ErrorResponse "Prateleira não encontrada"
// @Security ApiKeyAuth
// @Router /shelves/{id}/occupancy [patch]
func (h *Handler) SetShelfOccupancyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	var req domain.ShelfOccupancyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}

	shelf, err := h.Service.SetShelfOccupancy(r.Context(), id, req.Occupied)
	h.handleServiceResponse(w, r, shelf, err, http.StatusOK)
}

// DeleteShelfHandler lida com a requisição DELETE /v1/shelves/{id}.
// @Summary Remove uma prateleira
// @Description Prateleiras ocupadas não podem ser removidas.
// @Tags shelves
// @Param id path int true "ID da Prateleira"
// @Success 204 "Nenhum conteúdo"
// @Failure 404 {object} domain.ErrorResponse "Prateleira não encontrada"
// @Failure 409 {object} domain.ErrorResponse "Prateleira ocupada"
// @Security ApiKeyAuth
// @Router /shelves/{id} [delete]
func (h *Handler) DeleteShelfHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	err = h.Service.DeleteShelf(r.Context(), id)
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}
