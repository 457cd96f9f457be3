package zone

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

// ZoneService define o contrato que o Handler espera da camada de Serviço.
type ZoneService interface {
	ListZones(ctx context.Context) ([]domain.Zone, error)
	GetZone(ctx context.Context, id int64) (domain.Zone, error)
	AddRootZone(ctx context.Context, req domain.ZoneRequest) (domain.Zone, error)
	AddChildZone(ctx context.Context, req domain.ZoneRequest) (domain.Zone, error)
	UpdateRootZone(ctx context.Context, id int64, req domain.ZoneRequest) (domain.ZoneUpdateResponse, error)
	UpdateChildZone(ctx context.Context, id int64, req domain.ZoneRequest) (domain.ZoneUpdateResponse, error)
	DeleteZone(ctx context.Context, id int64) error
}

// Handler agrupa todos os métodos de Handler de zonas.
type Handler struct {
	Service ZoneService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ZoneService, log logger.Logger) *Handler {
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

func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewValidationError(fmt.Sprintf("ID de zona inválido: %q.", raw))
	}
	return id, nil
}

func decodeRequest(r *http.Request) (domain.ZoneRequest, error) {
	var req domain.ZoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, apperror.NewValidationError("Payload inválido. Verifique o formato JSON.")
	}
	return req, nil
}

// ListZonesHandler lida com a requisição GET /v1/zones.
// @Summary Lista todas as zonas
// @Description Retorna o layout completo do armazém.
// @Tags zones
// @Produce json
// @Success 200 {array} domain.Zone "Lista de zonas"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /zones [get]
func (h *Handler) ListZonesHandler(w http.ResponseWriter, r *http.Request) {
	zones, err := h.Service.ListZones(r.Context())
	h.handleServiceResponse(w, r, zones, err, http.StatusOK)
}

// GetZoneHandler lida com a requisição GET /v1/zones/{id}.
// @Summary Obtém uma zona por ID
// @Tags zones
// @Produce json
// @Param id path int true "ID da Zona"
// @Success 200 {object} domain.Zone "Zona encontrada"
// @Failure 404 {object} domain.ErrorResponse "Zona não encontrada"
// @Router /zones/{id} [get]
func (h *Handler) GetZoneHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	zone, err := h.Service.GetZone(r.Context(), id)
	h.handleServiceResponse(w, r, zone, err, http.StatusOK)
}

// AddRootZoneHandler lida com a requisição POST /v1/zones/root.
// @Summary Cria uma zona raiz
// @Description Cria uma zona ancorada no armazém (STORAGE, PARKING, LOADING, UNLOADING).
// @Tags zones
// @Accept json
// @Produce json
// @Param zone body domain.ZoneRequest true "Dados da zona"
// @Success 201 {object} domain.Zone "Zona criada com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload ou tipo inválido"
// @Failure 422 {object} domain.ErrorResponse "Posicionamento rejeitado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /zones/root [post]
func (h *Handler) AddRootZoneHandler(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	created, err := h.Service.AddRootZone(r.Context(), req)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// AddChildZoneHandler lida com a requisição POST /v1/zones/child.
// @Summary Cria uma zona filha
// @Description Cria uma zona dentro de parent_zone_id, respeitando a hierarquia de tipos.
// @Tags zones
// @Accept json
// @Produce json
// @Param zone body domain.ZoneRequest true "Dados da zona, com parent_zone_id"
// @Success 201 {object} domain.Zone "Zona criada com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou pai ausente"
// @Failure 404 {object} domain.ErrorResponse "Zona pai não encontrada"
// @Failure 422 {object} domain.ErrorResponse "Posicionamento rejeitado"
// @Security ApiKeyAuth
// @Router /zones/child [post]
func (h *Handler) AddChildZoneHandler(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	created, err := h.Service.AddChildZone(r.Context(), req)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// UpdateRootZoneHandler lida com a requisição PUT /v1/zones/root/{id}.
// @Summary Atualiza uma zona raiz
// @Description Aplica a atualização possível e devolve os avisos das mudanças puladas.
// @Tags zones
// @Accept json
// @Produce json
// @Param id path int true "ID da Zona"
// @Param zone body domain.ZoneRequest true "Dados da zona"
// @Success 200 {object} domain.ZoneUpdateResponse "Zona atualizada"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Zona não encontrada"
// @Failure 422 {object} domain.ErrorResponse "Fora dos limites do armazém"
// @Security ApiKeyAuth
// @Router /zones/root/{id} [put]
func (h *Handler) UpdateRootZoneHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	req, err := decodeRequest(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	resp, err := h.Service.UpdateRootZone(r.Context(), id, req)
	h.handleServiceResponse(w, r, resp, err, http.StatusOK)
}

// UpdateChildZoneHandler lida com a requisição PUT /v1/zones/child/{id}.
// @Summary Atualiza uma zona filha
// @Tags zones
// @Accept json
// @Produce json
// @Param id path int true "ID da Zona"
// @Param zone body domain.ZoneRequest true "Dados da zona, com parent_zone_id"
// @Success 200 {object} domain.ZoneUpdateResponse "Zona atualizada"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou pai ausente"
// @Failure 404 {object} domain.ErrorResponse "Zona não encontrada"
// @Failure 422 {object} domain.ErrorResponse "Posicionamento rejeitado"
// @Security ApiKeyAuth
// @Router /zones/child/{id} [put]
func (h *Handler) UpdateChildZoneHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	req, err := decodeRequest(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	resp, err := h.Service.UpdateChildZone(r.Context(), id, req)
	h.handleServiceResponse(w, r, resp, err, http.StatusOK)
}

// DeleteZoneHandler lida com a requisição DELETE /v1/zones/{id}.
// @Summary Remove uma zona
// @Description Apenas zonas sem filhas e sem prateleiras podem ser removidas.
// @Tags zones
// @Param id path int true "ID da Zona"
// @Success 204 "Nenhum conteúdo"
// @Failure 404 {object} domain.ErrorResponse "Zona não encontrada"
// @Failure 409 {object} domain.ErrorResponse "Zona possui dependentes"
// @Security ApiKeyAuth
// @Router /zones/{id} [delete]
func (h *Handler) DeleteZoneHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	err = h.Service.DeleteZone(r.Context(), id)
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}
