package zone_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"golayout/internal/api/zone"
	"golayout/internal/domain"
	apperror "golayout/internal/errors"
	"golayout/internal/pkg/logger"
)

type MockZoneService struct {
	mock.Mock
}

func (m *MockZoneService) ListZones(ctx context.Context) ([]domain.Zone, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Zone), args.Error(1)
}

func (m *MockZoneService) GetZone(ctx context.Context, id int64) (domain.Zone, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Zone), args.Error(1)
}

func (m *MockZoneService) AddRootZone(ctx context.Context, req domain.ZoneRequest) (domain.Zone, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Zone), args.Error(1)
}

func (m *MockZoneService) AddChildZone(ctx context.Context, req domain.ZoneRequest) (domain.Zone, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Zone), args.Error(1)
}

func (m *MockZoneService) UpdateRootZone(ctx context.Context, id int64, req domain.ZoneRequest) (domain.ZoneUpdateResponse, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(domain.ZoneUpdateResponse), args.Error(1)
}

func (m *MockZoneService) UpdateChildZone(ctx context.Context, id int64, req domain.ZoneRequest) (domain.ZoneUpdateResponse, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(domain.ZoneUpdateResponse), args.Error(1)
}

func (m *MockZoneService) DeleteZone(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newRouter(svc *MockZoneService) *mux.Router {
	h := zone.NewHandler(svc, logger.Nop())
	r := mux.NewRouter()
	r.HandleFunc("/v1/zones", h.ListZonesHandler).Methods(http.MethodGet)
	r.HandleFunc("/v1/zones/{id}", h.GetZoneHandler).Methods(http.MethodGet)
	r.HandleFunc("/v1/zones/root", h.AddRootZoneHandler).Methods(http.MethodPost)
	r.HandleFunc("/v1/zones/root/{id}", h.UpdateRootZoneHandler).Methods(http.MethodPut)
	r.HandleFunc("/v1/zones/{id}", h.DeleteZoneHandler).Methods(http.MethodDelete)
	return r
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) domain.ErrorResponse {
	t.Helper()
	var body domain.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestAddRootZoneHandler_Created(t *testing.T) {
	svc := new(MockZoneService)
	svc.On("AddRootZone", mock.Anything, mock.MatchedBy(func(req domain.ZoneRequest) bool {
		return req.Type == "STORAGE" && req.Width == 20 && req.Length == 30
	})).Return(domain.Zone{ID: 1, Name: "STORAGE-aaaa0001"}, nil)

	body := `{"type":"STORAGE","origin_x":0,"origin_y":0,"width":20,"length":30,"rotation_angle":0,"face_direction":"UP"}`
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/zones/root", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var created domain.Zone
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "STORAGE-aaaa0001", created.Name)
}

func TestAddRootZoneHandler_PlacementRejected(t *testing.T) {
	svc := new(MockZoneService)
	svc.On("AddRootZone", mock.Anything, mock.Anything).
		Return(domain.Zone{}, apperror.NewPlacementError(apperror.KindOverlapsSibling, "A zona sobrepõe a zona STORAGE-aaaa0001."))

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/zones/root", strings.NewReader(`{"type":"PARKING"}`)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "OVERLAPS_SIBLING", decodeError(t, rec).Category)
}

func TestAddRootZoneHandler_InvalidJSON(t *testing.T) {
	svc := new(MockZoneService)

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/zones/root", strings.NewReader(`{`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec).Category)
	svc.AssertNotCalled(t, "AddRootZone", mock.Anything, mock.Anything)
}

func TestUpdateRootZoneHandler_ReturnsWarnings(t *testing.T) {
	svc := new(MockZoneService)
	svc.On("UpdateRootZone", mock.Anything, int64(1), mock.Anything).Return(domain.ZoneUpdateResponse{
		Zone:     domain.Zone{ID: 1},
		Status:   domain.StatusWithWarnings,
		Warnings: []string{"A zona sobrepõe os limites de zonas vizinhas"},
	}, nil)

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/v1/zones/root/1", strings.NewReader(`{"type":"STORAGE"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp domain.ZoneUpdateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, domain.StatusWithWarnings, resp.Status)
	assert.Len(t, resp.Warnings, 1)
}

func TestGetZoneHandler(t *testing.T) {
	t.Run("id inválido", func(t *testing.T) {
		svc := new(MockZoneService)
		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/zones/abc", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "GetZone", mock.Anything, mock.Anything)
	})

	t.Run("não encontrada", func(t *testing.T) {
		svc := new(MockZoneService)
		svc.On("GetZone", mock.Anything, int64(9)).Return(domain.Zone{}, apperror.NewEntityNotFoundError("Zona", 9))

		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/zones/9", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteZoneHandler(t *testing.T) {
	svc := new(MockZoneService)
	svc.On("DeleteZone", mock.Anything, int64(3)).Return(nil)
	svc.On("DeleteZone", mock.Anything, int64(1)).
		Return(apperror.NewPlacementError(apperror.KindZoneHasDependents, "A zona 1 não pode ser excluída."))

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/zones/3", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/zones/1", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "ZONE_HAS_DEPENDENTS", decodeError(t, rec).Category)
}

func TestListZonesHandler_InternalError(t *testing.T) {
	svc := new(MockZoneService)
	svc.On("ListZones", mock.Anything).Return([]domain.Zone(nil), apperror.NewInternalError("Falha interna ao listar zonas", nil))

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/zones", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
