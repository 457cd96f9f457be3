package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// ZoneKind é o tipo de uma zona. As regras de hierarquia ficam no pacote placement.
type ZoneKind string

const (
	KindWarehouse   ZoneKind = "WAREHOUSE"
	KindStorage     ZoneKind = "STORAGE"
	KindColumn      ZoneKind = "COLUMN"
	KindLoading     ZoneKind = "LOADING"
	KindUnloading   ZoneKind = "UNLOADING"
	KindParking     ZoneKind = "PARKING"
	KindParkingSpot ZoneKind = "PARKING_SPOT"
)

// ZoneKinds lista todos os tipos conhecidos, na ordem de declaração.
var ZoneKinds = []ZoneKind{
	KindWarehouse, KindStorage, KindColumn, KindLoading, KindUnloading, KindParking, KindParkingSpot,
}

// NormalizeKind converte um nome livre (e.g. "storage") para a forma canônica.
func NormalizeKind(name string) ZoneKind {
	return ZoneKind(strings.ToUpper(strings.TrimSpace(name)))
}

// Zone representa uma região nomeada do armazém.
// A origem é relativa à zona pai (ou ao armazém, para zonas raiz).
// Relações são mantidas apenas por ID: ParentID, ChildIDs e ShelfIDs.
type Zone struct {
	ID   int64    `json:"id" example:"1"`
	Code string   `json:"code" example:"3f2a9c1d"` // código curto único
	Name string   `json:"name" example:"STORAGE-3f2a9c1d"`
	Kind ZoneKind `json:"type" example:"STORAGE"`
	Rectangle
	Rotation      RotationAngle `json:"rotation_angle" example:"0"`
	FaceDirection FaceDirection `json:"face_direction" example:"UP"`
	EntryNodeID   *string       `json:"entry_node_id,omitempty" example:"node-17"` // nó de entrada no grafo de navegação
	ParentID      *int64        `json:"parent_zone_id,omitempty"`
	ChildIDs      []int64       `json:"child_zone_ids"`
	ShelfIDs      []int64       `json:"shelf_ids"`
	Description   string        `json:"description"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// IsRoot indica se a zona está ancorada diretamente no armazém.
func (z Zone) IsRoot() bool { return z.ParentID == nil }

// MarshalJSON acrescenta face_angle, o ângulo derivado de FaceDirection.
func (z Zone) MarshalJSON() ([]byte, error) {
	type zoneJSON Zone
	return json.Marshal(struct {
		zoneJSON
		FaceAngle int `json:"face_angle"`
	}{zoneJSON(z), z.FaceDirection.Angle()})
}

// ZoneRequest é o payload de criação e atualização de zonas.
// ParentZoneID é ignorado nas operações de zona raiz; Type é ignorado na atualização de zona filha.
type ZoneRequest struct {
	Type string `json:"type" example:"STORAGE"`
	Rectangle
	Rotation      RotationAngle `json:"rotation_angle" example:"0"`
	FaceDirection string        `json:"face_direction" example:"UP"`
	EntryNodeID   *string       `json:"entry_node_id,omitempty" example:"node-17"`
	Description   string        `json:"description"`
	ParentZoneID  *int64        `json:"parent_zone_id,omitempty"`
}

// UpdateStatus é o status de uma atualização aceita.
type UpdateStatus string

const (
	StatusOK           UpdateStatus = "OK"
	StatusWithWarnings UpdateStatus = "OK_WITH_WARNINGS"
)

// ZoneUpdateResponse é o resultado de uma atualização de zona.
type ZoneUpdateResponse struct {
	Zone     Zone         `json:"zone"`
	Status   UpdateStatus `json:"status" example:"OK_WITH_WARNINGS"`
	Warnings []string     `json:"warnings"`
}
