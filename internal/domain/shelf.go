package domain

import "time"

// Shelf é uma unidade de armazenagem posicionada dentro de uma coluna.
// A origem é relativa à coluna; Height é a terceira dimensão e não participa das verificações 2D.
type Shelf struct {
	ID       int64  `json:"id" example:"7"`
	Name     string `json:"name" example:"SHELF-3f2a9c1d-81be0c44-2"`
	ColumnID *int64 `json:"column_zone_id,omitempty"`
	Rectangle
	Height          int               `json:"height" example:"200"`
	Level           int               `json:"level" example:"2"`
	Occupied        bool              `json:"is_occupied"`
	Active          bool              `json:"is_active"`
	Description     string            `json:"description"`
	Conditions      map[string]string `json:"conditions"`
	ConnectedNodeID *string           `json:"connected_node_id,omitempty" example:"node-42"` // nó do grafo de navegação
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// ShelfRequest é o payload de criação e atualização de prateleiras.
type ShelfRequest struct {
	Rectangle
	Height          int               `json:"height" example:"200"`
	Level           int               `json:"level" example:"2"`
	Description     string            `json:"description"`
	Conditions      map[string]string `json:"conditions"`
	ConnectedNodeID *string           `json:"connected_node_id,omitempty" example:"node-42"`
}

// ShelfOccupancyRequest altera a ocupação de uma prateleira.
type ShelfOccupancyRequest struct {
	Occupied bool `json:"is_occupied"`
}

// ShelfUpdateResponse é o resultado de uma atualização de prateleira.
type ShelfUpdateResponse struct {
	Shelf    Shelf        `json:"shelf"`
	Status   UpdateStatus `json:"status" example:"OK"`
	Warnings []string     `json:"warnings"`
}
