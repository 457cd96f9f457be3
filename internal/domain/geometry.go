package domain

import (
	"fmt"
	"math"
	"strings"
)

// Rectangle é um retângulo inteiro semiaberto [OriginX, OriginX+Width) x [OriginY, OriginY+Length).
// Width e Length são as dimensões sem rotação (lado menor / lado maior por convenção).
type Rectangle struct {
	OriginX int `json:"origin_x" example:"0"`
	OriginY int `json:"origin_y" example:"0"`
	Width   int `json:"width" example:"20"`
	Length  int `json:"length" example:"30"`
}

// FitsInt32 indica se origem e dimensões cabem numa coluna INTEGER do PostgreSQL.
func (r Rectangle) FitsInt32() bool {
	for _, v := range []int{r.OriginX, r.OriginY, r.Width, r.Length} {
		if v < math.MinInt32 || v > math.MaxInt32 {
			return false
		}
	}
	return true
}

// Translate desloca a origem do retângulo mantendo as dimensões.
func (r Rectangle) Translate(dx, dy int) Rectangle {
	r.OriginX += dx
	r.OriginY += dy
	return r
}

// RotationAngle é o ângulo de rotação de uma zona no mapa.
type RotationAngle int

const (
	Rotation0   RotationAngle = 0
	Rotation90  RotationAngle = 90
	Rotation180 RotationAngle = 180
	Rotation270 RotationAngle = 270
)

// Valid indica se o ângulo é um dos quatro valores aceitos.
func (a RotationAngle) Valid() bool {
	switch a {
	case Rotation0, Rotation90, Rotation180, Rotation270:
		return true
	}
	return false
}

// FaceDirection orienta o ponto de entrada de uma zona, independente da rotação.
type FaceDirection string

const (
	FaceUp     FaceDirection = "UP"
	FaceRight  FaceDirection = "RIGHT"
	FaceBottom FaceDirection = "BOTTOM"
	FaceLeft   FaceDirection = "LEFT"
)

// Angle retorna o ângulo associado à direção.
func (d FaceDirection) Angle() int {
	switch d {
	case FaceRight:
		return 90
	case FaceBottom:
		return 180
	case FaceLeft:
		return 270
	default:
		return 0
	}
}

// ParseFaceDirection aceita os nomes canônicos e os pontos cardeais, sem diferenciar maiúsculas.
func ParseFaceDirection(value string) (FaceDirection, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "up", "north":
		return FaceUp, nil
	case "right", "east":
		return FaceRight, nil
	case "down", "bottom", "south":
		return FaceBottom, nil
	case "left", "west":
		return FaceLeft, nil
	}
	return "", fmt.Errorf("direção desconhecida: %q", value)
}
