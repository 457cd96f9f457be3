// Package placement é o motor de validação geométrica do layout do armazém.
//
// Todas as funções deste pacote são puras: recebem instantâneos (snapshots) das
// zonas e prateleiras envolvidas e devolvem uma rejeição ou um plano de mutação.
// Leitura e escrita no banco, travas e transações ficam na camada de serviço.
package placement

import "golayout/internal/domain"

// DrawnBox retorna o retângulo efetivamente desenhado após a rotação.
// Em 90 e 270 graus largura e comprimento são trocados; a origem não muda.
func DrawnBox(rect domain.Rectangle, rotation domain.RotationAngle) domain.Rectangle {
	if rotation%180 == 0 {
		return rect
	}
	return domain.Rectangle{
		OriginX: rect.OriginX,
		OriginY: rect.OriginY,
		Width:   rect.Length,
		Length:  rect.Width,
	}
}

// ZoneBox é o retângulo desenhado de uma zona no referencial do seu pai.
func ZoneBox(z domain.Zone) domain.Rectangle {
	return DrawnBox(z.Rectangle, z.Rotation)
}

// Contains indica se child está inteiramente dentro de parent.
// Ambos devem estar no mesmo referencial; encostar na borda é permitido.
// A comparação usa diferenças, não bordas somadas, e não transborda com
// coordenadas próximas dos limites de int.
func Contains(child, parent domain.Rectangle) bool {
	return spanWithin(child.OriginX, child.Width, parent.OriginX, parent.Width) &&
		spanWithin(child.OriginY, child.Length, parent.OriginY, parent.Length)
}

// ContainsLocal verifica um retângulo com origem relativa ao pai, comparando-o
// com o pai levado à origem.
func ContainsLocal(localChild, parent domain.Rectangle) bool {
	return Contains(localChild, domain.Rectangle{Width: parent.Width, Length: parent.Length})
}

// Intersects indica interseção com área positiva. Retângulos que apenas
// compartilham uma borda não se sobrepõem.
func Intersects(a, b domain.Rectangle) bool {
	return spansOverlap(a.OriginX, a.Width, b.OriginX, b.Width) &&
		spansOverlap(a.OriginY, a.Length, b.OriginY, b.Length)
}

// spanWithin indica se [start, start+size) cabe em [outer, outer+outerSize).
// start >= outer garante que a diferença, lida sem sinal, é a distância real.
func spanWithin(start, size, outer, outerSize int) bool {
	if size < 0 || outerSize < 0 || start < outer || size > outerSize {
		return false
	}
	return uint(start-outer) <= uint(outerSize-size)
}

// spansOverlap indica se [a, a+aSize) e [b, b+bSize) compartilham comprimento positivo.
func spansOverlap(a, aSize, b, bSize int) bool {
	if aSize <= 0 || bSize <= 0 {
		return false
	}
	if a <= b {
		return uint(b-a) < uint(aSize)
	}
	return uint(a-b) < uint(bSize)
}
