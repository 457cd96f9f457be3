package placement

import "golayout/internal/domain"

// ZoneRename troca o tipo e o nome de uma zona.
type ZoneRename struct {
	Kind domain.ZoneKind
	Name string
}

// ZoneMove aplica nova origem e rotação.
type ZoneMove struct {
	OriginX  int
	OriginY  int
	Rotation domain.RotationAngle
}

// ZoneResize aplica novas dimensões sem rotação.
type ZoneResize struct {
	Width  int
	Length int
}

// Offset é o deslocamento (dx, dy) aplicado às zonas filhas diretas.
type Offset struct {
	DX int
	DY int
}

// IsZero indica ausência de deslocamento.
func (o Offset) IsZero() bool { return o.DX == 0 && o.DY == 0 }

// ZoneUpdatePlan descreve quais campos de uma zona mudam, quais foram pulados e por quê.
// O plano é calculado sem efeitos colaterais; Apply e ShiftChild produzem as novas versões.
type ZoneUpdatePlan struct {
	Rename        *ZoneRename
	Move          *ZoneMove
	Resize        *ZoneResize
	Relink        *int64 // novo pai, quando a zona filha muda de pai
	ChildShift    Offset
	FaceDirection domain.FaceDirection
	EntryNodeID   *string
	Description   string
	Warnings      []string
	Status        domain.UpdateStatus
}

// Apply devolve uma cópia de z com o plano aplicado.
func (p ZoneUpdatePlan) Apply(z domain.Zone) domain.Zone {
	if p.Rename != nil {
		z.Kind = p.Rename.Kind
		z.Name = p.Rename.Name
	}
	if p.Move != nil {
		z.OriginX = p.Move.OriginX
		z.OriginY = p.Move.OriginY
		z.Rotation = p.Move.Rotation
	}
	if p.Resize != nil {
		z.Width = p.Resize.Width
		z.Length = p.Resize.Length
	}
	if p.Relink != nil {
		parentID := *p.Relink
		z.ParentID = &parentID
	}
	z.FaceDirection = p.FaceDirection
	z.EntryNodeID = p.EntryNodeID
	z.Description = p.Description
	return z
}

// ShiftsChildren indica se as filhas diretas precisam ser deslocadas.
func (p ZoneUpdatePlan) ShiftsChildren() bool { return !p.ChildShift.IsZero() }

// ShiftChild devolve a filha com a origem deslocada por ChildShift.
// Netas não são tocadas.
func (p ZoneUpdatePlan) ShiftChild(child domain.Zone) domain.Zone {
	child.Rectangle = child.Rectangle.Translate(p.ChildShift.DX, p.ChildShift.DY)
	return child
}

// ShelfResize aplica novo retângulo e altura a uma prateleira.
type ShelfResize struct {
	Rect   domain.Rectangle
	Height int
}

// ShelfUpdatePlan é o equivalente de ZoneUpdatePlan para prateleiras.
type ShelfUpdatePlan struct {
	Resize          *ShelfResize
	Level           *int
	Description     string
	Conditions      map[string]string
	ConnectedNodeID *string
	Warnings        []string
	Status          domain.UpdateStatus
}

// Apply devolve uma cópia de s com o plano aplicado.
func (p ShelfUpdatePlan) Apply(s domain.Shelf) domain.Shelf {
	if p.Resize != nil {
		s.Rectangle = p.Resize.Rect
		s.Height = p.Resize.Height
	}
	if p.Level != nil {
		s.Level = *p.Level
	}
	s.Description = p.Description
	s.Conditions = copyConditions(p.Conditions)
	s.ConnectedNodeID = p.ConnectedNodeID
	return s
}

func copyConditions(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// warnings acumula avisos e rebaixa o status quando uma mudança é pulada.
type warnings struct {
	list   []string
	status domain.UpdateStatus
}

func newWarnings() *warnings {
	return &warnings{list: []string{}, status: domain.StatusOK}
}

// note registra um aviso informativo sem rebaixar o status.
func (w *warnings) note(msg string) { w.list = append(w.list, msg) }

// degrade registra um aviso e rebaixa o status para OK_WITH_WARNINGS.
func (w *warnings) degrade(msg string) {
	w.list = append(w.list, msg)
	w.status = domain.StatusWithWarnings
}
