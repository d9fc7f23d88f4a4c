package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/nairan/components"
)

// AttachmentSystem moves attached entities with their owners.
type AttachmentSystem struct {
	filter     *ecs.Filter2[components.Transform, components.Attachment]
	transforms *ecs.Map[components.Transform]
	orphans    []ecs.Entity
}

// NewAttachmentSystem creates a new attachment system.
func NewAttachmentSystem(w *ecs.World) *AttachmentSystem {
	return &AttachmentSystem{
		filter:     ecs.NewFilter2[components.Transform, components.Attachment](w),
		transforms: ecs.NewMap[components.Transform](w),
	}
}

// Update copies owner pose plus the rotated offset. Attachments whose owner
// is gone are removed; the count is returned.
func (s *AttachmentSystem) Update(w *ecs.World) int {
	s.orphans = s.orphans[:0]
	query := s.filter.Query()
	for query.Next() {
		tr, att := query.Get()
		if att.Owner.IsZero() || !w.Alive(att.Owner) || !s.transforms.Has(att.Owner) {
			s.orphans = append(s.orphans, query.Entity())
			continue
		}
		owner := s.transforms.Get(att.Owner)
		tr.Position = r2.Add(owner.Position, r2.Rotate(att.Offset, owner.Rotation, r2.Vec{}))
		tr.Rotation = owner.Rotation
		tr.Z = owner.Z + att.Z
	}

	for _, e := range s.orphans {
		w.RemoveEntity(e)
	}
	return len(s.orphans)
}
