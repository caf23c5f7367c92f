package gpml

import "github.com/pathmark/pathmark/pkg/model"

// Reconcile resolves the redundant halves of bound coordinates across the
// pathway. A bound line point carries both an absolute board position and a
// position relative to its target's local frame; documents routinely supply
// only one half. When the relative half is present it wins and the absolute
// position is recomputed from the target frame; otherwise the relative half
// is derived from the absolute position. Points bound to anchors pin to the
// anchor's interpolated position on its owning line.
//
// Unresolvable references are left untouched. Decode runs FixReferences
// first, so by the time Reconcile runs every remaining reference has a
// target.
func Reconcile(p *model.Pathway) {
	owners := anchorOwners(p)

	for _, line := range p.Lines() {
		for _, pt := range line.Line().Points {
			if !pt.Bound() {
				continue
			}
			if owner, ok := owners[pt.ElementRef]; ok {
				reconcileAnchorPoint(owner, pt)
				continue
			}
			rect, ok := frameOf(p, pt.ElementRef)
			if !ok {
				continue
			}
			if pt.RelSet {
				pt.X, pt.Y = rect.Absolute(pt.RelX, pt.RelY)
			} else {
				pt.RelX, pt.RelY = rect.Relative(pt.X, pt.Y)
				pt.RelSet = true
			}
		}
	}
}

// anchorOwners maps every named anchor to the line that carries it.
func anchorOwners(p *model.Pathway) map[string]model.LineElement {
	owners := make(map[string]model.LineElement)
	for _, line := range p.Lines() {
		for _, a := range line.Line().Anchors {
			if a.ElementID != "" {
				owners[a.ElementID] = line
			}
		}
	}
	return owners
}

func reconcileAnchorPoint(owner model.LineElement, pt *model.Point) {
	for _, a := range owner.Line().Anchors {
		if a.ElementID != pt.ElementRef {
			continue
		}
		pt.X, pt.Y = owner.Line().AnchorAbsolute(a.Position)
		// An anchor is a point target, not an area: its local frame is the
		// origin.
		pt.RelX, pt.RelY = 0, 0
		pt.RelSet = true
		return
	}
}

// frameOf resolves an element reference to the local frame points and
// states attach to.
func frameOf(p *model.Pathway, id string) (model.RectProps, bool) {
	return frameOfSeen(p, id, make(map[string]bool))
}

// seen breaks reference cycles (a state chained to a state, a group member
// of itself); a revisited identifier resolves to no frame.
func frameOfSeen(p *model.Pathway, id string, seen map[string]bool) (model.RectProps, bool) {
	if seen[id] {
		return model.RectProps{}, false
	}
	seen[id] = true

	ent, ok := p.Registry().Lookup(id)
	if !ok {
		return model.RectProps{}, false
	}
	switch e := ent.(type) {
	case *model.DataNode:
		return e.Rect, true
	case *model.Label:
		return e.Rect, true
	case *model.Shape:
		return e.Rect, true
	case *model.Group:
		return groupFrame(p, e, seen), true
	case *model.State:
		return stateFrame(p, e, seen)
	}
	return model.RectProps{}, false
}

// groupFrame prefers the group's stored geometry and falls back to the
// bounding box of its members when none was stored (the 2013a case).
func groupFrame(p *model.Pathway, g *model.Group, seen map[string]bool) model.RectProps {
	if g.Rect.Width > 0 || g.Rect.Height > 0 {
		return g.Rect
	}

	var minX, minY, maxX, maxY float64
	found := false
	for _, member := range p.GroupMembers(g) {
		rect, ok := frameOfSeen(p, model.ID(member), seen)
		if !ok || (rect.Width == 0 && rect.Height == 0) {
			continue
		}
		left, top := rect.CenterX-rect.Width/2, rect.CenterY-rect.Height/2
		right, bottom := rect.CenterX+rect.Width/2, rect.CenterY+rect.Height/2
		if !found {
			minX, minY, maxX, maxY = left, top, right, bottom
			found = true
			continue
		}
		minX, minY = min(minX, left), min(minY, top)
		maxX, maxY = max(maxX, right), max(maxY, bottom)
	}
	if !found {
		return g.Rect
	}
	return model.RectProps{
		CenterX: (minX + maxX) / 2,
		CenterY: (minY + maxY) / 2,
		Width:   maxX - minX,
		Height:  maxY - minY,
	}
}

// stateFrame positions a state's own frame from its parent frame and the
// state's relative placement on it.
func stateFrame(p *model.Pathway, st *model.State, seen map[string]bool) (model.RectProps, bool) {
	parent, ok := frameOfSeen(p, st.ElementRef, seen)
	if !ok {
		return model.RectProps{}, false
	}
	cx, cy := parent.Absolute(st.RelX, st.RelY)
	return model.RectProps{CenterX: cx, CenterY: cy, Width: st.Width, Height: st.Height}, true
}
