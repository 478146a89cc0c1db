// Package picking resolves pointer and tap positions to the product tagged on the
// scene node under them.
package picking

import (
	"github.com/rs/zerolog"

	"showroom/internal/camera"
	"showroom/internal/input"
	"showroom/internal/scene"
)

// Pointer is a click or tap in viewport pixels. A locked pointer always aims at the
// viewport center; X and Y are ignored.
type Pointer struct {
	X, Y   float32
	Locked bool
}

// FromTouches returns a pointer at the first touch, or false when there is none.
func FromTouches(touches []input.Touch) (Pointer, bool) {
	if len(touches) == 0 {
		return Pointer{}, false
	}
	return Pointer{X: touches[0].X, Y: touches[0].Y}, true
}

// Viewport is the drawable size in pixels.
type Viewport struct {
	Width, Height int
}

// Hit is the nearest intersected mesh and the product resolved from it.
type Hit struct {
	Node     scene.NodeID
	Distance float32
	Product  scene.ProductID
	Tagged   bool
}

// Picker intersects rays with the meshes under one fixture root. It keeps no state
// between picks.
type Picker struct {
	graph *scene.Graph
	root  scene.NodeID
	log   zerolog.Logger
}

// New returns a picker bounded to root's subtree.
func New(graph *scene.Graph, root scene.NodeID, log zerolog.Logger) *Picker {
	return &Picker{graph: graph, root: root, log: log}
}

// Ray builds the pick ray for a pointer.
func Ray(p Pointer, cam *camera.Camera, vp Viewport) camera.Ray {
	x, y := p.X, p.Y
	if p.Locked {
		x, y = float32(vp.Width)/2, float32(vp.Height)/2
	}
	nx, ny := camera.NDC(x, y, vp.Width, vp.Height)
	return cam.RayFromNDC(nx, ny)
}

// Pick returns the product under the pointer, or false when nothing tagged is hit.
func (p *Picker) Pick(ptr Pointer, cam *camera.Camera, vp Viewport) (scene.ProductID, bool) {
	hit, ok := p.Cast(Ray(ptr, cam, vp))
	if !ok || !hit.Tagged {
		return 0, false
	}
	return hit.Product, true
}

// Cast intersects ray with every mesh under the root and resolves the nearest hit.
// Hit.Tagged is false when the nearest mesh has no tagged ancestor within the root.
func (p *Picker) Cast(ray camera.Ray) (Hit, bool) {
	var best Hit
	found := false
	for _, id := range p.graph.Meshes(p.root) {
		d, ok := p.graph.IntersectRay(id, ray.Origin, ray.Direction)
		if !ok {
			continue
		}
		if !found || d < best.Distance {
			best = Hit{Node: id, Distance: d}
			found = true
		}
	}
	if !found {
		return Hit{}, false
	}
	best.Product, best.Tagged = p.resolve(best.Node)
	p.log.Debug().
		Int("node", int(best.Node)).
		Float32("distance", best.Distance).
		Bool("tagged", best.Tagged).
		Msg("pick hit")
	return best, true
}

// resolve climbs from id to the picker root, inclusive, looking for a product tag.
func (p *Picker) resolve(id scene.NodeID) (scene.ProductID, bool) {
	for cur := id; cur != scene.NoNode; cur = p.graph.Parent(cur) {
		n, ok := p.graph.Node(cur)
		if !ok {
			break
		}
		if n.Tagged {
			return n.Product, true
		}
		if cur == p.root {
			break
		}
	}
	return 0, false
}
