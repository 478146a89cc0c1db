package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrUnknownNode is returned when a NodeID does not belong to the graph.
	ErrUnknownNode = errors.New("scene: unknown node")
	// ErrDuplicateName is returned when a named node would shadow another.
	ErrDuplicateName = errors.New("scene: duplicate node name")
)

// ProductID identifies a catalog product attached to a group of meshes.
type ProductID uint64

// NodeID indexes a node in its Graph. IDs are stable for the graph's lifetime.
type NodeID int

// NoNode is the parent of the root.
const NoNode NodeID = -1

// Transform is a node's placement relative to its parent. Rotation holds
// Euler angles in radians applied X, then Y, then Z.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// Identity returns the unit transform.
func Identity() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

// Matrix returns T * R * S.
func (t Transform) Matrix() mgl32.Mat4 {
	s := t.Scale
	if s == (mgl32.Vec3{}) {
		s = mgl32.Vec3{1, 1, 1}
	}
	r := mgl32.HomogRotate3DX(t.Rotation.X()).
		Mul4(mgl32.HomogRotate3DY(t.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(t.Rotation.Z()))
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(r).
		Mul4(mgl32.Scale3D(s.X(), s.Y(), s.Z()))
}

// Node is one element of the scene. Product is meaningful only when Tagged.
type Node struct {
	Name     string
	Parent   NodeID
	Children []NodeID
	Local    Transform
	Mesh     *Mesh
	Product  ProductID
	Tagged   bool
	// Solid meshes are also added to the physics world as static boxes.
	Solid bool
	// Spin is the yaw increment in radians applied on every Advance.
	Spin float32
}

// Graph is an arena of nodes addressed by NodeID. Node 0 is the root.
type Graph struct {
	nodes  []Node
	byName map[string]NodeID
}

// NewGraph returns a graph holding only the root node.
func NewGraph() *Graph {
	g := &Graph{byName: make(map[string]NodeID)}
	g.nodes = append(g.nodes, Node{Name: "root", Parent: NoNode, Local: Identity()})
	g.byName["root"] = 0
	return g
}

// Root returns the root node id.
func (g *Graph) Root() NodeID { return 0 }

// Len returns the number of nodes including the root.
func (g *Graph) Len() int { return len(g.nodes) }

func (g *Graph) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

// Add attaches n under parent and returns its id. n.Parent and n.Children are overwritten.
func (g *Graph) Add(parent NodeID, n Node) (NodeID, error) {
	if !g.valid(parent) {
		return NoNode, fmt.Errorf("%w: parent %d", ErrUnknownNode, parent)
	}
	if n.Name != "" {
		if _, exists := g.byName[n.Name]; exists {
			return NoNode, fmt.Errorf("%w: %q", ErrDuplicateName, n.Name)
		}
	}
	id := NodeID(len(g.nodes))
	n.Parent = parent
	n.Children = nil
	g.nodes = append(g.nodes, n)
	g.nodes[parent].Children = append(g.nodes[parent].Children, id)
	if n.Name != "" {
		g.byName[n.Name] = id
	}
	return id, nil
}

// Node returns a copy of the node.
func (g *Graph) Node(id NodeID) (Node, bool) {
	if !g.valid(id) {
		return Node{}, false
	}
	return g.nodes[id], true
}

// Lookup finds a node by name.
func (g *Graph) Lookup(name string) (NodeID, bool) {
	id, ok := g.byName[name]
	return id, ok
}

// Parent returns the parent id, or NoNode for the root and unknown ids.
func (g *Graph) Parent(id NodeID) NodeID {
	if !g.valid(id) {
		return NoNode
	}
	return g.nodes[id].Parent
}

// SetLocal replaces a node's local transform.
func (g *Graph) SetLocal(id NodeID, t Transform) error {
	if !g.valid(id) {
		return fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	g.nodes[id].Local = t
	return nil
}

// SetSpin sets the per-Advance yaw increment of a node.
func (g *Graph) SetSpin(id NodeID, radians float32) error {
	if !g.valid(id) {
		return fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	g.nodes[id].Spin = radians
	return nil
}

// World returns the node's world matrix.
func (g *Graph) World(id NodeID) mgl32.Mat4 {
	m := mgl32.Ident4()
	for cur := id; g.valid(cur); cur = g.nodes[cur].Parent {
		m = g.nodes[cur].Local.Matrix().Mul4(m)
	}
	return m
}

// Walk visits root and its descendants depth first, parents before children.
// Returning false from fn skips the node's subtree.
func (g *Graph) Walk(root NodeID, fn func(id NodeID, n *Node) bool) {
	if !g.valid(root) {
		return
	}
	stack := []NodeID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(id, &g.nodes[id]) {
			continue
		}
		kids := g.nodes[id].Children
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
}

// Meshes flattens root's subtree (root included) to the nodes carrying a mesh.
func (g *Graph) Meshes(root NodeID) []NodeID {
	var out []NodeID
	g.Walk(root, func(id NodeID, n *Node) bool {
		if n.Mesh != nil {
			out = append(out, id)
		}
		return true
	})
	return out
}

// ProductOf walks from id towards the root and returns the first product tag found,
// starting with id itself.
func (g *Graph) ProductOf(id NodeID) (ProductID, bool) {
	for cur := id; g.valid(cur); cur = g.nodes[cur].Parent {
		if g.nodes[cur].Tagged {
			return g.nodes[cur].Product, true
		}
	}
	return 0, false
}

// Advance applies every node's Spin once.
func (g *Graph) Advance() {
	for i := range g.nodes {
		if g.nodes[i].Spin != 0 {
			g.nodes[i].Local.Rotation[1] += g.nodes[i].Spin
		}
	}
}

// IntersectRay tests the ray against the node's own mesh in world space and returns the
// nearest hit distance in units of dir.
func (g *Graph) IntersectRay(id NodeID, origin, dir mgl32.Vec3) (float32, bool) {
	if !g.valid(id) || g.nodes[id].Mesh == nil {
		return 0, false
	}
	world := g.World(id)
	best, hit := float32(0), false
	for _, tri := range g.nodes[id].Mesh.Triangles {
		wt := Triangle{
			transformPoint(world, tri[0]),
			transformPoint(world, tri[1]),
			transformPoint(world, tri[2]),
		}
		if t, ok := IntersectTriangle(origin, dir, wt); ok && (!hit || t < best) {
			best, hit = t, true
		}
	}
	return best, hit
}

// Bounds returns the world-space AABB of a node's mesh.
func (g *Graph) Bounds(id NodeID) (lo, hi mgl32.Vec3, ok bool) {
	if !g.valid(id) || g.nodes[id].Mesh == nil || len(g.nodes[id].Mesh.Triangles) == 0 {
		return lo, hi, false
	}
	world := g.World(id)
	first := true
	for _, tri := range g.nodes[id].Mesh.Triangles {
		for _, v := range tri {
			p := transformPoint(world, v)
			if first {
				lo, hi, first = p, p, false
				continue
			}
			for i := 0; i < 3; i++ {
				lo[i] = min(lo[i], p[i])
				hi[i] = max(hi[i], p[i])
			}
		}
	}
	return lo, hi, true
}

// Solids returns the solid mesh nodes under root.
func (g *Graph) Solids(root NodeID) []NodeID {
	var out []NodeID
	g.Walk(root, func(id NodeID, n *Node) bool {
		if n.Mesh != nil && n.Solid {
			out = append(out, id)
		}
		return true
	})
	return out
}
