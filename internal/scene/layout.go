package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownTemplate is returned when a node references a template that is not defined.
	ErrUnknownTemplate = errors.New("scene: unknown template")
	// ErrTemplateCycle is returned when templates instantiate each other without end.
	ErrTemplateCycle = errors.New("scene: template cycle")
)

// maxTemplateDepth bounds nested template instantiation.
const maxTemplateDepth = 16

// Layout is the on-disk description of a scene: reusable templates plus the node tree.
type Layout struct {
	Templates map[string]NodeSpec `yaml:"templates"`
	Nodes     []NodeSpec          `yaml:"nodes"`
}

// NodeSpec describes one node. Box holds half extents and gives the node a box mesh.
// A non-zero ProductID tags the node as a product group.
type NodeSpec struct {
	Name      string      `yaml:"name"`
	Template  string      `yaml:"template,omitempty"`
	ProductID uint64      `yaml:"product_id,omitempty"`
	Position  mgl32.Vec3  `yaml:"position,omitempty"`
	Rotation  mgl32.Vec3  `yaml:"rotation,omitempty"`
	Scale     *mgl32.Vec3 `yaml:"scale,omitempty"`
	Box       *mgl32.Vec3 `yaml:"box,omitempty"`
	Solid     bool        `yaml:"solid,omitempty"`
	Spin      float32     `yaml:"spin,omitempty"`
	Children  []NodeSpec  `yaml:"children,omitempty"`
}

func (s NodeSpec) transform() Transform {
	t := Identity()
	t.Position = s.Position
	t.Rotation = s.Rotation
	if s.Scale != nil {
		t.Scale = *s.Scale
	}
	return t
}

// LoadLayout reads and decodes a layout file.
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout %s: %w", path, err)
	}
	l, err := DecodeLayout(bytes.NewReader(data))
	if err != nil {
		return Layout{}, fmt.Errorf("layout %s: %w", path, err)
	}
	return l, nil
}

// DecodeLayout decodes a layout, rejecting unknown keys.
func DecodeLayout(r io.Reader) (Layout, error) {
	var l Layout
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil && !errors.Is(err, io.EOF) {
		return Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	return l, nil
}

// Build instantiates the layout into a new graph.
func (l Layout) Build() (*Graph, error) {
	g := NewGraph()
	for _, spec := range l.Nodes {
		if err := l.add(g, g.Root(), spec, 0); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (l Layout) add(g *Graph, parent NodeID, spec NodeSpec, depth int) error {
	if spec.Template != "" {
		if depth >= maxTemplateDepth {
			return fmt.Errorf("%w: %q", ErrTemplateCycle, spec.Template)
		}
		inst, err := l.instantiate(spec)
		if err != nil {
			return err
		}
		return l.add(g, parent, inst, depth+1)
	}

	n := Node{
		Name:    spec.Name,
		Local:   spec.transform(),
		Product: ProductID(spec.ProductID),
		Tagged:  spec.ProductID != 0,
		Solid:   spec.Solid,
		Spin:    spec.Spin,
	}
	if spec.Box != nil {
		n.Mesh = BoxMesh(*spec.Box)
	}
	id, err := g.Add(parent, n)
	if err != nil {
		return err
	}
	for _, child := range spec.Children {
		if err := l.add(g, id, child, depth); err != nil {
			return err
		}
	}
	return nil
}

// instantiate deep-copies the referenced template and applies the instance's fields.
// Template children are renamed under the instance name so several instances coexist.
func (l Layout) instantiate(spec NodeSpec) (NodeSpec, error) {
	tmpl, ok := l.Templates[spec.Template]
	if !ok {
		return NodeSpec{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, spec.Template)
	}
	var inst NodeSpec
	if err := copier.CopyWithOption(&inst, &tmpl, copier.Option{DeepCopy: true}); err != nil {
		return NodeSpec{}, fmt.Errorf("copy template %q: %w", spec.Template, err)
	}
	if spec.Name != "" {
		prefixNames(inst.Children, spec.Name+"/")
	}
	inst.Name = spec.Name
	inst.Position = spec.Position
	inst.Rotation = spec.Rotation
	if spec.Scale != nil {
		s := *spec.Scale
		inst.Scale = &s
	}
	if spec.ProductID != 0 {
		inst.ProductID = spec.ProductID
	}
	if spec.Box != nil {
		b := *spec.Box
		inst.Box = &b
	}
	inst.Solid = inst.Solid || spec.Solid
	if spec.Spin != 0 {
		inst.Spin = spec.Spin
	}
	inst.Children = append(inst.Children, spec.Children...)
	return inst, nil
}

func prefixNames(specs []NodeSpec, prefix string) {
	for i := range specs {
		if specs[i].Name != "" {
			specs[i].Name = prefix + specs[i].Name
		}
		prefixNames(specs[i].Children, prefix)
	}
}
