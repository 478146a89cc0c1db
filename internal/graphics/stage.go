package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"showroom/internal/camera"
	"showroom/internal/primitives"
	"showroom/internal/scene"
)

const crosshairSize = 8

var crosshairColor = rl.NewColor(255, 255, 255, 200)

// Stage renders the scene graph from the player camera.
type Stage struct {
	renderer *primitives.Renderer
	palette  primitives.Palette
	lightDir mgl32.Vec3
}

// NewStage returns a stage drawing with r.
func NewStage(r *primitives.Renderer) *Stage {
	return &Stage{
		renderer: r,
		palette:  primitives.DefaultPalette,
		lightDir: mgl32.Vec3{0.4, 1, 0.3},
	}
}

// Camera3D converts the player camera into raylib's camera.
func Camera3D(c *camera.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   primitives.Vector3(c.Position),
		Target:     primitives.Vector3(c.Target()),
		Up:         primitives.Vector3(c.Up()),
		Fovy:       c.FOV,
		Projection: rl.CameraPerspective,
	}
}

// Draw renders every mesh in g. Meshes of the highlighted product,
// when there is one, are drawn in the highlight color.
func (s *Stage) Draw(cam *camera.Camera, g *scene.Graph, highlight scene.ProductID, highlighted bool) {
	rl.BeginMode3D(Camera3D(cam))
	s.renderer.SetView(cam.Position, s.lightDir)
	for _, id := range g.Meshes(g.Root()) {
		n, _ := g.Node(id)
		product, tagged := g.ProductOf(id)
		color := s.palette.For(tagged, highlighted && tagged && product == highlight)
		s.renderer.DrawBox(g.World(id), n.Mesh.HalfExtents, color)
	}
	rl.EndMode3D()
}

// DrawCrosshair draws a small cross at the screen center.
func DrawCrosshair() {
	cx, cy := int32(rl.GetScreenWidth()/2), int32(rl.GetScreenHeight()/2)
	rl.DrawLine(cx-crosshairSize, cy, cx+crosshairSize, cy, crosshairColor)
	rl.DrawLine(cx, cy-crosshairSize, cx, cy+crosshairSize, crosshairColor)
}

// Unload frees GPU resources.
func (s *Stage) Unload() {
	s.renderer.Unload()
}
