package primitives

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Renderer draws lit boxes. The cube mesh and shader are created on first use so
// GPU resources are allocated after the window/OpenGL context exists.
type Renderer struct {
	mesh  rl.Mesh
	mtl   rl.Material
	ready bool

	viewPos  mgl32.Vec3
	lightDir mgl32.Vec3
}

// NewRenderer returns a renderer lit from above-right.
func NewRenderer() *Renderer {
	return &Renderer{lightDir: mgl32.Vec3{0.5, 1, 0.5}}
}

func (r *Renderer) ensure() {
	if r.ready {
		return
	}
	r.mesh = rl.GenMeshCube(1, 1, 1)
	r.mtl = rl.LoadMaterialDefault()
	if shader := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(shader) {
		r.mtl.Shader = shader
	}
	r.ready = true
}

// SetView sets camera position and direction-to-light for this frame. Call once per
// frame before drawing.
func (r *Renderer) SetView(viewPos, lightDir mgl32.Vec3) {
	r.ensure()
	r.viewPos = viewPos
	if lightDir.Len() > 0 {
		r.lightDir = lightDir.Normalize()
	}
	r.setUniforms(r.mtl.Shader)
}

// DrawBox draws a box with the given half extents under a world transform.
// Must be called between BeginMode3D and EndMode3D.
func (r *Renderer) DrawBox(world mgl32.Mat4, half mgl32.Vec3, color rl.Color) {
	r.ensure()
	if albedo := r.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = color
	}
	m := world.Mul4(mgl32.Scale3D(half.X()*2, half.Y()*2, half.Z()*2))
	rl.DrawMesh(r.mesh, r.mtl, Matrix(m))
}

// Unload frees the GPU resources.
func (r *Renderer) Unload() {
	if !r.ready {
		return
	}
	rl.UnloadMesh(&r.mesh)
	rl.UnloadMaterial(r.mtl)
	r.ready = false
}

// Matrix converts a column-major mgl32 matrix to raylib's layout.
func Matrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

// Vector3 converts an mgl32 vector to raylib's.
func Vector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = colDiffuse.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * colDiffuse.rgb;
  float spec = pow(max(dot(N, normalize(L + V)), 0.0), specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, colDiffuse.a);
}
`
)

var (
	ambient    = [4]float32{0.25, 0.24, 0.22, 1.0}
	lightColor = [3]float32{1.0, 0.97, 0.92}
)

const (
	lightIntensity   = float32(0.8)
	specularPower    = float32(32.0)
	specularStrength = float32(0.25)
)

// setUniforms uploads the per-frame lighting values (cgo-safe: local arrays).
func (r *Renderer) setUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	view := [3]float32{r.viewPos[0], r.viewPos[1], r.viewPos[2]}
	light := [3]float32{r.lightDir[0], r.lightDir[1], r.lightDir[2]}
	amb, col := ambient, lightColor
	vec3 := map[string][]float32{"viewPos": view[:], "lightDir": light[:], "lightColor": col[:]}
	for name, v := range vec3 {
		if loc := rl.GetShaderLocation(shader, name); loc >= 0 {
			rl.SetShaderValueV(shader, loc, v, rl.ShaderUniformVec3, 1)
		}
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	scalars := map[string]float32{
		"lightIntensity":   lightIntensity,
		"specularPower":    specularPower,
		"specularStrength": specularStrength,
	}
	for name, v := range scalars {
		if loc := rl.GetShaderLocation(shader, name); loc >= 0 {
			rl.SetShaderValue(shader, loc, []float32{v}, rl.ShaderUniformFloat)
		}
	}
}
