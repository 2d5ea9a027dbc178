// Package renderer draws scene graph geometry with OpenGL.
package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshanim/internal/engine/mesh"
	"github.com/Faultbox/meshanim/internal/engine/scene"
	"github.com/Faultbox/meshanim/internal/engine/texture"
	"github.com/Faultbox/meshanim/internal/logger"
	"github.com/Faultbox/meshanim/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	// FovY is the vertical field of view in radians.
	FovY float32
}

const (
	nearPlane = 0.01
	farPlane  = 100
)

var vertexStride = int32(unsafe.Sizeof(mesh.Vertex{}))

// gpuMesh is the GPU copy of one node's geometry.
type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
	uploaded      *mesh.Geometry

	tex    uint32
	texSrc image.Image
}

// Renderer draws every node of a scene that carries geometry. Geometry is
// re-uploaded whenever a node's geometry pointer changes, which animated
// nodes do on every tick.
type Renderer struct {
	config     Config
	program    uint32
	uniforms   uniforms
	whiteTex   uint32
	maxTexSize int
	meshes     map[*scene.Node]*gpuMesh
	camera     math.Vec3
	log        *zap.Logger
}

// New initializes OpenGL and builds the mesh program.
// It must be called after the GL context is current.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		meshes: make(map[*scene.Node]*gpuMesh),
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	var maxTex int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &maxTex)
	r.maxTexSize = int(maxTex)

	var err error
	r.program, err = compileProgram(meshVertexShader, meshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.uniforms = lookupUniforms(r.program)

	// Untextured materials sample this so one program serves both cases.
	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	copy(white.Pix, []byte{255, 255, 255, 255})
	r.whiteTex = uploadTexture(white)

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close releases all GPU resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("meshes", len(r.meshes)))
	for node, m := range r.meshes {
		r.release(m)
		delete(r.meshes, node)
	}
	if r.whiteTex != 0 {
		gl.DeleteTextures(1, &r.whiteTex)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin clears the frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// projection returns the current perspective matrix.
func (r *Renderer) projection() math.Mat4 {
	aspect := float32(r.config.Width) / float32(r.config.Height)
	return math.Perspective(r.config.FovY, aspect, nearPlane, farPlane)
}

// view looks from the camera down -z, where animated nodes are placed.
func (r *Renderer) view() math.Mat4 {
	forward := r.camera.Add(math.Vec3{Z: -1})
	return math.LookAt(r.camera, forward, math.Vec3{Y: 1})
}

// Draw renders every node under root that has geometry.
func (r *Renderer) Draw(root *scene.Node) {
	items, light := collect(root)
	if light.position == (math.Vec3{}) {
		light.position = r.camera
	}

	proj := r.projection()
	view := r.view()

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.uniforms.projection, 1, false, proj.Ptr())
	gl.UniformMatrix4fv(r.uniforms.view, 1, false, view.Ptr())
	gl.Uniform3f(r.uniforms.lightPos, light.position.X, light.position.Y, light.position.Z)
	gl.Uniform3fv(r.uniforms.lightColor, 1, &light.color[0])
	gl.Uniform3fv(r.uniforms.ambient, 1, &light.ambient[0])
	gl.Uniform1i(r.uniforms.texture, 0)
	gl.ActiveTexture(gl.TEXTURE0)

	seen := make(map[*scene.Node]bool, len(items))
	for _, it := range items {
		seen[it.node] = true
		m := r.sync(it.node, it.geom)

		mat := it.geom.Material
		if mat.DoubleSided {
			gl.Disable(gl.CULL_FACE)
		} else {
			gl.Enable(gl.CULL_FACE)
			gl.CullFace(gl.BACK)
		}
		gl.Uniform4fv(r.uniforms.color, 1, &mat.Color[0])
		if m.tex != 0 {
			gl.BindTexture(gl.TEXTURE_2D, m.tex)
		} else {
			gl.BindTexture(gl.TEXTURE_2D, r.whiteTex)
		}

		model := it.model
		gl.UniformMatrix4fv(r.uniforms.model, 1, false, model.Ptr())
		gl.BindVertexArray(m.vao)
		gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	}

	// Nodes that lost their geometry or left the scene.
	for node, m := range r.meshes {
		if !seen[node] {
			r.release(m)
			delete(r.meshes, node)
		}
	}
}

// sync makes the GPU copy of node match geom.
func (r *Renderer) sync(node *scene.Node, geom *mesh.Geometry) *gpuMesh {
	m, ok := r.meshes[node]
	if !ok {
		m = &gpuMesh{}
		gl.GenVertexArrays(1, &m.vao)
		gl.GenBuffers(1, &m.vbo)
		gl.GenBuffers(1, &m.ebo)

		gl.BindVertexArray(m.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, unsafe.Offsetof(mesh.Vertex{}.Position))
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, unsafe.Offsetof(mesh.Vertex{}.Normal))
		gl.EnableVertexAttribArray(1)
		gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, vertexStride, unsafe.Offsetof(mesh.Vertex{}.TexCoord))
		gl.EnableVertexAttribArray(2)
		gl.BindVertexArray(0)

		r.meshes[node] = m
		r.log.Debug("mesh allocated", zap.String("node", node.Name), zap.Uint32("vao", m.vao))
	}

	if m.uploaded != geom {
		gl.BindVertexArray(m.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(geom.Vertices)*int(vertexStride), gl.Ptr(geom.Vertices), gl.DYNAMIC_DRAW)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(geom.Indices)*4, gl.Ptr(geom.Indices), gl.DYNAMIC_DRAW)
		gl.BindVertexArray(0)
		m.indexCount = int32(len(geom.Indices))
		m.uploaded = geom
	}

	if tex := geom.Material.Texture; tex != m.texSrc {
		if m.tex != 0 {
			gl.DeleteTextures(1, &m.tex)
			m.tex = 0
		}
		if tex != nil {
			m.tex = uploadTexture(texture.ToRGBA(texture.Fit(tex, r.maxTexSize), false))
			r.log.Debug("texture uploaded", zap.String("node", node.Name), zap.Stringer("bounds", tex.Bounds()))
		}
		m.texSrc = tex
	}
	return m
}

func (r *Renderer) release(m *gpuMesh) {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
	if m.tex != 0 {
		gl.DeleteTextures(1, &m.tex)
	}
}

// uploadTexture creates a mipmapped RGBA texture. Row 0 of img lands at
// texture coordinate v=0, matching the plane's top-left origin.
func uploadTexture(img *image.RGBA) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	b := img.Bounds()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}
