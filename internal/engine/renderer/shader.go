package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const meshVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;

uniform mat4 uProjection;
uniform mat4 uView;
uniform mat4 uModel;

out vec3 vWorldPos;
out vec3 vNormal;
out vec2 vTexCoord;

void main() {
	vec4 world = uModel * vec4(aPosition, 1.0);
	vWorldPos = world.xyz;
	vNormal = mat3(uModel) * aNormal;
	vTexCoord = aTexCoord;
	gl_Position = uProjection * uView * world;
}
`

const meshFragmentShader = `
#version 410 core

in vec3 vWorldPos;
in vec3 vNormal;
in vec2 vTexCoord;

uniform sampler2D uTexture;
uniform vec4 uColor;
uniform vec3 uLightPos;
uniform vec3 uLightColor;
uniform vec3 uAmbient;

out vec4 FragColor;

void main() {
	vec3 n = normalize(vNormal);
	if (!gl_FrontFacing) {
		n = -n;
	}
	vec3 l = normalize(uLightPos - vWorldPos);
	float diffuse = max(dot(n, l), 0.0);

	vec4 base = uColor * texture(uTexture, vTexCoord);
	vec3 lit = base.rgb * (uAmbient + uLightColor * diffuse);
	FragColor = vec4(lit, base.a);
}
`

// compileProgram compiles a vertex and fragment shader and links them.
func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log))
	}

	return program, nil
}

func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}

	return shader, nil
}

// uniforms holds the locations used by the mesh program.
type uniforms struct {
	projection int32
	view       int32
	model      int32
	texture    int32
	color      int32
	lightPos   int32
	lightColor int32
	ambient    int32
}

func lookupUniforms(program uint32) uniforms {
	loc := func(name string) int32 {
		return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
	}
	return uniforms{
		projection: loc("uProjection"),
		view:       loc("uView"),
		model:      loc("uModel"),
		texture:    loc("uTexture"),
		color:      loc("uColor"),
		lightPos:   loc("uLightPos"),
		lightColor: loc("uLightColor"),
		ambient:    loc("uAmbient"),
	}
}
