package render

const chunkVertexShader = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aUV;

uniform mat4 view;
uniform mat4 projection;

out vec3 vNormal;
out vec2 vUV;
out float vDepth;

void main() {
    vec4 viewPos = view * vec4(aPos, 1.0);
    vNormal = aNormal;
    vUV = aUV;
    vDepth = -viewPos.z;
    gl_Position = projection * viewPos;
}
`

const chunkFragmentShader = `
#version 410 core
in vec3 vNormal;
in vec2 vUV;
in float vDepth;

uniform sampler2D atlas;
uniform vec3 lightDir;
uniform vec3 fogColor;
uniform float fogEnd;

out vec4 FragColor;

void main() {
    vec4 tex = texture(atlas, vUV);
    float diffuse = max(dot(normalize(vNormal), normalize(-lightDir)), 0.0);
    vec3 lit = tex.rgb * (0.55 + 0.45 * diffuse);
    float fog = clamp(vDepth / fogEnd, 0.0, 1.0);
    FragColor = vec4(mix(lit, fogColor, fog * fog), tex.a);
}
`

const highlightVertexShader = `
#version 410 core
layout (location = 0) in vec3 aPos;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

void main() {
    gl_Position = projection * view * model * vec4(aPos, 1.0);
}
`

const highlightFragmentShader = `
#version 410 core
uniform vec3 color;
out vec4 FragColor;

void main() {
    FragColor = vec4(color, 1.0);
}
`
