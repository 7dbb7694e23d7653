//go:build js

package main

const vsSource = `#version 300 es
	layout (location = 0) in vec4 aVertexPosition;
	layout (location = 1) in vec4 aVertexColor;
	uniform mat4 uModelViewMatrix;
	uniform mat4 uProjectionMatrix;
	uniform float uRadius;
	uniform float uViewportHeight;
	out lowp vec4 vColor;

	void main(void) {
		gl_Position = uProjectionMatrix * uModelViewMatrix * aVertexPosition;
		// Sphere of radius uRadius in model units, as a disc in pixels.
		gl_PointSize = max(
			2.0,
			uRadius * length(vec3(uModelViewMatrix[0])) * uProjectionMatrix[1][1] * uViewportHeight / gl_Position.w
		);
		vColor = aVertexColor;
	}
`

const fsSource = `#version 300 es
	in lowp vec4 vColor;
	uniform lowp float uRound;
	out lowp vec4 outColor;

	void main(void) {
		if (uRound > 0.5 && length(gl_PointCoord - vec2(0.5)) > 0.5) {
			discard;
		}
		outColor = vColor;
	}
`
