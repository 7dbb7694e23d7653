package main

import (
	"github.com/rs/zerolog"
	webgl "github.com/seqsense/webgl-go"
)

func showDebugInfo(gl *webgl.WebGL, log zerolog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("panic", r).Msg("failed to get debug info")
		}
	}()

	ri, ok := gl.GetExtension("WEBGL_debug_renderer_info")
	if !ok {
		log.Info().Msg("GPU info: hidden by the browser privacy setting")
		return
	}
	log.Info().
		Str("vendor", gl.GetParameter(ri.Get("UNMASKED_VENDOR_WEBGL").Int()).String()).
		Str("renderer", gl.GetParameter(ri.Get("UNMASKED_RENDERER_WEBGL").Int()).String()).
		Int("maxPointSize", gl.GetParameter(gl.JS().Get("ALIASED_POINT_SIZE_RANGE").Int()).Index(1).Int()).
		Msg("GPU")
}
