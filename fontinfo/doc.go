// Package fontinfo parses font descriptions.
//
// A font description is an INI file. The [default] section holds the font
// settings; every other section defines a color generator, an effect or a
// layer, with its variant chosen by the type option:
//
//	[default]
//	name = fonts/Vera.ttf
//	size = 24
//	letters = 20-7e
//	layers = body, rim
//	posteffects = shadow
//
//	[fill]
//	type = gradient
//	colors = (255, 200, 0), (255, 255, 255)
//	angle = 90
//
//	[rim]
//	type = outline
//	width = 2
//	opacity = 80
//
//	[body]
//	type = layer
//	color = fill
//	effects = rim
//
//	[shadow]
//	type = dropshadow
//
// Options are typed per variant. Unknown section types and unknown options
// are errors, reported as *fontc.ConfigError naming the section and key.
//
// The layers option also accepts the older expression form,
//
//	layers = [Layer(color=fill, effects=[rim], blend=blendmultiply, opacity=0.5)]
//
// which is tokenized and matched against a fixed grammar, never evaluated.
package fontinfo
