package parameter

// Raster Rendering
const (
	// DotBaseRadius is the head circle radius in pixels
	DotBaseRadius = 2.2

	// DotPulseAmplitude modulates the head radius with sin(phase): radius =
	// base * (1 + amplitude*sin(phase))
	DotPulseAmplitude = 0.35

	// TrailMaxAlpha/TrailMinAlpha bound the trail fade; the newest trail entry
	// renders at max, the oldest at min
	TrailMaxAlpha = 0.55
	TrailMinAlpha = 0.02

	// TrailJitterDepth is how much the per-dot trail salt digest can attenuate
	// trail alpha (0 = uniform fade, 1 = full attenuation range)
	TrailJitterDepth = 0.3

	// DotAlpha is the fixed head opacity (220/255, original engine value)
	DotAlpha = 220.0 / 255.0
)

// Background
const (
	// BackgroundR/G/B is the default clear color (deep ink blue)
	BackgroundR = 0x0a
	BackgroundG = 0x0a
	BackgroundB = 0x12

	// BackdropAlphaMax caps the perlin backdrop brightness so dots stay readable
	BackdropAlphaMax = 0.10

	// BackdropScale is the noise frequency in canvas widths
	BackdropScale = 3.0

	// BackdropNoiseAlpha/Beta/Octaves feed the perlin generator; the
	// usual fractal-noise defaults
	BackdropNoiseAlpha = 2.0
	BackdropNoiseBeta  = 2.0
	BackdropOctaves    = 3
)

// Terminal Preview
const (
	// PreviewDotRune/PreviewTrailRune are the glyphs used by the cell projection
	PreviewDotRune   = '●'
	PreviewTrailRune = '·'

	// PreviewTrailDepth is how many trail entries the preview projects per dot;
	// full trails overwhelm a cell grid
	PreviewTrailDepth = 6

	// SparklineWidth is the HUD displacement graph width in cells
	SparklineWidth = 48
	// SparklineHeight is the HUD displacement graph height in rows
	SparklineHeight = 4
)
