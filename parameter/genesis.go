package parameter

// Genesis seed constants. Address-like strings, unique to this engine lineage
// and never reused in other contexts; changing any of them forks every artwork
// derived from the default preset.
const (
	// GenesisSeedA/B/C are the three field seeds hashed into every per-dot digest
	GenesisSeedA = "0x8b2f4c9e1a7d3f0b6e5c8a2d9f4e1b7c0a3d6e9"
	GenesisSeedB = "0x1e7a3d9c2f5b8e0a4c7d1f6b9e2a5c8d0f3b6e1"
	GenesisSeedC = "0xc4e7a0d3f6b9e2a5c8d1f4b7e0a3d6c9f2b5e8a"

	// PaletteAnchor selects the color universe; hashed with the dot index to
	// derive per-dot colors independently of motion
	PaletteAnchor = "0xf2b5e8a1c4d7e0f3b6a9c2d5e8f1b4a7d0e3c6e9"

	// DriftOracle is the trailing input of every drift digest
	DriftOracle = "0xa7d0e3c6f9b2e5a8d1c4f7b0e3a6d9c2f5b8e1a4"

	// TrailHashSalt seeds the per-dot trail fade jitter in the renderer
	TrailHashSalt = "0x3f6b9e2a5c8d1f4b7e0a3d6c9f2b5e8a1d4c7f0b"
)

// EngineVersion is the dump header line and the version reported by stats
const EngineVersion = "drifting-dots-1.0.0"
