package types

// NeuronConfig describes a single LIF neuron at construction time. Mirrors
// the teacher's pattern of typed, in-process Go config structs handed to a
// factory rather than a parsed configuration file — this engine is a
// programmatic API embedded in a host process, never a CLI reading a config
// file from disk.
type NeuronConfig struct {
	// Threshold is θ, the firing threshold. Must be > 0.
	Threshold int32
	// Leak is L, the per-tick passive charge decay. Must be >= 0.
	Leak int32
	// Refractory is R, the number of ticks after firing during which the
	// neuron cannot fire and absorbs no synaptic charge.
	Refractory Tick
}

// NetworkConfig bounds a Network's arenas and tunes its concurrency and
// plasticity defaults at construction time.
type NetworkConfig struct {
	NeuronCapacity  int
	SynapseCapacity int

	// Seed roots every deterministic pseudo-random stream this Network
	// produces (Firing-phase threshold noise and InjectNoise). Razor breaks
	// ties among equal charges by smaller neuron id and does not use it. Two
	// Networks built with the same Seed and driven with the same command
	// sequence produce bit-identical results.
	Seed uint64

	// Workers bounds the static-partition worker pool used by the Leak and
	// Firing-candidate-scan phases. Workers <= 1 runs those phases inline
	// on the calling goroutine.
	Workers int

	MaxSpikesPerTick  int
	RazorEnabled      bool
	PlasticityEnabled bool
	OperantMode       bool
}
