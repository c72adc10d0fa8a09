package sampler

import (
	"hash/fnv"
	"math/rand/v2"
)

// === Subsystem Constants ===

const (
	// SubsystemIndex is the RNG subsystem for base-row selection in the
	// kernel resampler.
	SubsystemIndex = "index"

	// SubsystemKernel is the RNG subsystem for kernel noise.
	SubsystemKernel = "kernel"

	// SubsystemParametric is the RNG subsystem for fallback draws.
	SubsystemParametric = "parametric"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Each subsystem is a PCG stream seeded with (seed, fnv1a64(subsystemName)),
// so drawing from one subsystem never shifts another.
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	seed       int64
	subsystems map[string]*rand.Rand
	sources    map[string]rand.Source
}

// NewPartitionedRNG creates a PartitionedRNG from a master seed.
func NewPartitionedRNG(seed int64) *PartitionedRNG {
	return &PartitionedRNG{
		seed:       seed,
		subsystems: make(map[string]*rand.Rand),
		sources:    make(map[string]rand.Source),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(p.Source(name))
	p.subsystems[name] = rng
	return rng
}

// Source returns the underlying source of the named subsystem. gonum
// distributions take a rand.Source rather than a *rand.Rand; both views share
// one stream.
func (p *PartitionedRNG) Source(name string) rand.Source {
	if src, ok := p.sources[name]; ok {
		return src
	}
	src := rand.NewPCG(uint64(p.seed), fnv1a64(name))
	p.sources[name] = src
	return src
}

// Seed returns the master seed used to create this PartitionedRNG.
func (p *PartitionedRNG) Seed() int64 {
	return p.seed
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
