// Package sampler manufactures synthetic agent trait vectors for the
// belief/polarization network simulation.
//
// # Reading Guide
//
//   - sampler.go: Sampler state, Fit/Export orchestration
//   - source.go: the explicit choice between reference data and the parametric model
//   - kernel.go: smoothed bootstrap over a reference dataset
//   - parametric.go: multivariate normal fallback with fixed default parameters
//   - clamp.go: the [0,1] domain clamp shared by both strategies
//   - table.go: delimited text input and output
//
// Bandwidth rules and density evaluation live in sampler/kde.
//
// # Modeling limitation
//
// The kernel resampler smooths with a product kernel: the kernel covariance is
// diagonal (bandwidth squared per trait), so correlation between traits in the
// reference data survives only through the resampled base rows, never through
// the added noise.
package sampler
