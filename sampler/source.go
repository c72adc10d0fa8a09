package sampler

import "fmt"

// SourceKind selects the resampling strategy used by Fit.
type SourceKind int

const (
	// SourceParametric draws from the fixed multivariate normal model. It is
	// the zero value, so an empty Source means "no reference data".
	SourceParametric SourceKind = iota

	// SourceReference estimates a density from a reference table on disk.
	SourceReference
)

func (k SourceKind) String() string {
	switch k {
	case SourceParametric:
		return "parametric"
	case SourceReference:
		return "reference"
	default:
		return fmt.Sprintf("SourceKind(%d)", int(k))
	}
}

// Source is the caller's explicit choice of where samples come from.
type Source struct {
	Kind SourceKind
	Path string
	Read ReadOptions
}

// FromReference selects the kernel resampler over the table at path.
func FromReference(path string, opts ReadOptions) Source {
	return Source{Kind: SourceReference, Path: path, Read: opts}
}

// Parametric selects the fallback multivariate normal resampler.
func Parametric() Source {
	return Source{Kind: SourceParametric}
}
