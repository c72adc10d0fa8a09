package sampler

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/b14-netsim/agentsampler/sampler/kde"
)

// Config holds the construction parameters of a Sampler.
type Config struct {
	// N is the number of samples each fit produces. Must be >= 1.
	N int
	// Method names the bandwidth rule (see kde.Methods). Empty means kde.DefaultMethod.
	Method string
	// Seed drives every random draw of the Sampler.
	Seed int64
	// Parametric overrides the fallback distribution. Nil means DefaultParametric().
	Parametric *ParametricParams
	// IncludeLastRow lets the kernel resampler draw the final reference row.
	// Off by default: base rows come from [0, rows-2], which keeps output
	// comparable with previously generated agent files.
	IncludeLastRow bool
}

// Sampler produces synthetic trait tables. It is not safe for concurrent use;
// each Fit replaces Sample.
type Sampler struct {
	n              int
	method         string
	params         ParametricParams
	includeLastRow bool
	rng            *PartitionedRNG

	// Data is the reference table of the last successful reference fit.
	Data *Table
	// Sample is the output of the last successful fit.
	Sample *Table

	bandwidth []float64
}

// NewSampler validates cfg and returns a Sampler with an empty Sample.
func NewSampler(cfg Config) (*Sampler, error) {
	if cfg.N < 1 {
		return nil, errors.Wrapf(ErrInvalidConfig, "n must be at least 1, got %d", cfg.N)
	}
	method := cfg.Method
	if method == "" {
		method = kde.DefaultMethod
	}
	if !kde.ValidMethod(method) {
		return nil, errors.Wrapf(ErrInvalidConfig, "unknown bandwidth method %q; valid: %v", method, kde.Methods())
	}
	params := DefaultParametric()
	if cfg.Parametric != nil {
		params = *cfg.Parametric
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Sampler{
		n:              cfg.N,
		method:         method,
		params:         params,
		includeLastRow: cfg.IncludeLastRow,
		rng:            NewPartitionedRNG(cfg.Seed),
		Sample:         NewTable(0),
	}, nil
}

// N returns the number of samples produced per fit.
func (s *Sampler) N() int { return s.n }

// Method returns the configured bandwidth rule.
func (s *Sampler) Method() string { return s.method }

// Seed returns the seed every random draw derives from.
func (s *Sampler) Seed() int64 { return s.rng.Seed() }

// Params returns the fallback distribution parameters.
func (s *Sampler) Params() ParametricParams { return s.params }

// Bandwidth returns the bandwidth vector of the last kernel fit, or nil if
// the last successful fit was parametric.
func (s *Sampler) Bandwidth() []float64 {
	return append([]float64(nil), s.bandwidth...)
}

// Fit runs the strategy selected by src and replaces Sample on success. On
// error Sample and Data are left as they were.
func (s *Sampler) Fit(src Source) error {
	switch src.Kind {
	case SourceReference:
		return s.fitReference(src.Path, src.Read)
	case SourceParametric:
		return s.fitParametric()
	default:
		return errors.Errorf("unknown source kind %v", src.Kind)
	}
}

func (s *Sampler) fitReference(path string, opts ReadOptions) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrResourceNotFound, "reference table %s", path)
		}
		return errors.Wrapf(err, "checking reference table %s", path)
	}
	if !info.Mode().IsRegular() {
		return errors.Wrapf(ErrResourceNotFound, "reference table %s is not a regular file", path)
	}
	data, err := ReadTable(path, opts)
	if err != nil {
		return err
	}
	if data.Len() < 2 {
		return errors.Wrapf(ErrInsufficientData, "%s has %d rows, need at least 2", path, data.Len())
	}
	if outside := countOutsideUnit(data); outside > 0 {
		logrus.Warnf("%s: %d reference values lie outside [0,1]; samples will be clamped", path, outside)
	}

	bw, err := kde.Estimate(data.Matrix(), s.method)
	if err != nil {
		return errors.Wrapf(err, "estimating bandwidth of %s", path)
	}
	logrus.Debugf("kernel fit: %d reference rows, method=%s, bandwidth=%v", data.Len(), s.method, bw)

	sample, err := drawKernel(s.n, data, bw, s.includeLastRow,
		s.rng.ForSubsystem(SubsystemIndex), s.rng.Source(SubsystemKernel))
	if err != nil {
		return err
	}
	s.Data, s.Sample, s.bandwidth = data, sample, bw
	return nil
}

func (s *Sampler) fitParametric() error {
	logrus.Debugf("parametric fit: mean=%v", s.params.Mean)
	sample, err := drawParametric(s.n, s.params, s.rng.Source(SubsystemParametric))
	if err != nil {
		return err
	}
	s.Sample, s.bandwidth = sample, nil
	return nil
}

// Export writes Sample to path as a delimited table without an index column.
func (s *Sampler) Export(path string, opts WriteOptions) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating output file")
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "closing output file")
		}
	}()
	if err := s.ExportTo(file, opts); err != nil {
		return errors.Wrapf(err, "exporting to %s", path)
	}
	logrus.Debugf("exported %d rows to %s", s.Sample.Len(), path)
	return nil
}

// ExportTo writes Sample to w. See Export.
func (s *Sampler) ExportTo(w io.Writer, opts WriteOptions) error {
	return WriteTable(w, s.Sample, opts)
}

func countOutsideUnit(t *Table) int {
	count := 0
	for _, r := range t.Rows {
		for _, v := range r {
			if v < 0 || v > 1 {
				count++
			}
		}
	}
	return count
}
