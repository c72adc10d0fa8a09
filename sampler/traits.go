package sampler

// Trait names one personality dimension of an agent.
type Trait string

const (
	Neuroticism  Trait = "neuroticism"
	Extraversion Trait = "extraversion"
	Openness     Trait = "openness"
)

// NumTraits is the dimensionality of a trait vector.
const NumTraits = 3

// Traits lists the trait dimensions in canonical column order.
var Traits = [NumTraits]Trait{Neuroticism, Extraversion, Openness}

// Vector holds one value per trait, in canonical order.
type Vector [NumTraits]float64

// Table is an ordered set of trait vectors. Row labels are 1-based and purely
// positional.
type Table struct {
	Rows []Vector
}

// NewTable returns an empty table with capacity for n rows.
func NewTable(n int) *Table {
	return &Table{Rows: make([]Vector, 0, n)}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Append adds v as the next row and returns its label.
func (t *Table) Append(v Vector) int {
	t.Rows = append(t.Rows, v)
	return len(t.Rows)
}

// Row returns the row carrying the given 1-based label.
func (t *Table) Row(label int) (Vector, bool) {
	if label < 1 || label > t.Len() {
		return Vector{}, false
	}
	return t.Rows[label-1], true
}

// Column copies out all values of one trait.
func (t *Table) Column(trait Trait) []float64 {
	idx := traitIndex(trait)
	if idx < 0 {
		return nil
	}
	out := make([]float64, t.Len())
	for i, r := range t.Rows {
		out[i] = r[idx]
	}
	return out
}

// Matrix returns the rows as a [][]float64 for the density estimator.
func (t *Table) Matrix() [][]float64 {
	out := make([][]float64, t.Len())
	for i, r := range t.Rows {
		row := make([]float64, NumTraits)
		copy(row, r[:])
		out[i] = row
	}
	return out
}

func traitIndex(trait Trait) int {
	for i, tr := range Traits {
		if tr == trait {
			return i
		}
	}
	return -1
}

// TraitNames returns the canonical column names as strings.
func TraitNames() []string {
	names := make([]string, NumTraits)
	for i, tr := range Traits {
		names[i] = string(tr)
	}
	return names
}
