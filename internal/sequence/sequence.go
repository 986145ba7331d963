// Package sequence evaluates fixed-order linear recurrences and holds the
// registry of named integer sequences served by seqapi.
package sequence

import (
	"fmt"
	"strings"
)

// Recurrence describes a sequence by its initial terms and the coefficients
// applied to the preceding terms. Coefficients[0] multiplies seq[i-1],
// Coefficients[1] multiplies seq[i-2], and so on.
type Recurrence struct {
	Name         string  `json:"name" yaml:"name" toml:"name"`
	Description  string  `json:"description" yaml:"description" toml:"description"`
	Coefficients []int64 `json:"coefficients" yaml:"coefficients" toml:"coefficients"`
	Initial      []int64 `json:"initial" yaml:"initial" toml:"initial"`
}

// Order returns the number of preceding terms each new term depends on.
func (r Recurrence) Order() int {
	return len(r.Coefficients)
}

// Generate returns the first count terms. A non-positive count yields an
// empty, non-nil slice. Terms that exceed int64 wrap around.
func (r Recurrence) Generate(count int) []int64 {
	if count <= 0 {
		return []int64{}
	}

	seq := make([]int64, count)
	n := copy(seq, r.Initial)

	order := r.Order()
	for i := n; i < count; i++ {
		var next int64
		for j := 0; j < order; j++ {
			next += r.Coefficients[j] * seq[i-1-j]
		}
		seq[i] = next
	}
	return seq
}

// Validate checks that the recurrence is well formed.
func (r Recurrence) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("recurrence name is required")
	}
	if r.Order() == 0 {
		return fmt.Errorf("recurrence %q has no coefficients", r.Name)
	}
	if len(r.Initial) != r.Order() {
		return fmt.Errorf("recurrence %q: %d initial terms for order %d", r.Name, len(r.Initial), r.Order())
	}
	return nil
}

// Formula renders the recurrence as a human readable expression.
func (r Recurrence) Formula() string {
	terms := make([]string, 0, r.Order())
	for j, c := range r.Coefficients {
		term := fmt.Sprintf("seq[i-%d]", j+1)
		switch c {
		case 0:
			continue
		case 1:
		default:
			term = fmt.Sprintf("%d*%s", c, term)
		}
		terms = append(terms, term)
	}
	return "seq[i] = " + strings.Join(terms, " + ")
}
