package sequence

// Named recurrences.
var (
	FibonacciRecurrence = Recurrence{
		Name:         "fibonacci",
		Description:  "Fibonacci numbers starting 0, 1",
		Coefficients: []int64{1, 1},
		Initial:      []int64{0, 1},
	}

	TribonacciRecurrence = Recurrence{
		Name:         "tribonacci",
		Description:  "Tribonacci numbers starting 0, 1, 1",
		Coefficients: []int64{1, 1, 1},
		Initial:      []int64{0, 1, 1},
	}

	LucasRecurrence = Recurrence{
		Name:         "lucas",
		Description:  "Lucas numbers starting 2, 1",
		Coefficients: []int64{1, 1},
		Initial:      []int64{2, 1},
	}

	PellRecurrence = Recurrence{
		Name:         "pell",
		Description:  "Pell numbers starting 0, 1",
		Coefficients: []int64{2, 1},
		Initial:      []int64{0, 1},
	}
)

// registry keeps the order in which sequences are listed and routed.
var registry = []Recurrence{
	FibonacciRecurrence,
	TribonacciRecurrence,
	LucasRecurrence,
	PellRecurrence,
}

// All returns the registered recurrences in listing order.
func All() []Recurrence {
	out := make([]Recurrence, len(registry))
	copy(out, registry)
	return out
}

// Names returns the registered sequence names in listing order.
func Names() []string {
	names := make([]string, len(registry))
	for i, r := range registry {
		names[i] = r.Name
	}
	return names
}

// Lookup finds a recurrence by name.
func Lookup(name string) (Recurrence, bool) {
	for _, r := range registry {
		if r.Name == name {
			return r, true
		}
	}
	return Recurrence{}, false
}

// Fibonacci returns the first count Fibonacci numbers.
func Fibonacci(count int) []int64 { return FibonacciRecurrence.Generate(count) }

// Tribonacci returns the first count Tribonacci numbers.
func Tribonacci(count int) []int64 { return TribonacciRecurrence.Generate(count) }

// Lucas returns the first count Lucas numbers.
func Lucas(count int) []int64 { return LucasRecurrence.Generate(count) }

// Pell returns the first count Pell numbers.
func Pell(count int) []int64 { return PellRecurrence.Generate(count) }
