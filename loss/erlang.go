package loss

import "fmt"

// ErlangB returns the probability that a call offered to servers circuits
// carrying traffic Erlangs is lost. It uses the stable recursion
// B(k) = A*B(k-1) / (k + A*B(k-1)) starting from B(0) = 1.
//
// A System with one class of demand 1 at scalar load a blocks with
// ErlangB(C, a*C).
func ErlangB(servers int, traffic float64) (float64, error) {
	if servers < 1 {
		return 0, fmt.Errorf("%w: servers must be positive, got %d", ErrInvalidInput, servers)
	}
	if err := validateLoad("traffic", traffic); err != nil {
		return 0, err
	}
	b := 1.0
	for k := 1; k <= servers; k++ {
		b = traffic * b / (float64(k) + traffic*b)
	}
	return b, nil
}
