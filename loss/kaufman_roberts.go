package loss

import (
	"bytes"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Result is the steady state of one System at one offered load.
type Result struct {
	Load      float64   // scalar offered load per unit capacity (a)
	Occupancy []float64 // p[n], probability that exactly n units are busy, n = 0..C
	Blocking  []float64 // E[i], blocking probability of class i
}

// Compute runs the Kaufman-Roberts recursion for sys at scalar load a and
// returns the normalised occupancy distribution and per-class blocking.
//
// Per-class intensity is a_i = a*C / (m*t_i). The unnormalised weights are
// s[0] = 1 and n*s[n] = sum over classes with t_i <= n of a_i*t_i*s[n-t_i],
// evaluated in log space. Class i is blocked in states n > C-t_i.
func Compute(sys System, a float64) (*Result, error) {
	if err := sys.Validate(); err != nil {
		return nil, err
	}
	if err := validateLoad("load", a); err != nil {
		return nil, err
	}

	c := sys.Capacity
	m := float64(len(sys.Classes))

	// a_i*t_i = a*C/m is the same for every class. Working with log s[n]
	// keeps the weights finite for any finite load, however large C*a is.
	logOffered := math.Log(a) + math.Log(float64(c)) - math.Log(m)

	logS := make([]float64, c+1)
	terms := make([]float64, 0, len(sys.Classes))
	for n := 1; n <= c; n++ {
		terms = terms[:0]
		for _, cl := range sys.Classes {
			if n-cl.Demand >= 0 {
				terms = append(terms, logS[n-cl.Demand])
			}
		}
		if len(terms) == 0 {
			logS[n] = math.Inf(-1)
			continue
		}
		logS[n] = logOffered - math.Log(float64(n)) + floats.LogSumExp(terms)
	}

	// logS[0] = 0, so the normaliser is finite and >= 0.
	logTotal := floats.LogSumExp(logS)
	s := make([]float64, c+1)
	for n, l := range logS {
		s[n] = math.Exp(l - logTotal)
	}

	blocking := make([]float64, len(sys.Classes))
	for i, cl := range sys.Classes {
		if cl.Demand > c {
			blocking[i] = 1
			continue
		}
		blocking[i] = clampProbability(floats.Sum(s[c-cl.Demand+1:]))
	}

	return &Result{Load: a, Occupancy: s, Blocking: blocking}, nil
}

// Mean returns the expected number of busy units.
func (r *Result) Mean() float64 {
	var mean float64
	for n, p := range r.Occupancy {
		mean += float64(n) * p
	}
	return mean
}

// Utilization returns Mean as a fraction of capacity.
func (r *Result) Utilization() float64 {
	c := len(r.Occupancy) - 1
	if c < 1 {
		return 0
	}
	return r.Mean() / float64(c)
}

func (r *Result) String() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "load=%v; capacity=%d; ", r.Load, len(r.Occupancy)-1)
	fmt.Fprintf(&b, "mean=%v; blocking=%v; ", r.Mean(), r.Blocking)
	return b.String()
}

// clampProbability trims rounding overshoot so tail sums stay inside [0, 1].
func clampProbability(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
