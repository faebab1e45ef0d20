package loss

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is wrapped by every validation error returned from this package.
var ErrInvalidInput = errors.New("invalid input")

// TrafficClass is one stream of calls sharing the resource.
type TrafficClass struct {
	Demand int // resource units held by one active call (t_i >= 1)
}

// System is a resource of Capacity units shared by Classes.
// A class whose demand exceeds the capacity is valid and always blocked.
type System struct {
	Capacity int
	Classes  []TrafficClass
}

// NewSystem builds a System with one class per demand, in order.
func NewSystem(capacity int, demands ...int) System {
	classes := make([]TrafficClass, len(demands))
	for i, d := range demands {
		classes[i] = TrafficClass{Demand: d}
	}
	return System{Capacity: capacity, Classes: classes}
}

// Demands returns the per-class demands in class order.
func (s System) Demands() []int {
	out := make([]int, len(s.Classes))
	for i, c := range s.Classes {
		out[i] = c.Demand
	}
	return out
}

// Validate checks capacity, class count and every class demand.
func (s System) Validate() error {
	if s.Capacity < 1 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidInput, s.Capacity)
	}
	if len(s.Classes) == 0 {
		return fmt.Errorf("%w: at least one traffic class required", ErrInvalidInput)
	}
	for i, c := range s.Classes {
		if c.Demand < 1 {
			return fmt.Errorf("%w: class[%d]: demand must be positive, got %d", ErrInvalidInput, i, c.Demand)
		}
	}
	return nil
}

// LoadRange is the offered-load sweep [Min, Max] with a fixed Step.
type LoadRange struct {
	Min  float64
	Max  float64
	Step float64
}

// boundaryTolerance is the fraction of Step by which the last swept value may
// exceed Max and still be included. It absorbs representation error such as
// 0.2 + 11*0.1 = 1.3000000000000003.
const boundaryTolerance = 1e-9

// MaxLoadPoints bounds the number of values a LoadRange may expand to.
const MaxLoadPoints = 1_000_000

// Validate checks that the range is finite, non-negative, steps forward and
// expands to at most MaxLoadPoints values.
func (r LoadRange) Validate() error {
	if err := validateLoad("load min", r.Min); err != nil {
		return err
	}
	if err := validateLoad("load max", r.Max); err != nil {
		return err
	}
	if math.IsNaN(r.Step) || math.IsInf(r.Step, 0) || r.Step <= 0 {
		return fmt.Errorf("%w: load step must be positive, got %v", ErrInvalidInput, r.Step)
	}
	if r.Max < r.Min {
		return fmt.Errorf("%w: load max %v is below load min %v", ErrInvalidInput, r.Max, r.Min)
	}
	if n := r.pointCount(); math.IsInf(n, 0) || n > MaxLoadPoints {
		return fmt.Errorf("%w: load range [%v, %v] step %v expands to more than %d points",
			ErrInvalidInput, r.Min, r.Max, r.Step, MaxLoadPoints)
	}
	return nil
}

// Values returns Min, Min+Step, ... up to and including Max. Each value is
// computed as Min + k*Step so step error does not accumulate.
func (r LoadRange) Values() ([]float64, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	limit := r.limit()
	count := int(r.pointCount())
	values := make([]float64, 0, count)
	for k := 0; k < count; k++ {
		a := r.Min + float64(k)*r.Step
		if a > limit {
			break
		}
		values = append(values, a)
	}
	return values, nil
}

func (r LoadRange) limit() float64 {
	return r.Max + boundaryTolerance*r.Step
}

// pointCount is the number of values up to limit; +Inf when the ratio overflows.
func (r LoadRange) pointCount() float64 {
	return math.Floor((r.limit()-r.Min)/r.Step) + 1
}

func validateLoad(name string, a float64) error {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return fmt.Errorf("%w: %s must be a finite number, got %v", ErrInvalidInput, name, a)
	}
	if a < 0 {
		return fmt.Errorf("%w: %s must be non-negative, got %v", ErrInvalidInput, name, a)
	}
	return nil
}
