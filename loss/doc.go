// Package loss computes call-blocking probabilities for a single shared
// resource of fixed capacity carrying several traffic classes with
// different per-call demands (the Erlang multi-rate loss model).
//
// # Reading Guide
//
//   - system.go: System, TrafficClass and LoadRange configuration values and their validation
//   - kaufman_roberts.go: Compute, the occupancy recursion, normalisation and blocking aggregation
//   - erlang.go: ErlangB, the single-rate reference formula
//   - sweep.go: Sweep, which evaluates Compute over a range of offered loads
//
// Output collaborators live in sub-packages:
//   - loss/report/: result tables (text, CSV, YAML)
//   - loss/chart/: blocking-versus-load charts
//
// Every computation is a pure function of its inputs. Invalid input is
// reported with an error wrapping ErrInvalidInput before any work is done.
package loss
