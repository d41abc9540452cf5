// Package params defines the immutable parameter records for the filament
// sliding scenarios.
//
// A record is constructed once per run and read by the equations core; it is
// never mutated during integration. To vary a single field across runs, use
// [Ring.With] (and its siblings), which return a modified copy.
//
// Two ring schemas coexist: [Ring] carries the geometric/mechanical fields
// (EI, r0) used by the equations core, while [RingDiffusion] is the
// historical diffusion-based schema (Df, eta, Ds, n). There is no adapter
// between them; a caller must pick one explicitly.
package params
