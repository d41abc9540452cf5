// Package equations implements the overdamped equations of motion for
// crosslinked filament overlaps: coordinate conversions, bending, entropic
// and condensation forces, the cooperative-binding friction coefficients,
// and the derivative systems handed to the integrator.
//
// Every function here is pure: a function of the state and an immutable
// parameter record, with no retained state between calls. The integrator may
// probe these functions with trial values millions of times per run;
// out-of-domain inputs produce NaN (plus a sentinel error where a value/error
// pair is returned), never a panic and never a silently clamped result.
//
// Four scenario variants cross {linear, ring} geometry with
// {concentration-driven, occupancy-driven} binding:
//
//   - [LinearConcentration]: state [lambda], friction from bulk cX
//   - [LinearOccupancy]: state [lambda, Nd], explicit bound-linker count
//   - [RingConcentration]: state [lambda], bending vs condensation force
//   - [RingOccupancy]: state [lambda, Nd], bending vs entropic force
//
// Sign convention: increasing lambda corresponds to growing overlaps and,
// for rings, a shrinking radius. The ring derivative therefore carries a
// leading minus sign.
package equations
