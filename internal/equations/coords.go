package equations

import (
	"math"

	"github.com/san-kum/actinfriction/internal/params"
)

// Three equivalent views of overlap extent are used interchangeably: the
// dimensionless displacement lambda, the (continuous or discrete) number of
// crosslinker lattice sites l in the overlap, and, for rings, the ring
// radius R with circumference 2*pi*R = Nsca*(Lf - deltas*lambda).

// SitesToLambda converts a continuous lattice-site count to the
// dimensionless overlap displacement.
func SitesToLambda(l float64, p params.Ring) float64 {
	return (l - 1) * p.Deltad / p.Deltas
}

// LambdaToSites is the exact inverse of SitesToLambda.
func LambdaToSites(lmbda float64, p params.Ring) float64 {
	return 1 + p.Deltas/p.Deltad*lmbda
}

// LambdaToSitesDiscrete truncates the overlap to whole lattice sites. It is
// information-losing: round trips must use LambdaToSites.
func LambdaToSitesDiscrete(lmbda float64, p params.Ring) float64 {
	return math.Floor(p.Deltas/p.Deltad*lmbda) + 1
}

// LambdaToRadius gives the ring radius at overlap displacement lambda.
func LambdaToRadius(lmbda float64, p params.Ring) float64 {
	return float64(p.Nsca) * (p.Lf - p.Deltas*lmbda) / (2 * math.Pi)
}

// RadiusToLambda is the exact inverse of LambdaToRadius.
func RadiusToLambda(r float64, p params.Ring) float64 {
	return (p.Lf - 2*math.Pi*r/float64(p.Nsca)) / p.Deltas
}
