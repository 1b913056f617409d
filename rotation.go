package impact

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// R1 rotation about the 1st axis.
func R1(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R2 rotation about the 2nd axis, which is the scene's up axis.
func R2(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, 0, -s, 0, 1, 0, s, 0, c})
}

// MxV33 multiplies a matrix with a vector. Note that there is no dimension check!
func MxV33(m mat.Matrix, v []float64) []float64 {
	var rVec mat.VecDense
	rVec.MulVec(m, mat.NewVecDense(len(v), v))
	return []float64{rVec.AtVec(0), rVec.AtVec(1), rVec.AtVec(2)}
}

func (p Position3) rotate(m mat.Matrix) Position3 {
	v := MxV33(m, p.Vector())
	return Position3{v[0], v[1], v[2]}
}

// Incline returns the path tilted out of the display plane by the inclination (degrees),
// about the X axis, which joins the periapsis and the apoapsis.
func (p Path) Incline(inclinationDeg float64) Path {
	r := R1(Deg2rad(inclinationDeg))
	inclined := make(Path, len(p))
	for i, pt := range p {
		inclined[i] = pt.rotate(r)
	}
	return inclined
}

// GlobePosition returns the scene position of c on a sphere of the given radius centered on the
// scene origin. The north pole is up (+Y) and the prime meridian crosses the +X axis.
func (c Coord) GlobePosition(radius float64) Position3 {
	sLat, cLat := math.Sincos(c.LatDeg * deg2rad)
	equatorial := Position3{radius * cLat, radius * sLat, 0}
	// Eastward longitudes point toward -Z.
	return equatorial.rotate(R2(-c.LngDeg * deg2rad))
}
