package geo

import (
	"errors"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MetersPerDegree is the length of one degree of latitude.
const MetersPerDegree = 111_320.0

// blockSize is the number of points handled by one task.
const blockSize = 4096

// ErrLengthMismatch is returned when latitude and longitude slices differ in
// length.
var ErrLengthMismatch = errors.New("geo: latitude and longitude lengths differ")

// Rotate turns the offset (dx, dy) by heading radians.
func Rotate(heading, dx, dy float64) (xr, yr float64) {
	sin, cos := math.Sincos(heading)
	return dx*cos - dy*sin, dx*sin + dy*cos
}

// RotateAndOffset moves every point by (dx, dy) metres rotated by heading
// radians. The inputs are not modified. Blocks of points are processed in
// parallel; output order matches input order.
func RotateAndOffset(lats, lons []float64, heading, dx, dy float64) ([]float64, []float64, error) {
	if len(lats) != len(lons) {
		return nil, nil, ErrLengthMismatch
	}

	xr, yr := Rotate(heading, dx, dy)
	dLat := yr / MetersPerDegree

	outLat := make([]float64, len(lats))
	outLon := make([]float64, len(lons))

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for start := 0; start < len(lats); start += blockSize {
		end := min(start+blockSize, len(lats))
		g.Go(func() error {
			for i := start; i < end; i++ {
				outLat[i] = lats[i] + dLat
				outLon[i] = lons[i] + xr/(MetersPerDegree*math.Cos(lats[i]*math.Pi/180))
			}
			return nil
		})
	}
	_ = g.Wait()

	return outLat, outLon, nil
}
