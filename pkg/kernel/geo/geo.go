// Package geo implements geospatial primitives: base-32 geohash
// encode/decode, neighbor generation, haversine distance, bounding boxes,
// and radius filtering. All functions are pure and reentrant.
//
// The haversine core is adapted from the fitness platform's
// condition_matcher location gate, generalized from an inline helper into
// a reusable primitive the rest of the kernel (and the platform) shares.
package geo

import (
	"math"
	"strings"

	"github.com/ripixel/fitglue-kernel/pkg/kernel/kernelerr"
)

const (
	geohashAlphabet = "0123456789bcdefghjkmnpqrstuvwxyz"
	earthRadiusM    = 6371000.0
)

var geohashIndex = buildGeohashIndex()

func buildGeohashIndex() map[byte]uint8 {
	idx := make(map[byte]uint8, len(geohashAlphabet))
	for i := 0; i < len(geohashAlphabet); i++ {
		idx[geohashAlphabet[i]] = uint8(i)
	}
	return idx
}

// Encode computes the base-32 geohash of (lat, lng) at the given
// precision (number of characters, 1-12).
func Encode(lat, lng float64, precision int) (string, error) {
	if lat < -90 || lat > 90 {
		return "", kernelerr.New(kernelerr.InvalidInput, "lat must be in [-90,90]")
	}
	if lng < -180 || lng > 180 {
		return "", kernelerr.New(kernelerr.InvalidInput, "lng must be in [-180,180]")
	}
	if precision < 1 || precision > 12 {
		return "", kernelerr.New(kernelerr.InvalidInput, "precision must be in [1,12]")
	}

	latRange := [2]float64{-90, 90}
	lngRange := [2]float64{-180, 180}

	var b strings.Builder
	bit, ch, evenBit := 0, uint8(0), true

	for b.Len() < precision {
		if evenBit {
			mid := (lngRange[0] + lngRange[1]) / 2
			if lng >= mid {
				ch = ch<<1 | 1
				lngRange[0] = mid
			} else {
				ch = ch << 1
				lngRange[1] = mid
			}
		} else {
			mid := (latRange[0] + latRange[1]) / 2
			if lat >= mid {
				ch = ch<<1 | 1
				latRange[0] = mid
			} else {
				ch = ch << 1
				latRange[1] = mid
			}
		}
		evenBit = !evenBit

		bit++
		if bit == 5 {
			b.WriteByte(geohashAlphabet[ch])
			bit, ch = 0, 0
		}
	}
	return b.String(), nil
}

// Point is a decoded geohash's cell center plus half-extents in degrees.
type Point struct {
	Lat, Lng           float64
	LatError, LngError float64
}

// Decode returns the center of the cell a geohash encodes.
func Decode(hash string) (Point, error) {
	if hash == "" || len(hash) > 12 {
		return Point{}, kernelerr.New(kernelerr.DecodeError, "geohash length must be in [1,12]")
	}

	latRange := [2]float64{-90, 90}
	lngRange := [2]float64{-180, 180}
	evenBit := true

	for i := 0; i < len(hash); i++ {
		idx, ok := geohashIndex[hash[i]]
		if !ok {
			return Point{}, kernelerr.Newf(kernelerr.DecodeError, "invalid geohash character %q", hash[i])
		}
		for n := 4; n >= 0; n-- {
			bitVal := (idx >> uint(n)) & 1
			if evenBit {
				mid := (lngRange[0] + lngRange[1]) / 2
				if bitVal == 1 {
					lngRange[0] = mid
				} else {
					lngRange[1] = mid
				}
			} else {
				mid := (latRange[0] + latRange[1]) / 2
				if bitVal == 1 {
					latRange[0] = mid
				} else {
					latRange[1] = mid
				}
			}
			evenBit = !evenBit
		}
	}

	return Point{
		Lat:      (latRange[0] + latRange[1]) / 2,
		Lng:      (lngRange[0] + lngRange[1]) / 2,
		LatError: (latRange[1] - latRange[0]) / 2,
		LngError: (lngRange[1] - lngRange[0]) / 2,
	}, nil
}

// CellExtents returns the half-extents (lat, lng) in degrees for a
// geohash of the given length. Interleaving starts with longitude, so a
// length-n hash spends ceil(5n/2) bits on longitude and floor(5n/2) on
// latitude.
func CellExtents(precision int) (latHalf, lngHalf float64) {
	totalBits := 5 * precision
	latBits := totalBits / 2
	lngBits := totalBits - latBits
	return 90 / math.Pow(2, float64(latBits)), 180 / math.Pow(2, float64(lngBits))
}

// direction indexes the 8 compass neighbors in a fixed, documented order.
var directions = []struct{ dLat, dLng float64 }{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// Neighbors returns the 8 cells surrounding hash at the same precision, in
// N, NE, E, SE, S, SW, W, NW order. Longitude wraps at the antimeridian;
// latitude clamps at the poles (returning the same-cell hash there rather
// than wrapping).
func Neighbors(hash string) ([]string, error) {
	center, err := Decode(hash)
	if err != nil {
		return nil, err
	}
	precision := len(hash)
	latHalf, lngHalf := CellExtents(precision)

	out := make([]string, 8)
	for i, d := range directions {
		lat := center.Lat + d.dLat*latHalf*2
		lng := center.Lng + d.dLng*lngHalf*2

		if lat > 90 || lat < -90 {
			out[i] = hash
			continue
		}
		lng = wrapLongitude(lng)

		h, err := Encode(lat, lng, precision)
		if err != nil {
			return nil, err
		}
		out[i] = h
	}
	return out, nil
}

func wrapLongitude(lng float64) float64 {
	for lng > 180 {
		lng -= 360
	}
	for lng < -180 {
		lng += 360
	}
	return lng
}

// Haversine returns the great-circle distance in meters between two
// points, using float64 trig throughout to bound rounding error.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaPhi := (lat2 - lat1) * math.Pi / 180
	deltaLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusM * c
}

// BoundingBox is a lat/lng rectangle.
type BoundingBox struct {
	MinLat, MaxLat, MinLng, MaxLng float64
}

// BoundsForRadius returns the axis-aligned bounding box containing a
// radius-r circle (meters) centered at (lat, lng). Near the poles
// (|lat| > 89.9°) the longitude span is the full [-180,180].
func BoundsForRadius(lat, lng, radiusM float64) BoundingBox {
	latDelta := (radiusM / earthRadiusM) * 180 / math.Pi

	if math.Abs(lat) > 89.9 {
		return BoundingBox{
			MinLat: clampLat(lat - latDelta),
			MaxLat: clampLat(lat + latDelta),
			MinLng: -180,
			MaxLng: 180,
		}
	}

	lngDelta := (radiusM / (earthRadiusM * math.Cos(lat*math.Pi/180))) * 180 / math.Pi
	return BoundingBox{
		MinLat: clampLat(lat - latDelta),
		MaxLat: clampLat(lat + latDelta),
		MinLng: lng - lngDelta,
		MaxLng: lng + lngDelta,
	}
}

func clampLat(lat float64) float64 {
	if lat > 90 {
		return 90
	}
	if lat < -90 {
		return -90
	}
	return lat
}

// Hit is one result of a radius filter or k-nearest query.
type Hit struct {
	ID       string
	Lat, Lng float64
	Distance float64
}

// FilterWithinRadius returns every (id, lat, lng, distance) within radiusM
// of (centerLat, centerLng), preserving input order. Fails with
// InvalidShape if lats/lngs/ids differ in length.
func FilterWithinRadius(centerLat, centerLng float64, lats, lngs []float64, ids []string, radiusM float64) ([]Hit, error) {
	if len(lats) != len(lngs) || len(lats) != len(ids) {
		return nil, kernelerr.Newf(kernelerr.InvalidShape, "lats (%d), lngs (%d), ids (%d) must have equal length", len(lats), len(lngs), len(ids))
	}

	var hits []Hit
	for i := range lats {
		d := Haversine(centerLat, centerLng, lats[i], lngs[i])
		if d <= radiusM {
			hits = append(hits, Hit{ID: ids[i], Lat: lats[i], Lng: lngs[i], Distance: d})
		}
	}
	return hits, nil
}

// KNearest returns the k closest points to (centerLat, centerLng) among
// lats/lngs/ids, ascending by distance, ties broken by input order. It
// supplements FilterWithinRadius for discovery use cases (nearby gyms,
// nearby routes) that don't have a natural radius cutoff.
func KNearest(centerLat, centerLng float64, lats, lngs []float64, ids []string, k int) ([]Hit, error) {
	if len(lats) != len(lngs) || len(lats) != len(ids) {
		return nil, kernelerr.Newf(kernelerr.InvalidShape, "lats (%d), lngs (%d), ids (%d) must have equal length", len(lats), len(lngs), len(ids))
	}
	if k < 0 {
		return nil, kernelerr.New(kernelerr.InvalidInput, "k must be non-negative")
	}

	hits := make([]Hit, len(lats))
	for i := range lats {
		hits[i] = Hit{ID: ids[i], Lat: lats[i], Lng: lngs[i], Distance: Haversine(centerLat, centerLng, lats[i], lngs[i])}
	}

	// Stable insertion sort by distance: input sizes here are small
	// (gym/route discovery lists), and stability preserves input-order
	// tie-breaking without a separate index array.
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].Distance < hits[j-1].Distance; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// BatchEncode encodes parallel arrays of lats/lngs at one precision,
// preserving input order. Fails with InvalidShape if lats/lngs differ in
// length.
func BatchEncode(lats, lngs []float64, precision int) ([]string, error) {
	if len(lats) != len(lngs) {
		return nil, kernelerr.Newf(kernelerr.InvalidShape, "lats (%d) != lngs (%d)", len(lats), len(lngs))
	}
	out := make([]string, len(lats))
	for i := range lats {
		h, err := Encode(lats[i], lngs[i], precision)
		if err != nil {
			return nil, err
		}
		out[i] = h
	}
	return out, nil
}
