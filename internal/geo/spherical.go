// Package geo implements the corridor search: spherical route geometry,
// zone membership testing, and ranked, budget-filtered results.
//
// All distances use a spherical Earth model (haversine and the spherical
// cross-track/along-track formulas). A flat projection on raw lat/lng is
// measurably wrong at the 50-100 km scale corridors span, so it is not
// offered even as a fallback.
package geo

import "math"

// EarthRadiusKM is the mean Earth radius used by the spherical model.
const EarthRadiusKM = 6371.0

// HaversineKM returns the great-circle distance in kilometers between two
// points given in degrees.
func HaversineKM(lat1, lng1, lat2, lng2 float64) float64 {
	φ1, λ1 := radians(lat1), radians(lng1)
	φ2, λ2 := radians(lat2), radians(lng2)
	dφ, dλ := φ2-φ1, λ2-λ1

	a := math.Sin(dφ/2)*math.Sin(dφ/2) +
		math.Cos(φ1)*math.Cos(φ2)*math.Sin(dλ/2)*math.Sin(dλ/2)
	return EarthRadiusKM * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// BearingRad returns the initial great-circle bearing from point 1 to
// point 2, in radians from north.
func BearingRad(lat1, lng1, lat2, lng2 float64) float64 {
	φ1, φ2 := radians(lat1), radians(lat2)
	dλ := radians(lng2 - lng1)

	y := math.Sin(dλ) * math.Cos(φ2)
	x := math.Cos(φ1)*math.Sin(φ2) - math.Sin(φ1)*math.Cos(φ2)*math.Cos(dλ)
	return math.Atan2(y, x)
}

// TrackDistances returns the cross-track and along-track distances in
// kilometers of a point relative to the geodesic segment from origin to
// destination. Cross-track is the perpendicular distance to the great
// circle (always >= 0 here); along-track is the signed position of the
// point's projection along the segment, negative when the projection falls
// behind the origin.
func TrackDistances(originLat, originLng, destLat, destLng, pointLat, pointLng float64) (crossKM, alongKM float64) {
	d13 := HaversineKM(originLat, originLng, pointLat, pointLng)
	if d13 == 0 {
		return 0, 0
	}
	θ13 := BearingRad(originLat, originLng, pointLat, pointLng)
	θ12 := BearingRad(originLat, originLng, destLat, destLng)

	δ13 := d13 / EarthRadiusKM
	crossRad := math.Asin(math.Sin(δ13) * math.Sin(θ13-θ12))
	crossKM = math.Abs(crossRad * EarthRadiusKM)

	alongRad := math.Acos(clampUnit(math.Cos(δ13) / math.Cos(crossRad)))
	alongKM = alongRad * EarthRadiusKM
	if math.Cos(θ13-θ12) < 0 {
		alongKM = -alongKM
	}
	return crossKM, alongKM
}

// DestinationPoint returns the point reached by travelling distanceKM from
// (lat, lng) on the given initial bearing (radians). Used to trace the
// corridor buffer outline.
func DestinationPoint(lat, lng, bearingRad, distanceKM float64) (destLat, destLng float64) {
	φ1, λ1 := radians(lat), radians(lng)
	δ := distanceKM / EarthRadiusKM

	φ2 := math.Asin(math.Sin(φ1)*math.Cos(δ) + math.Cos(φ1)*math.Sin(δ)*math.Cos(bearingRad))
	λ2 := λ1 + math.Atan2(
		math.Sin(bearingRad)*math.Sin(δ)*math.Cos(φ1),
		math.Cos(δ)-math.Sin(φ1)*math.Sin(φ2),
	)
	return degrees(φ2), degrees(λ2)
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// clampUnit keeps acos arguments inside [-1,1] against floating-point
// drift.
func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
