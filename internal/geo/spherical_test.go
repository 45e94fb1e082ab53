package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const degKM = 111.195 // km per degree of latitude (and of longitude at the equator)

func TestHaversineKM(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		wantKM                 float64
		tol                    float64
	}{
		{"same point", 6.45, 3.47, 6.45, 3.47, 0, 0.001},
		{"one degree longitude at equator", 0, 0, 0, 1, degKM, 0.1},
		{"one degree latitude", 0, 0, 1, 0, degKM, 0.1},
		{"ajah to victoria island", 6.4698, 3.5852, 6.4281, 3.4216, 18.7, 1.5},
		{"lagos to abuja", 6.5244, 3.3792, 9.0765, 7.3986, 523, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKM(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			assert.InDelta(t, tt.wantKM, got, tt.tol)
		})
	}
}

func TestHaversineSymmetry(t *testing.T) {
	ab := HaversineKM(6.4698, 3.5852, 9.0765, 7.3986)
	ba := HaversineKM(9.0765, 7.3986, 6.4698, 3.5852)
	assert.InDelta(t, ab, ba, 1e-9)
}

func TestBearingRad(t *testing.T) {
	// Due east along the equator.
	assert.InDelta(t, math.Pi/2, BearingRad(0, 0, 0, 1), 0.001)
	// Due north.
	assert.InDelta(t, 0, BearingRad(0, 0, 1, 0), 0.001)
	// Due south.
	assert.InDelta(t, math.Pi, math.Abs(BearingRad(1, 0, 0, 0)), 0.001)
}

func TestTrackDistancesOnSegment(t *testing.T) {
	// Segment due east along the equator from (0,0) to (0,1).
	cross, along := TrackDistances(0, 0, 0, 1, 0, 0.5)
	assert.InDelta(t, 0, cross, 0.01)
	assert.InDelta(t, degKM/2, along, 0.1)
}

func TestTrackDistancesLateralOffset(t *testing.T) {
	// A point 0.01 degrees north of the midpoint: ~1.11 km cross-track.
	cross, along := TrackDistances(0, 0, 0, 1, 0.01, 0.5)
	assert.InDelta(t, 1.11, cross, 0.05)
	assert.InDelta(t, degKM/2, along, 0.2)
}

func TestTrackDistancesBeyondEndpoints(t *testing.T) {
	// Projection past the destination.
	_, along := TrackDistances(0, 0, 0, 1, 0, 1.1)
	assert.Greater(t, along, degKM)

	// Projection behind the origin is negative.
	_, along = TrackDistances(0, 0, 0, 1, 0, -0.05)
	assert.Less(t, along, 0.0)
	assert.InDelta(t, -0.05*degKM, along, 0.2)
}

func TestTrackDistancesAtOrigin(t *testing.T) {
	cross, along := TrackDistances(0, 0, 0, 1, 0, 0)
	assert.Zero(t, cross)
	assert.Zero(t, along)
}

func TestDestinationPoint(t *testing.T) {
	// One degree of arc due east from the origin.
	lat, lng := DestinationPoint(0, 0, math.Pi/2, degKM)
	assert.InDelta(t, 0, lat, 0.001)
	assert.InDelta(t, 1, lng, 0.001)

	// Round trip: out and back.
	lat, lng = DestinationPoint(6.45, 3.47, 0.8, 25)
	backLat, backLng := DestinationPoint(lat, lng, 0.8+math.Pi, 25)
	assert.InDelta(t, 6.45, backLat, 0.001)
	assert.InDelta(t, 3.47, backLng, 0.001)
}
