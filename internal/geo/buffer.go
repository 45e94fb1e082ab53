package geo

import (
	"math"

	"github.com/rotisserie/eris"
	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/naija-prop/intel-cli/internal/model"
)

// BufferPolygon traces the corridor buffer as a closed polygon in lng/lat
// order: the segment offset laterally by halfWidthKM on each side, with the
// endpoint tolerance margin included. Map overlays consume this via
// BufferGeoJSON.
func BufferPolygon(origin, destination model.Coordinate, halfWidthKM float64) (*geom.Polygon, error) {
	if halfWidthKM <= 0 {
		return nil, eris.Wrapf(model.ErrInvalidInput, "corridor half-width must be positive, got %.2f", halfWidthKM)
	}

	bearing := BearingRad(origin.Lat, origin.Lng, destination.Lat, destination.Lng)
	left := bearing - math.Pi/2
	right := bearing + math.Pi/2

	// Extend the segment by the endpoint tolerance before offsetting.
	backLat, backLng := DestinationPoint(origin.Lat, origin.Lng, bearing+math.Pi, EndpointToleranceKM)
	fwdLat, fwdLng := DestinationPoint(destination.Lat, destination.Lng, bearing, EndpointToleranceKM)

	corners := make([][]float64, 0, 5)
	for _, c := range []struct {
		lat, lng, side float64
	}{
		{backLat, backLng, left},
		{fwdLat, fwdLng, left},
		{fwdLat, fwdLng, right},
		{backLat, backLng, right},
	} {
		lat, lng := DestinationPoint(c.lat, c.lng, c.side, halfWidthKM)
		corners = append(corners, []float64{lng, lat})
	}
	corners = append(corners, corners[0]) // close the ring

	flat := make([]float64, 0, len(corners)*2)
	for _, c := range corners {
		flat = append(flat, c...)
	}

	poly := geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)})
	return poly, nil
}

// BufferGeoJSON encodes the corridor buffer polygon as GeoJSON.
func BufferGeoJSON(origin, destination model.Coordinate, halfWidthKM float64) ([]byte, error) {
	poly, err := BufferPolygon(origin, destination, halfWidthKM)
	if err != nil {
		return nil, err
	}
	raw, err := geojson.Marshal(poly)
	if err != nil {
		return nil, eris.Wrap(err, "corridor: encode buffer geojson")
	}
	return raw, nil
}
