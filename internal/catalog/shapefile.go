package catalog

import (
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/naija-prop/intel-cli/internal/model"
)

// BackfillCoordinates fills in missing zone coordinates from a point
// shapefile whose NAME attribute carries the zone's canonical name or an
// alias. Zones that already have a coordinate are left untouched; zones
// without a shapefile match are reported so the dataset can be fixed.
// Returns the names of zones that remain without coordinates.
func BackfillCoordinates(zones []model.Zone, shapefilePath string) ([]string, error) {
	reader, err := shp.Open(shapefilePath)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: open shapefile %s", shapefilePath)
	}
	defer reader.Close() //nolint:errcheck

	nameIdx := fieldIndex(reader, "NAME")
	if nameIdx < 0 {
		return nil, eris.New("catalog: shapefile has no NAME field")
	}

	points := make(map[string]model.Coordinate)
	for reader.Next() {
		n, shape := reader.Shape()
		point, ok := shape.(*shp.Point)
		if !ok {
			continue
		}
		name := strings.TrimSpace(strings.TrimRight(reader.ReadAttribute(n, nameIdx), "\x00"))
		if name == "" {
			continue
		}
		points[strings.ToLower(name)] = model.Coordinate{Lat: point.Y, Lng: point.X}
	}

	var missing []string
	for i := range zones {
		z := &zones[i]
		if z.Coordinate.Lat != 0 || z.Coordinate.Lng != 0 {
			continue
		}
		coord, ok := lookupPoint(points, z)
		if !ok {
			missing = append(missing, z.Name)
			continue
		}
		z.Coordinate = coord
		zap.L().Debug("catalog: backfilled coordinate from shapefile",
			zap.String("zone", z.Name),
			zap.Float64("lat", coord.Lat),
			zap.Float64("lng", coord.Lng),
		)
	}

	return missing, nil
}

// lookupPoint tries the canonical name first, then each alias in order.
func lookupPoint(points map[string]model.Coordinate, z *model.Zone) (model.Coordinate, bool) {
	if c, ok := points[strings.ToLower(z.Name)]; ok {
		return c, true
	}
	for _, alias := range z.Aliases {
		if c, ok := points[strings.ToLower(alias)]; ok {
			return c, true
		}
	}
	return model.Coordinate{}, false
}

// fieldIndex returns the index of a named attribute field, or -1.
func fieldIndex(reader *shp.Reader, name string) int {
	for i, f := range reader.Fields() {
		if strings.EqualFold(strings.TrimRight(f.String(), "\x00"), name) {
			return i
		}
	}
	return -1
}
