package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/naija-prop/intel-cli/internal/model"
)

// datasetFile is the on-disk shape of a zone dataset. The map preserves the
// original dataset layout (zone name as key); insertion order is recovered
// from the explicit order list when present, otherwise sorted by name so
// loads are deterministic.
type datasetFile struct {
	Zones map[string]model.Zone `json:"zones" yaml:"zones"`
	Order []string              `json:"order,omitempty" yaml:"order,omitempty"`
}

// FileSource loads zones from a JSON or YAML dataset file. The format is
// chosen by file extension.
type FileSource struct {
	Path string
}

// NewFileSource creates a FileSource for the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Load reads and decodes the dataset. The zone map key is authoritative for
// the canonical name; a record whose embedded name disagrees with its key is
// rejected rather than silently renamed.
func (f *FileSource) Load(_ context.Context) ([]model.Zone, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read dataset %s", f.Path)
	}

	var ds datasetFile
	switch ext := strings.ToLower(filepath.Ext(f.Path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &ds); err != nil {
			return nil, eris.Wrapf(err, "catalog: decode yaml dataset %s", f.Path)
		}
	case ".json":
		if err := json.Unmarshal(raw, &ds); err != nil {
			return nil, eris.Wrapf(err, "catalog: decode json dataset %s", f.Path)
		}
	default:
		return nil, eris.Errorf("catalog: unsupported dataset extension %q", ext)
	}

	if len(ds.Zones) == 0 {
		return nil, eris.Wrapf(model.ErrData, "dataset %s: no zones", f.Path)
	}

	names := ds.Order
	if len(names) == 0 {
		names = sortedKeys(ds.Zones)
	}

	zones := make([]model.Zone, 0, len(ds.Zones))
	seen := make(map[string]bool, len(ds.Zones))
	for _, name := range names {
		z, ok := ds.Zones[name]
		if !ok {
			return nil, eris.Wrapf(model.ErrData, "dataset %s: order lists unknown zone %q", f.Path, name)
		}
		if z.Name == "" {
			z.Name = name
		} else if z.Name != name {
			return nil, eris.Wrapf(model.ErrData, "zone %q: name field %q disagrees with dataset key", name, z.Name)
		}
		seen[name] = true
		zones = append(zones, z)
	}

	// Zones present in the map but missing from the order list are appended
	// deterministically.
	for _, name := range sortedKeys(ds.Zones) {
		if seen[name] {
			continue
		}
		z := ds.Zones[name]
		if z.Name == "" {
			z.Name = name
		}
		zones = append(zones, z)
	}

	return zones, nil
}

func sortedKeys(m map[string]model.Zone) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
