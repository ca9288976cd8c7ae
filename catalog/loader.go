package catalog

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/signalsfoundry/space-traffic-simulator/model"
)

type catalogYAML struct {
	Objects []objectYAML `yaml:"objects"`
}

type objectYAML struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Line1 string `yaml:"tle1"`
	Line2 string `yaml:"tle2"`

	MassKg             float64 `yaml:"mass_kg"`
	DragCoefficient    float64 `yaml:"drag_coefficient"`
	CrossSectionalArea float64 `yaml:"cross_sectional_area"`
}

// Load reads a YAML object list from r and populates the catalog. It fails
// on YAML errors and on duplicate IDs, mirroring Add.
func Load(c *Catalog, r io.Reader) (added []string, err error) {
	if c == nil {
		return nil, fmt.Errorf("catalog.Load: catalog is nil")
	}

	var payload catalogYAML
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("catalog.Load: decode failed: %w", err)
	}

	for _, o := range payload.Objects {
		obj := &Object{
			ID:    o.ID,
			Name:  o.Name,
			Line1: o.Line1,
			Line2: o.Line2,
			Params: model.SatelliteParameters{
				MassKg:             o.MassKg,
				DragCoefficient:    o.DragCoefficient,
				CrossSectionalArea: o.CrossSectionalArea,
			},
		}
		if err := c.Add(obj); err != nil {
			return added, err
		}
		added = append(added, o.ID)
	}
	return added, nil
}
