package repositories

import (
	"encoding/json"
	"fmt"
	"grid-conversion-service/internal/domain"
	"os"
	"strings"
)

type GridSeed struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	EllipsoidID     int     `json:"ellipsoid_id"`
	FalseEasting    float64 `json:"false_easting"`
	FalseNorthing   float64 `json:"false_northing"`
	OriginLatitude  float64 `json:"origin_latitude"`
	OriginLongitude float64 `json:"origin_longitude"`
	ScaleFactor     float64 `json:"scale_factor"`
}

func (s GridSeed) toNamedGrid() *domain.NamedGrid {
	return &domain.NamedGrid{
		Name:        strings.ToLower(strings.TrimSpace(s.Name)),
		Description: strings.TrimSpace(s.Description),
		Ellipsoid:   domain.EllipsoidID(s.EllipsoidID),
		Params: domain.GridParameters{
			FalseEasting:    s.FalseEasting,
			FalseNorthing:   s.FalseNorthing,
			OriginLatitude:  s.OriginLatitude,
			OriginLongitude: s.OriginLongitude,
			ScaleFactor:     s.ScaleFactor,
		},
	}
}

// LoadGridSeeds reads and validates grid definitions from a JSON file.
// Names are normalized to lower case and must be unique.
func LoadGridSeeds(jsonPath string) ([]*domain.NamedGrid, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load grid seeds: read %q: %w", jsonPath, err)
	}

	var data []GridSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("load grid seeds: parse json: %w", err)
	}

	seen := make(map[string]struct{}, len(data))
	grids := make([]*domain.NamedGrid, 0, len(data))
	for i, item := range data {
		g := item.toNamedGrid()
		if err := g.Validate(); err != nil {
			return nil, fmt.Errorf("load grid seeds: item at index %d: %w", i+1, err)
		}

		if _, ok := seen[g.Name]; ok {
			return nil, fmt.Errorf("load grid seeds: duplicate name %q at index %d", g.Name, i+1)
		}
		seen[g.Name] = struct{}{}

		grids = append(grids, g)
	}

	return grids, nil
}
