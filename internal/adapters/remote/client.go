package remote

import (
	"context"
	"errors"
	"fmt"
	"grid-conversion-service/internal/api/dto"
	"grid-conversion-service/internal/domain"
	"grid-conversion-service/internal/platform/obs"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client calls a running conversion service over HTTP.
//
// Requests are retried with exponential backoff on network errors,
// 429 and 5xx responses. The client is safe for concurrent use.
type Client struct {
	session     *http.Client
	baseURL     string
	backoff     time.Duration
	maxAttempts int
}

// NewClient builds a client for baseURL; a nil httpClient gets a 10s timeout.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("remote client: parse base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.New("remote client: base url must be an absolute http(s) url")
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		session:     httpClient,
		baseURL:     strings.TrimRight(u.String(), "/"),
		backoff:     200 * time.Millisecond,
		maxAttempts: 4,
	}, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// GridToGeodetic converts a position on a named grid to latitude/longitude.
func (c *Client) GridToGeodetic(ctx context.Context, grid string, easting, northing float64) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "remote.GridToGeodetic")(&err)

	path := fmt.Sprintf("/grids/%s/%s/%s", url.PathEscape(grid), formatFloat(easting), formatFloat(northing))

	var res dto.GeodeticResponse
	if err := c.getJSON(ctx, path, nil, &res); err != nil {
		return domain.Coordinates{}, fmt.Errorf("grid %q to geodetic: %w", grid, err)
	}
	return domain.Coordinates{Lat: res.Lat, Lon: res.Lon}, nil
}

// GridFromGeodetic converts latitude/longitude to a position on a named grid.
func (c *Client) GridFromGeodetic(ctx context.Context, grid string, lat, lon float64) (_ domain.ProjectedCoordinate, err error) {
	defer obs.Time(ctx, "remote.GridFromGeodetic")(&err)

	path := fmt.Sprintf("/grids/%s/forward", url.PathEscape(grid))
	query := map[string]string{"lat": formatFloat(lat), "lon": formatFloat(lon)}

	var res dto.ProjectedResponse
	if err := c.getJSON(ctx, path, query, &res); err != nil {
		return domain.ProjectedCoordinate{}, fmt.Errorf("grid %q from geodetic: %w", grid, err)
	}
	return domain.ProjectedCoordinate{Easting: res.Easting, Northing: res.Northing}, nil
}

// UTMForward projects to UTM. A zero zone lets the service pick the zone.
func (c *Client) UTMForward(ctx context.Context, ellipsoid string, lat, lon float64, zone int) (_ domain.ProjectedCoordinate, err error) {
	defer obs.Time(ctx, "remote.UTMForward")(&err)

	query := map[string]string{"lat": formatFloat(lat), "lon": formatFloat(lon)}
	if ellipsoid != "" {
		query["ellipsoid"] = ellipsoid
	}
	if zone != 0 {
		query["zone"] = strconv.Itoa(zone)
	}

	var res dto.ProjectedResponse
	if err := c.getJSON(ctx, "/utm/forward", query, &res); err != nil {
		return domain.ProjectedCoordinate{}, fmt.Errorf("utm forward: %w", err)
	}

	z, err := domain.ParseZoneDesignator(res.Zone)
	if err != nil {
		return domain.ProjectedCoordinate{}, fmt.Errorf("utm forward: %w", err)
	}
	return domain.ProjectedCoordinate{Easting: res.Easting, Northing: res.Northing, Zone: &z}, nil
}

// UTMInverse converts a UTM position with its zone designator to latitude/longitude.
func (c *Client) UTMInverse(ctx context.Context, ellipsoid string, easting, northing float64, zone string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "remote.UTMInverse")(&err)

	query := map[string]string{
		"easting":  formatFloat(easting),
		"northing": formatFloat(northing),
		"zone":     zone,
	}
	if ellipsoid != "" {
		query["ellipsoid"] = ellipsoid
	}

	var res dto.GeodeticResponse
	if err := c.getJSON(ctx, "/utm/inverse", query, &res); err != nil {
		return domain.Coordinates{}, fmt.Errorf("utm inverse: %w", err)
	}
	return domain.Coordinates{Lat: res.Lat, Lon: res.Lon}, nil
}

// Ellipsoids fetches the service's ellipsoid registry.
func (c *Client) Ellipsoids(ctx context.Context) (_ []domain.Ellipsoid, err error) {
	defer obs.Time(ctx, "remote.Ellipsoids")(&err)

	var res dto.ListEllipsoidsResponse
	if err := c.getJSON(ctx, "/ellipsoids", nil, &res); err != nil {
		return nil, fmt.Errorf("list ellipsoids: %w", err)
	}

	out := make([]domain.Ellipsoid, 0, len(res.Ellipsoids))
	for _, e := range res.Ellipsoids {
		out = append(out, domain.Ellipsoid{
			ID:                  domain.EllipsoidID(e.ID),
			Name:                e.Name,
			SemiMajorAxis:       e.SemiMajorAxis,
			EccentricitySquared: e.EccentricitySquared,
		})
	}
	return out, nil
}
