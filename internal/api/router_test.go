package api

import (
	"encoding/json"
	"fmt"
	"grid-conversion-service/internal/adapters/repositories"
	"grid-conversion-service/internal/api/dto"
	"grid-conversion-service/internal/domain"
	"grid-conversion-service/internal/platform/metrics"
	"grid-conversion-service/internal/services"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	osgb := &domain.NamedGrid{
		Name:        "osgb36",
		Description: "Ordnance Survey National Grid",
		Ellipsoid:   1,
		Params: domain.GridParameters{
			FalseEasting:    400000,
			FalseNorthing:   -100000,
			OriginLatitude:  49,
			OriginLongitude: -2,
			ScaleFactor:     0.9996012717,
		},
	}

	repo, err := repositories.NewMemoryGridRepository(domain.BermudaNationalGrid(), osgb)
	if err != nil {
		t.Fatalf("memory repo: %v", err)
	}
	catalog, err := services.NewGridCatalog(repo, nil)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	srv := httptest.NewServer(NewRouter(catalog, domain.BermudaNationalGridName, metrics.New()))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()

	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

func decode(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
}

func TestIndex(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/", "/bng/"} {
		resp, body := get(t, srv, path)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s status = %d", path, resp.StatusCode)
		}
		if string(body) != "To use API visit http://[host]/bng/[easting]/[northing]" {
			t.Fatalf("%s body = %q", path, body)
		}
	}
}

func TestBNG(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv, "/bng/540046/127672")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d body=%s", resp.StatusCode, body)
	}

	var res map[string]float64
	decode(t, body, &res)
	if len(res) != 2 {
		t.Fatalf("keys = %v, want lat and long only", res)
	}
	if !scalar.EqualWithinAbs(res["lat"], 32.249502700805216, 1e-9) || !scalar.EqualWithinAbs(res["long"], -64.85562798997576, 1e-9) {
		t.Fatalf("got %v", res)
	}

	if resp, _ := get(t, srv, "/bng/540046.5/127672"); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("non-integer status = %d, want 400", resp.StatusCode)
	}
}

func TestGridInverseAndForward(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv, "/grids/BNG/540046/127672")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d body=%s", resp.StatusCode, body)
	}
	var geo dto.GeodeticResponse
	decode(t, body, &geo)
	if geo.Grid != "bng" || !scalar.EqualWithinAbs(geo.Lat, 32.249502700805216, 1e-9) {
		t.Fatalf("inverse = %+v", geo)
	}

	resp, body = get(t, srv, "/grids/bng/forward?lat=32.249546&lon=-64.855876")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d body=%s", resp.StatusCode, body)
	}
	var proj dto.ProjectedResponse
	decode(t, body, &proj)
	if !scalar.EqualWithinAbs(proj.Easting, 540022.6331546815, 1e-6) || !scalar.EqualWithinAbs(proj.Northing, 127676.82448608456, 1e-6) {
		t.Fatalf("forward = %+v", proj)
	}

	if resp, _ := get(t, srv, "/grids/atlantis/1/2"); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown grid status = %d, want 404", resp.StatusCode)
	}
	if resp, _ := get(t, srv, "/grids/bng/abc/2"); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad easting status = %d, want 400", resp.StatusCode)
	}
	if resp, _ := get(t, srv, "/grids/bng/forward?lat=91&lon=0"); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad latitude status = %d, want 400", resp.StatusCode)
	}
}

func TestGridCatalogEndpoints(t *testing.T) {
	srv := newTestServer(t)

	_, body := get(t, srv, "/grids")
	var list dto.ListGridsResponse
	decode(t, body, &list)
	if len(list.Grids) != 2 || list.Grids[0].Name != "bng" || list.Grids[1].EllipsoidName != "Airy" {
		t.Fatalf("list = %+v", list)
	}

	resp, body := get(t, srv, "/grids/osgb36")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var g dto.GridResponse
	decode(t, body, &g)
	if g.ScaleFactor != 0.9996012717 || g.FalseNorthing != -100000 {
		t.Fatalf("grid = %+v", g)
	}
}

func TestUTMForward(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		query string
		zone  string
	}{
		{"lat=60&lon=5", "32V"},
		{"lat=60&lon=5&zone=31", "31V"},
		{"lat=-33.8688&lon=151.2093&ellipsoid=WGS-84", "56H"},
		{"lat=40&lon=-105&ellipsoid=5", "13T"},
	}
	for _, c := range cases {
		resp, body := get(t, srv, "/utm/forward?"+c.query)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: status = %d body=%s", c.query, resp.StatusCode, body)
		}
		var p dto.ProjectedResponse
		decode(t, body, &p)
		if p.Zone != c.zone {
			t.Fatalf("%s: zone = %s, want %s", c.query, p.Zone, c.zone)
		}
	}

	for _, q := range []string{"lat=1", "lat=1&lon=x", "lat=1&lon=1&zone=61", "lat=1&lon=1&zone=a", "lat=1&lon=1&ellipsoid=mars", "lat=NaN&lon=1"} {
		if resp, body := get(t, srv, "/utm/forward?"+q); resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: status = %d body=%s, want 400", q, resp.StatusCode, body)
		}
	}
}

func TestUTMInverse(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv, "/utm/inverse?easting=325165.7693&northing=3569608.462&zone=20s")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d body=%s", resp.StatusCode, body)
	}
	var c dto.GeodeticResponse
	decode(t, body, &c)
	if c.Zone != "20S" || !scalar.EqualWithinAbs(c.Lat, 32.24955209033614, 1e-9) || !scalar.EqualWithinAbs(c.Lon, -64.8558761421613, 1e-9) {
		t.Fatalf("inverse = %+v", c)
	}

	for _, q := range []string{"easting=1&northing=1", "easting=1&northing=1&zone=20I", "easting=1&northing=1&zone=0N", "easting=1&zone=20S"} {
		if resp, body := get(t, srv, "/utm/inverse?"+q); resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: status = %d body=%s, want 400", q, resp.StatusCode, body)
		}
	}
}

func TestGeoJSONFormat(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv, "/utm/inverse?easting=500000&northing=0&zone=31N&format=geojson")
	if ct := resp.Header.Get("Content-Type"); ct != "application/geo+json" {
		t.Fatalf("content type = %q", ct)
	}

	var f struct {
		Type     string `json:"type"`
		Geometry struct {
			Type        string    `json:"type"`
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties map[string]any `json:"properties"`
	}
	decode(t, body, &f)
	if f.Type != "Feature" || f.Geometry.Type != "Point" || len(f.Geometry.Coordinates) != 2 {
		t.Fatalf("feature = %s", body)
	}
	if !scalar.EqualWithinAbs(f.Geometry.Coordinates[0], 3, 1e-12) || !scalar.EqualWithinAbs(f.Geometry.Coordinates[1], 0, 1e-12) {
		t.Fatalf("coordinates = %v, want [3 0]", f.Geometry.Coordinates)
	}
	if f.Properties["zone"] != "31N" {
		t.Fatalf("properties = %v", f.Properties)
	}
}

func TestBatch(t *testing.T) {
	srv := newTestServer(t)

	body := `{"points":[{"easting":540046,"northing":127672},{"easting":550000,"northing":100000}]}`
	resp, err := http.Post(srv.URL+"/grids/bng/batch", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var res dto.BatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Grid != "bng" || len(res.Points) != 2 {
		t.Fatalf("batch = %+v", res)
	}
	if !scalar.EqualWithinAbs(res.Points[1].Lat, 32, 1e-8) || !scalar.EqualWithinAbs(res.Points[1].Lon, -64.75, 1e-12) {
		t.Fatalf("origin converted to %+v", res.Points[1])
	}
}

func TestBatchRejections(t *testing.T) {
	srv := newTestServer(t)

	var big strings.Builder
	big.WriteString(`{"points":[`)
	for i := 0; i <= services.MaxBatchPoints; i++ {
		if i > 0 {
			big.WriteString(",")
		}
		fmt.Fprintf(&big, `{"easting":%d,"northing":100000}`, 540000+i)
	}
	big.WriteString(`]}`)

	cases := []struct {
		name   string
		body   string
		status int
	}{
		{"unknown field", `{"pts":[]}`, http.StatusBadRequest},
		{"trailing object", `{"points":[]}{}`, http.StatusBadRequest},
		{"too many points", big.String(), http.StatusRequestEntityTooLarge},
	}
	for _, c := range cases {
		resp, err := http.Post(srv.URL+"/grids/bng/batch", "application/json", strings.NewReader(c.body))
		if err != nil {
			t.Fatalf("%s: post: %v", c.name, err)
		}
		resp.Body.Close()
		if resp.StatusCode != c.status {
			t.Fatalf("%s: status = %d, want %d", c.name, resp.StatusCode, c.status)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := get(t, srv, "/grids/bng/batch")
	if resp.StatusCode != http.StatusMethodNotAllowed || resp.Header.Get("Allow") != http.MethodPost {
		t.Fatalf("status = %d allow = %q", resp.StatusCode, resp.Header.Get("Allow"))
	}

	resp, err := http.Post(srv.URL+"/utm/forward?lat=1&lon=1", "text/plain", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed || resp.Header.Get("Allow") != http.MethodGet {
		t.Fatalf("status = %d allow = %q", resp.StatusCode, resp.Header.Get("Allow"))
	}
}

func TestEllipsoidsAndHealth(t *testing.T) {
	srv := newTestServer(t)

	_, body := get(t, srv, "/ellipsoids")
	var list dto.ListEllipsoidsResponse
	decode(t, body, &list)
	if len(list.Ellipsoids) != 23 || list.Ellipsoids[22].Name != "WGS-84" {
		t.Fatalf("ellipsoids = %+v", list)
	}

	resp, body := get(t, srv, "/health")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `"ok"`) {
		t.Fatalf("health = %d %s", resp.StatusCode, body)
	}
}

func TestRequestIDAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := get(t, srv, "/health")
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatal("missing X-Request-ID")
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	req.Header.Set("X-Request-ID", "0b6b7f5e-1c1e-4a43-9d8e-8a3f3f7c2e11")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp2.Body.Close()
	if got := resp2.Header.Get("X-Request-ID"); got != "0b6b7f5e-1c1e-4a43-9d8e-8a3f3f7c2e11" {
		t.Fatalf("request id = %q, want the client's", got)
	}

	get(t, srv, "/utm/forward?lat=60&lon=5")

	_, body := get(t, srv, "/metrics")
	for _, want := range []string{
		`gridconv_http_requests_total{method="GET",route="/health",status="200"} 2`,
		`gridconv_conversions_total{kind="utm_forward",outcome="ok"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("metrics missing %q", want)
		}
	}
}
