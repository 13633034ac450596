package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/annel0/shapebuilder/internal/builder"
	"github.com/annel0/shapebuilder/internal/logging"
	"github.com/annel0/shapebuilder/internal/vec"
	"github.com/annel0/shapebuilder/internal/world"
	"github.com/annel0/shapebuilder/internal/world/block"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "shapebuilder-api-logs")
	if err == nil {
		logging.LogDir = dir
	}
	gin.SetMode(gin.TestMode)
	code := m.Run()
	logging.GetLoggerManager().CloseAll()
	os.RemoveAll(dir)
	os.Exit(code)
}

type response struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T, maxCoords int) (*RestServer, *world.MemoryWorld) {
	t.Helper()
	w := world.NewMemoryWorld()
	reg := prometheus.NewRegistry()
	rs := NewRestServer(Config{
		Builder: builder.New(w),
		Blocks: BlockReaderFunc(func(pos vec.Vec3) (block.BlockID, error) {
			return w.GetBlock(pos), nil
		}),
		DefaultMaterial: block.StoneBlockID,
		MaxSampleCoords: maxCoords,
		MaxVolume:       1 << 22,
		Registerer:      reg,
		Gatherer:        reg,
	})
	return rs, w
}

func do(t *testing.T, rs *RestServer, method, path string, body interface{}) (int, response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	rs.Handler().ServeHTTP(w, req)

	var resp response
	if w.Header().Get("Content-Type") != "" && w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
	}
	return w.Code, resp
}

func TestSampleSphere(t *testing.T) {
	rs, w := newTestServer(t, 0)

	code, resp := do(t, rs, "POST", "/api/shapes/sample", map[string]interface{}{
		"shape":  "sphere",
		"center": map[string]int{"x": 0, "y": 70, "z": 0},
		"radius": 3,
		"policy": "hollow",
	})
	require.Equal(t, http.StatusOK, code, resp.Message)
	require.True(t, resp.Success)

	var data struct {
		Shape  string        `json:"shape"`
		Policy string        `json:"policy"`
		Passes []SampledPass `json:"passes"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "sphere", data.Shape)
	assert.Equal(t, "hollow", data.Policy)
	require.Len(t, data.Passes, 2)
	assert.Equal(t, "clear", data.Passes[0].Role)
	assert.Equal(t, data.Passes[1].Count, len(data.Passes[1].Coordinates))
	assert.Contains(t, data.Passes[1].Coordinates, vec.Vec3{X: 3, Y: 70})

	assert.Zero(t, w.SectionCount(), "sample не меняет мир")
}

func TestSampleTruncates(t *testing.T) {
	rs, _ := newTestServer(t, 5)

	code, resp := do(t, rs, "POST", "/api/shapes/sample", map[string]interface{}{
		"shape": "line",
		"from":  map[string]int{"x": 0, "y": 64, "z": 0},
		"to":    map[string]int{"x": 20, "y": 64, "z": 0},
	})
	require.Equal(t, http.StatusOK, code)

	var data struct {
		Passes []SampledPass `json:"passes"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Len(t, data.Passes, 1)
	assert.Equal(t, 21, data.Passes[0].Count)
	assert.Equal(t, 1, data.Passes[0].Boxes)
	assert.True(t, data.Passes[0].Truncated)
	assert.Len(t, data.Passes[0].Coordinates, 5)
}

func TestBuildAndReadBlock(t *testing.T) {
	rs, w := newTestServer(t, 0)

	code, resp := do(t, rs, "POST", "/api/shapes/build", map[string]interface{}{
		"shape":    "cuboid",
		"from":     map[string]int{"x": 0, "y": 64, "z": 0},
		"to":       map[string]int{"x": 3, "y": 66, "z": 3},
		"material": "brick",
	})
	require.Equal(t, http.StatusOK, code, resp.Message)

	var res builder.Result
	require.NoError(t, json.Unmarshal(resp.Data, &res))
	assert.Equal(t, 48, res.Coordinates)
	assert.Equal(t, 1, res.Boxes)
	assert.Equal(t, block.BrickBlockID, w.GetBlock(vec.Vec3{X: 3, Y: 66, Z: 3}))

	code, resp = do(t, rs, "GET", "/api/blocks/2/65/1", nil)
	require.Equal(t, http.StatusOK, code)
	var blk struct {
		ID   block.BlockID `json:"id"`
		Name string        `json:"name"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &blk))
	assert.Equal(t, block.BrickBlockID, blk.ID)
	assert.Equal(t, "brick", blk.Name)
}

func TestBuildDefaultMaterial(t *testing.T) {
	rs, w := newTestServer(t, 0)

	code, _ := do(t, rs, "POST", "/api/shapes/build", map[string]interface{}{
		"shape":  "circle",
		"center": map[string]int{"x": 0, "y": 80, "z": 0},
		"radius": 2,
		"axis":   "z",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, block.StoneBlockID, w.GetBlock(vec.Vec3{X: 2, Y: 80}))
}

func TestBadRequests(t *testing.T) {
	rs, _ := newTestServer(t, 0)

	cases := []struct {
		name string
		body interface{}
	}{
		{"unknown shape", map[string]interface{}{"shape": "pyramid", "center": map[string]int{}}},
		{"missing center", map[string]interface{}{"shape": "sphere", "radius": 3}},
		{"missing to", map[string]interface{}{"shape": "cuboid", "from": map[string]int{}}},
		{"bad policy", map[string]interface{}{"shape": "sphere", "center": map[string]int{}, "policy": "sparse"}},
		{"bad axis", map[string]interface{}{"shape": "circle", "center": map[string]int{}, "axis": "w"}},
		{"no shape", map[string]interface{}{"radius": 3}},
		{"bad material", map[string]interface{}{"shape": "sphere", "center": map[string]int{"y": 70}, "radius": 1, "material": "unobtainium"}},
		{"bad shell threshold", map[string]interface{}{"shape": "ellipsoid", "center": map[string]int{"y": 70}, "radius_x": 3, "radius_y": 3, "radius_z": 3, "shell_threshold": 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, resp := do(t, rs, "POST", "/api/shapes/build", tc.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Message)
		})
	}

	code, _ := do(t, rs, "GET", "/api/blocks/1/abc/3", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestOversizedShapeRejected(t *testing.T) {
	rs, w := newTestServer(t, 0)

	bodies := []map[string]interface{}{
		{
			"shape": "cuboid",
			"from":  map[string]int{"x": -30_000_000, "y": 0, "z": -30_000_000},
			"to":    map[string]int{"x": 30_000_000, "y": 255, "z": 30_000_000},
		},
		{"shape": "sphere", "center": map[string]int{"y": 64}, "radius": 2_000_000_000},
		{"shape": "torus", "center": map[string]int{"y": 64}, "major_radius": 1 << 40, "minor_radius": 2},
	}
	for _, body := range bodies {
		for _, path := range []string{"/api/shapes/sample", "/api/shapes/build"} {
			code, resp := do(t, rs, "POST", path, body)
			assert.Equal(t, http.StatusBadRequest, code, "%s %v", path, body["shape"])
			assert.False(t, resp.Success)
			assert.Contains(t, resp.Message, "слишком велика")
		}
	}
	assert.Zero(t, w.SectionCount())

	// фигура в пределах лимита проходит
	code, _ := do(t, rs, "POST", "/api/shapes/sample", map[string]interface{}{
		"shape":  "sphere",
		"center": map[string]int{"y": 64},
		"radius": 50,
	})
	assert.Equal(t, http.StatusOK, code)
}

func TestBlockReaderError(t *testing.T) {
	reg := prometheus.NewRegistry()
	rs := NewRestServer(Config{
		Blocks: BlockReaderFunc(func(vec.Vec3) (block.BlockID, error) {
			return 0, errors.New("disk on fire")
		}),
		Registerer: reg,
		Gatherer:   reg,
	})

	code, resp := do(t, rs, "GET", "/api/blocks/0/0/0", nil)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.False(t, resp.Success)

	code, _ = do(t, rs, "POST", "/api/shapes/build", map[string]interface{}{
		"shape": "sphere", "center": map[string]int{"y": 70}, "radius": 1,
	})
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestListsAndHealth(t *testing.T) {
	rs, _ := newTestServer(t, 0)

	code, resp := do(t, rs, "GET", "/api/materials", nil)
	require.Equal(t, http.StatusOK, code)
	var names []string
	require.NoError(t, json.Unmarshal(resp.Data, &names))
	assert.Contains(t, names, "stone")

	code, resp = do(t, rs, "GET", "/api/shapes", nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(resp.Data, &names))
	assert.Contains(t, names, "hyperboloid")

	code, _ = do(t, rs, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, code)

	code, resp = do(t, rs, "GET", "/api/server", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	rs.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "rest_api_http_request_duration_seconds")
}
