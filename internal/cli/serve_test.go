package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/distviz/distviz/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	runner := pipeline.NewRunner(nil, nil, log.NewWithOptions(io.Discard, log.Options{}))
	srv := newServer(runner, log.NewWithOptions(io.Discard, log.Options{}))
	ts := httptest.NewServer(srv.routes())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServeHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestServeRenderAndFetch(t *testing.T) {
	ts := newTestServer(t)

	req := renderRequest{}
	req.Points.X = []float64{0.1, 0.4, 0.5, 0.7, 0.9, 1.2, 1.3, 1.8, 2.0, 2.4}
	req.Points.Y = []float64{1.0, 1.1, 1.3, 1.5, 1.9, 2.2, 2.5, 2.6, 3.0, 3.3}
	req.Options.Formats = []string{pipeline.FormatSVG}

	resp := postJSON(t, ts.URL+"/render", req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var rendered renderResponse
	if err := json.NewDecoder(resp.Body).Decode(&rendered); err != nil {
		t.Fatal(err)
	}
	if rendered.ID == "" || rendered.DataHash == "" {
		t.Fatalf("incomplete response: %+v", rendered)
	}

	figURL, ok := rendered.Figures[pipeline.FormatSVG]
	if !ok {
		t.Fatalf("no svg figure in %+v", rendered.Figures)
	}

	figResp, err := http.Get(ts.URL + figURL)
	if err != nil {
		t.Fatal(err)
	}
	defer figResp.Body.Close()
	if figResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", figResp.StatusCode)
	}
	if ct := figResp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("unexpected content type %q", ct)
	}
	data, err := io.ReadAll(figResp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("figure is not svg")
	}
}

func TestServeRenderRejectsShapeMismatch(t *testing.T) {
	ts := newTestServer(t)

	req := renderRequest{}
	req.Points.X = []float64{1, 2, 3}
	req.Points.Y = []float64{1, 2}

	resp := postJSON(t, ts.URL+"/render", req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}

	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Error.Code == "" {
		t.Error("expected an error code in the response")
	}
}

func TestServeRenderRejectsBadFormat(t *testing.T) {
	ts := newTestServer(t)

	req := renderRequest{}
	req.Points.X = []float64{1, 2, 3}
	req.Points.Y = []float64{1, 2, 3}
	req.Options.Formats = []string{"bmp"}

	resp := postJSON(t, ts.URL+"/render", req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestServeOutliers(t *testing.T) {
	ts := newTestServer(t)

	req := outliersRequest{Axis: "X"}
	req.Points.X = []float64{1, 2, 3, 4, 5, 100}
	req.Points.Y = []float64{1, 1, 1, 1, 1, 1}

	resp := postJSON(t, ts.URL+"/outliers", req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var reports []pipeline.OutlierReport
	if err := json.NewDecoder(resp.Body).Decode(&reports); err != nil {
		t.Fatal(err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected one report, got %d", len(reports))
	}
	if len(reports[0].Indices) != 1 || reports[0].Indices[0] != 5 {
		t.Errorf("expected indices [5], got %v", reports[0].Indices)
	}
}

func TestServeUnknownFigure(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/figures/nope/png")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestServeHome(t *testing.T) {
	runner := pipeline.NewRunner(nil, nil, log.NewWithOptions(io.Discard, log.Options{}))
	srv := newServer(runner, log.NewWithOptions(io.Discard, log.Options{}))
	srv.home = []byte("<html><body>figures</body></html>")
	ts := httptest.NewServer(srv.routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("unexpected content type %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(body, []byte("figures")) {
		t.Errorf("home page missing content: %q", body)
	}
}

func TestServeHomeWithoutPointsFile(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestServeRequestScopedLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	runner := pipeline.NewRunner(nil, nil, logger)
	srv := newServer(runner, logger)
	ts := httptest.NewServer(srv.routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	id := resp.Header.Get("X-Request-Id")
	if id == "" {
		t.Fatal("missing X-Request-Id header")
	}
	out := buf.String()
	if !strings.Contains(out, "request_id") || !strings.Contains(out, id) {
		t.Errorf("log output missing request id %q: %q", id, out)
	}
}
