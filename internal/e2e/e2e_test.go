package e2e

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"flaggingd/internal/flagctl"
	"flaggingd/internal/httpapi"
	"flaggingd/internal/model"
	"flaggingd/internal/registry"
	"flaggingd/internal/web"
	"flaggingd/pkg/types"
)

// maxQueryWindow mirrors the largest hours enum the API accepts.
const maxQueryWindow = 48

// newServer wires the real stack: seeded CSV dir -> registry -> model store
// -> httpapi mux with the HTML site mounted.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	end := time.Date(2020, 7, 11, 14, 0, 0, 0, time.UTC)
	if _, err := flagctl.WriteDemoData(dir, 72, end); err != nil {
		t.Fatalf("seed: %v", err)
	}
	store, err := model.New(model.Config{DataDir: dir, Loader: registry.LoadDir})
	if err != nil {
		t.Fatalf("model.New: %v", err)
	}
	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	site, err := web.New(store, zerolog.Nop())
	if err != nil {
		t.Fatalf("web.New: %v", err)
	}
	srv := httptest.NewServer(httpapi.NewMux(store, site.Routes()))
	t.Cleanup(srv.Close)
	return srv
}

func getBody(t *testing.T, url string) (int, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read %s: %v", url, err)
	}
	return resp.StatusCode, b
}

func TestModelEndpointEndToEnd(t *testing.T) {
	srv := newServer(t)
	code, body := getBody(t, srv.URL+"/api/v1/model?reach=2&reach=4&hours=12")
	if code != http.StatusOK {
		t.Fatalf("status=%d body=%s", code, body)
	}
	var resp types.ModelResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.Version != model.DefaultVersion {
		t.Fatalf("version=%q", resp.Version)
	}
	if len(resp.Models) != 2 {
		t.Fatalf("models=%v", len(resp.Models))
	}
	for _, key := range []string{"2", "4"} {
		series, ok := resp.Models[key]
		if !ok {
			t.Fatalf("missing reach %s", key)
		}
		n := len(series.Time)
		if n != 12 {
			t.Fatalf("reach %s: %d samples", key, n)
		}
		if len(series.LogOdds) != n || len(series.Probability) != n || len(series.Safe) != n {
			t.Fatalf("reach %s: arrays not parallel", key)
		}
		for i := range series.Probability {
			if series.Probability[i] < 0 || series.Probability[i] > 1 {
				t.Fatalf("reach %s: probability=%v", key, series.Probability[i])
			}
			if _, err := time.Parse(time.RFC3339, series.Time[i]); err != nil {
				t.Fatalf("reach %s: time %q: %v", key, series.Time[i], err)
			}
		}
	}
}

func TestModelDefaultQueryEndToEnd(t *testing.T) {
	srv := newServer(t)
	code, body := getBody(t, srv.URL+"/api/v1/model")
	if code != http.StatusOK {
		t.Fatalf("status=%d", code)
	}
	var resp types.ModelResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(resp.Models) != 4 {
		t.Fatalf("models=%d", len(resp.Models))
	}
	if got := len(resp.Models["3"].Time); got != 24 {
		t.Fatalf("default window=%d samples", got)
	}
}

func TestSitePagesEndToEnd(t *testing.T) {
	srv := newServer(t)
	for _, path := range []string{"/", "/about", "/output", "/api"} {
		code, body := getBody(t, srv.URL+path)
		if code != http.StatusOK {
			t.Fatalf("GET %s: status=%d", path, code)
		}
		html := string(body)
		if strings.Count(html, `class="banner"`) != 1 {
			t.Fatalf("%s: banner count wrong", path)
		}
		if !strings.Contains(html, "- CRWA Flagging Program</title>") {
			t.Fatalf("%s: title suffix missing", path)
		}
	}
}

func TestReadyAfterRefresh(t *testing.T) {
	srv := newServer(t)
	code, _ := getBody(t, srv.URL+"/readyz")
	if code != http.StatusOK {
		t.Fatalf("readyz=%d", code)
	}
	code, body := getBody(t, srv.URL+"/status")
	if code != http.StatusOK {
		t.Fatalf("status=%d", code)
	}
	var st types.StatusResponse
	if err := json.Unmarshal(body, &st); err != nil {
		t.Fatalf("json: %v", err)
	}
	if st.State != "ready" || st.SampleCount != maxQueryWindow {
		t.Fatalf("status=%+v", st)
	}
}
