package swaggerkit

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	phttp "spamguard/internal/platform/net/http"
	kit "spamguard/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func mounted(t *testing.T, enabled bool) http.Handler {
	t.Helper()
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), enabled)
	return mux
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestMount_Disabled(t *testing.T) {
	if rec := get(mounted(t, false), "/api/docs/doc.json"); rec.Code != http.StatusNotFound {
		t.Fatalf("disabled docs served %d", rec.Code)
	}
}

func TestMount_Redirect(t *testing.T) {
	rec := get(mounted(t, true), "/api/docs")
	if rec.Code != http.StatusPermanentRedirect || rec.Header().Get("Location") != "/api/docs/" {
		t.Fatalf("redirect = %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestDocJSON_Registered(t *testing.T) {
	kit.Serial(t)
	t.Setenv("CORE_API_DOCS_TITLE_SUFFIX", "(test)")

	rec := get(mounted(t, true), "/api/docs/doc.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("doc.json status %d", rec.Code)
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("doc.json should not be cached")
	}

	spec := kit.MustDecode[map[string]any](t, rec.Body.Bytes())
	if spec["openapi"] != "3.0.3" {
		t.Fatalf("openapi = %v", spec["openapi"])
	}
	info := spec["info"].(map[string]any)
	if info["title"] != "spamguard API (test)" {
		t.Fatalf("title = %v", info["title"])
	}
	servers := spec["servers"].([]any)
	if servers[0].(map[string]any)["url"] != "/api/v1" {
		t.Fatalf("servers = %v", servers)
	}

	paths := spec["paths"].(map[string]any)
	post := paths["/spam-detection"].(map[string]any)["post"].(map[string]any)
	resps := post["responses"].(map[string]any)
	for _, code := range []string{"200", "400", "500"} {
		if _, ok := resps[code]; !ok {
			t.Fatalf("missing %s response on /spam-detection", code)
		}
	}
	schemas := spec["components"].(map[string]any)["schemas"].(map[string]any)
	if _, ok := schemas["ErrorResponse"]; !ok {
		t.Fatalf("ErrorResponse schema not injected")
	}
}

func TestDocJSON_Mutators(t *testing.T) {
	kit.Serial(t)
	kit.Swap(t, &mutators, newRegistry())
	Register("nil", nil)
	Register("mark", func(spec map[string]any) { spec["x-mutated"] = true })

	spec := kit.MustDecode[map[string]any](t, get(mounted(t, true), "/api/docs/doc.json").Body.Bytes())
	if spec["x-mutated"] != true {
		t.Fatalf("mutator not applied")
	}
}

func TestRegister_ReplacesByKey(t *testing.T) {
	kit.Serial(t)
	kit.Swap(t, &mutators, newRegistry())

	for i := range 5 {
		Register("limit", func(spec map[string]any) { spec["x-limit"] = i })
	}
	Register("other", func(spec map[string]any) { spec["x-other"] = true })

	if n := len(mutators.list()); n != 2 {
		t.Fatalf("registry holds %d mutators, want 2", n)
	}
	spec := kit.MustDecode[map[string]any](t, get(mounted(t, true), "/api/docs/doc.json").Body.Bytes())
	if spec["x-limit"] != float64(4) || spec["x-other"] != true {
		t.Fatalf("spec = %v %v", spec["x-limit"], spec["x-other"])
	}
}

func TestRegister_Concurrent(t *testing.T) {
	kit.Serial(t)
	kit.Swap(t, &mutators, newRegistry())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				Register("same", func(map[string]any) {})
				_ = mutators.list()
			}
		}()
	}
	wg.Wait()
	if n := len(mutators.list()); n != 1 {
		t.Fatalf("registry holds %d mutators, want 1", n)
	}
}

func TestDocJSON_ParseError(t *testing.T) {
	kit.Serial(t)
	kit.Swap(t, &docReader, func() string { return "{nope" })

	if rec := get(mounted(t, true), "/api/docs/doc.json"); rec.Code != http.StatusInternalServerError {
		t.Fatalf("bad doc served %d", rec.Code)
	}
}

func TestEnsureServers_Lifts(t *testing.T) {
	spec := map[string]any{"swagger": "2.0"}
	ensureServers(spec, "/x")
	if spec["openapi"] != "3.0.3" || spec["swagger"] != nil {
		t.Fatalf("swagger 2 not lifted: %v", spec)
	}

	spec = map[string]any{"openapi": "3.1.0", "servers": []any{}}
	ensureServers(spec, "/x")
	if spec["openapi"] != "3.0.3" || len(spec["servers"].([]any)) != 0 {
		t.Fatalf("3.1 not downsampled or servers overwritten: %v", spec)
	}
}
