package feedsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/draft-roster/internal/domain/feed"
	"github.com/riskibarqy/draft-roster/internal/platform/resilience"
)

func collegeFeed(url string) feed.Descriptor {
	return feed.Descriptor{Name: "njcaa-d1", League: "NJCAA D1", Schema: feed.SchemaCollege, URL: url}
}

func TestFetch_BareArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("unexpected accept header: %q", r.Header.Get("Accept"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"playerId":"a1","name":"Ana Ruiz","team":"Iowa Western"},{"playerId":"a2","name":"Bea Cruz","team":"Tyler"}]`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Timeout: time.Second})
	records := client.Fetch(context.Background(), collegeFeed(server.URL))
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	first, ok := records[0].(feed.CollegeRecord)
	if !ok {
		t.Fatalf("expected CollegeRecord, got %T", records[0])
	}
	if first.Name.String() != "Ana Ruiz" {
		t.Fatalf("unexpected first record: %+v", first)
	}
}

func TestFetch_PlayersEnvelopeSkipsBadRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"players":[{"playerId":"h1","name":"Cam Doe","club":"FC Dallas Academy"},"oops"],"count":2}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Timeout: time.Second})
	desc := feed.Descriptor{Name: "ecnl", League: "ECNL", Schema: feed.SchemaHighSchool, URL: server.URL}
	records := client.Fetch(context.Background(), desc)
	if len(records) != 1 {
		t.Fatalf("expected 1 decodable record, got %d", len(records))
	}
	if hs := records[0].(feed.HighSchoolRecord); hs.Club.String() != "FC Dallas Academy" {
		t.Fatalf("unexpected record: %+v", hs)
	}
}

func TestFetch_FailuresYieldEmpty(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		payload string
	}{
		{name: "not found", status: http.StatusNotFound, payload: `{"error":"missing"}`},
		{name: "bad json", status: http.StatusOK, payload: `[{"playerId":`},
		{name: "object without players", status: http.StatusOK, payload: `{"data":[]}`},
		{name: "scalar body", status: http.StatusOK, payload: `"nope"`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.payload))
			}))
			defer server.Close()

			client := NewClient(ClientConfig{Timeout: time.Second})
			if records := client.Fetch(context.Background(), collegeFeed(server.URL)); len(records) != 0 {
				t.Fatalf("expected no records, got %d", len(records))
			}
		})
	}
}

func TestFetch_TimeoutYieldsEmpty(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(ClientConfig{Timeout: 100 * time.Millisecond})
	start := time.Now()
	records := client.Fetch(context.Background(), collegeFeed(server.URL))
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("fetch did not honour timeout, took %s", elapsed)
	}
}

func TestFetch_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[{"playerId":"a1","name":"Ana Ruiz"}]`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Timeout: time.Second, MaxRetries: 1})
	records := client.Fetch(context.Background(), collegeFeed(server.URL))
	if len(records) != 1 {
		t.Fatalf("expected 1 record after retry, got %d", len(records))
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", calls.Load())
	}
}

func TestFetch_CircuitOpensPerFeed(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		Timeout: time.Second,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	desc := collegeFeed(server.URL)
	_ = client.Fetch(context.Background(), desc)
	_ = client.Fetch(context.Background(), desc)
	if calls.Load() != 1 {
		t.Fatalf("expected open circuit to short-circuit second fetch, got %d calls", calls.Load())
	}

	other := desc
	other.Name = "njcaa-d2"
	_ = client.Fetch(context.Background(), other)
	if calls.Load() != 2 {
		t.Fatalf("expected separate breaker per feed, got %d calls", calls.Load())
	}
}

func TestFetch_FilePath(t *testing.T) {
	dir := t.TempDir()
	payload := `[{"id":7,"club":{"name":"Tormenta FC"},"profile":{"playerProfile":{"playerName":"Jose Garcia"}}}]`
	if err := os.WriteFile(filepath.Join(dir, "usl.json"), []byte(payload), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	client := NewClient(ClientConfig{BaseDir: dir})
	desc := feed.Descriptor{Name: "usl-one", League: "USL League One", Schema: feed.SchemaPro, Path: "usl.json"}
	records := client.Fetch(context.Background(), desc)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	desc.Path = "missing.json"
	if records := client.Fetch(context.Background(), desc); len(records) != 0 {
		t.Fatalf("expected missing file to yield no records, got %d", len(records))
	}
}

func TestFetch_FileTooLarge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.json")
	if err := os.WriteFile(path, []byte(`[{"playerId":"a1","name":"Ana Ruiz"}]`), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	client := NewClient(ClientConfig{MaxBodyBytes: 8})
	desc := feed.Descriptor{Name: "big", League: "NJCAA D1", Schema: feed.SchemaCollege, Path: path}
	if records := client.Fetch(context.Background(), desc); len(records) != 0 {
		t.Fatalf("expected oversized file to be rejected, got %d", len(records))
	}
}

func TestFetch_InvalidDescriptor(t *testing.T) {
	client := NewClient(ClientConfig{})
	if records := client.Fetch(context.Background(), feed.Descriptor{Name: "x"}); records != nil {
		t.Fatalf("expected nil for invalid descriptor, got %v", records)
	}
}
