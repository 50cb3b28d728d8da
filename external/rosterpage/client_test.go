package rosterpage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Errorf("expected user agent header")
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<div class="roster-player"><img src="img/jg.png"><span class="name">Jose Garcia</span><span class="height">5-10</span></div>`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Timeout: time.Second})
	details, err := client.FetchDetails(context.Background(), "Tormenta FC", server.URL+"/roster/")
	if err != nil {
		t.Fatalf("fetch details: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("expected 1 row, got %d", len(details))
	}
	if details[0].PhotoURL != server.URL+"/roster/img/jg.png" {
		t.Fatalf("unexpected photo url: %q", details[0].PhotoURL)
	}
	if details[0].Height != "5-10" || details[0].Team != "Tormenta FC" {
		t.Fatalf("unexpected row: %+v", details[0])
	}
}

func TestFetchDetails_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Timeout: time.Second})
	if _, err := client.FetchDetails(context.Background(), "Team", server.URL); err == nil {
		t.Fatalf("expected status error")
	}
	if _, err := client.FetchDetails(context.Background(), "Team", "not a url"); err == nil {
		t.Fatalf("expected invalid url error")
	}
}
