package trends

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"
)

const tweetSearchBody = `{"data":[{"id":"1","text":"New streetwear fashion drop","public_metrics":{"like_count":80,"retweet_count":20,"reply_count":5}}]}`

func TestTwitterSourceRetriesTransientFailure(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tw-token" {
			t.Errorf("Authorization = %q", got)
		}
		_, _ = w.Write([]byte(tweetSearchBody))
	}))
	defer server.Close()

	source := NewTwitterSource("tw-token", []string{"#fashion"})
	source.SetBaseURL(server.URL)

	records, err := source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want retry after 502", attempts)
	}
	if len(records) != 1 || records[0].Score != 100 {
		t.Errorf("records = %+v, want one record scored by engagement", records)
	}
}

func TestTwitterSourceTruncatesTitleOnRuneBoundary(t *testing.T) {
	text := strings.Repeat("é", 150)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":"1","text":"` + text + `","public_metrics":{"like_count":80,"retweet_count":20}}]}`))
	}))
	defer server.Close()

	source := NewTwitterSource("tw-token", []string{"#fashion"})
	source.SetBaseURL(server.URL)

	records, err := source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if !utf8.ValidString(records[0].Title) {
		t.Errorf("title is not valid UTF-8: %q", records[0].Title)
	}
	if n := utf8.RuneCountInString(records[0].Title); n != 100 {
		t.Errorf("title rune count = %d, want 100", n)
	}
	if records[0].Description != text {
		t.Errorf("description must keep the full text")
	}
}

func TestGoogleTrendsSourceRetriesTransientFailure(t *testing.T) {
	body := `)]}',
{"default":{"trendingSearchesDays":[{"trendingSearches":[{"title":{"query":"summer fashion week"},"formattedTraffic":"200K+"},{"title":{"query":"local election results"},"formattedTraffic":"500K+"}]}]}}`

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	source := NewGoogleTrendsSource()
	source.SetBaseURL(server.URL)

	records, err := source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want retry after 503", attempts)
	}
	if len(records) != 1 || records[0].Title != "summer fashion week" {
		t.Errorf("records = %+v, want only the fashion-related search", records)
	}
}
