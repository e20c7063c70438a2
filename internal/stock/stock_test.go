package stock

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestPexelsSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "px-key" {
			t.Errorf("Authorization = %q", got)
		}
		q := r.URL.Query()
		if q.Get("query") != "streetwear" || q.Get("per_page") != "5" || q.Get("orientation") != "portrait" {
			t.Errorf("query params = %v", q)
		}
		_, _ = w.Write([]byte(`{"videos":[{"id":101,"duration":12.5,"video_files":[{"link":"https://cdn.example/v.mp4","width":1080,"height":1920,"quality":"hd"}]}]}`))
	}))
	defer server.Close()

	client := NewPexelsClient("px-key")
	client.SetBaseURL(server.URL)

	videos, err := client.Search(context.Background(), "streetwear", 5, "portrait")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(videos) != 1 {
		t.Fatalf("len(videos) = %d, want 1", len(videos))
	}
	if videos[0].ID != 101 || len(videos[0].VideoFiles) != 1 {
		t.Errorf("video = %+v", videos[0])
	}
}

func TestPexelsSearchAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewPexelsClient("bad-key")
	client.SetBaseURL(server.URL)

	if _, err := client.Search(context.Background(), "fashion", 5, "portrait"); err == nil {
		t.Fatal("Search() expected error on 403")
	}
}

func TestPexelsDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("video bytes"))
	}))
	defer server.Close()

	client := NewPexelsClient("px-key")
	destPath := filepath.Join(t.TempDir(), "clip.mp4")

	if err := client.Download(context.Background(), server.URL, destPath); err != nil {
		t.Fatalf("Download() error = %v", err)
	}

	data, err := os.ReadFile(destPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "video bytes" {
		t.Errorf("file content = %q", data)
	}
}

func TestUnsplashSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Client-ID us-key" {
			t.Errorf("Authorization = %q", got)
		}
		_, _ = w.Write([]byte(`{"results":[{"id":"abc","urls":{"regular":"https://img.example/r.jpg","full":"https://img.example/f.jpg"}}]}`))
	}))
	defer server.Close()

	client := NewUnsplashClient("us-key")
	client.SetBaseURL(server.URL)

	photos, err := client.Search(context.Background(), "fashion", 5, "portrait")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(photos) != 1 || photos[0].URLs.Regular != "https://img.example/r.jpg" {
		t.Errorf("photos = %+v", photos)
	}
}

func TestUnsplashDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("jpeg bytes"))
	}))
	defer server.Close()

	client := NewUnsplashClient("us-key")
	destPath := filepath.Join(t.TempDir(), "photo.jpg")

	if err := client.Download(context.Background(), server.URL, destPath); err != nil {
		t.Fatalf("Download() error = %v", err)
	}

	data, _ := os.ReadFile(destPath)
	if string(data) != "jpeg bytes" {
		t.Errorf("file content = %q", data)
	}
}

func TestPexelsSearchRetriesTransientFailure(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"videos":[]}`))
	}))
	defer server.Close()

	client := NewPexelsClient("px-key")
	client.SetBaseURL(server.URL)

	if _, err := client.Search(context.Background(), "fashion", 5, "landscape"); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want retry after 502", attempts)
	}
}
