package imghost

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ishoep/pixelpage-backend/pkg/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(config.ImgBBConfig{
		APIKey:        "test-key",
		UploadURL:     server.URL,
		UploadTimeout: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, server
}

func TestUploadSuccess(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("key"); got != "test-key" {
			t.Errorf("expected api key field, got %q", got)
		}
		if got := r.FormValue("image"); got == "" {
			t.Error("expected base64 image field")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"url":"https://i.ibb.co/abc123/photo.jpg"}}`))
	})

	url, err := client.Upload(context.Background(), "photo.jpg", []byte("fake-image-bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "https://i.ibb.co/abc123/photo.jpg" {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestUploadServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	if _, err := client.Upload(context.Background(), "photo.jpg", []byte("data")); err == nil {
		t.Fatal("expected error on 502")
	}
}

func TestUploadUnsuccessfulResponse(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false}`))
	})

	if _, err := client.Upload(context.Background(), "photo.jpg", []byte("data")); err == nil {
		t.Fatal("expected error when response has no url")
	}
}

func TestUploadEmptyData(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	if _, err := client.Upload(context.Background(), "photo.jpg", nil); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(config.ImgBBConfig{UploadURL: "https://example.com"}); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestFallbackURL(t *testing.T) {
	cases := []struct {
		name     string
		category string
		want     string
	}{
		{"iPhone 13 дисплей", "Запчасти", FallbackPhoneURL},
		{"iPad Air", "Телефоны", FallbackTabletURL},
		{"Ноутбук HP", "Запчасти", FallbackLaptopURL},
		{"Чехол", "Аксессуары", FallbackAccessoryURL},
		{"", "", FallbackPhoneURL},
	}
	for _, tc := range cases {
		if got := FallbackURL(tc.name, tc.category); got != tc.want {
			t.Errorf("FallbackURL(%q, %q) = %q, want %q", tc.name, tc.category, got, tc.want)
		}
	}
}
