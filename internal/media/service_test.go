package media

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeUploader struct {
	url   string
	err   error
	calls int
}

func (f *fakeUploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func TestUploadImage_Success(t *testing.T) {
	uploader := &fakeUploader{url: "https://i.ibb.co/abc123/photo.jpg"}
	svc, err := NewService(ServiceParams{Uploader: uploader})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	url := svc.UploadImage(context.Background(), "photo.jpg", "Телефоны", []byte{0xff, 0xd8})
	if url != uploader.url {
		t.Fatalf("expected provider url, got %q", url)
	}
	if uploader.calls != 1 {
		t.Fatalf("expected single upload attempt, got %d", uploader.calls)
	}
}

func TestUploadImage_FallbackNoRetry(t *testing.T) {
	uploader := &fakeUploader{err: errors.New("gateway timeout")}
	svc, err := NewService(ServiceParams{Uploader: uploader})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	url := svc.UploadImage(context.Background(), "iphone-13.jpg", "Телефоны", []byte{0xff})
	if !strings.HasPrefix(url, "https://i.ibb.co/") {
		t.Fatalf("expected placeholder url, got %q", url)
	}
	if uploader.calls != 1 {
		t.Fatalf("expected exactly one attempt, got %d", uploader.calls)
	}
}

func TestUploadImage_EmptyDataSkipsProvider(t *testing.T) {
	uploader := &fakeUploader{url: "https://i.ibb.co/abc123/photo.jpg"}
	svc, err := NewService(ServiceParams{Uploader: uploader})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	url := svc.UploadImage(context.Background(), "macbook.jpg", "Аксессуары", nil)
	if !strings.HasPrefix(url, "https://i.ibb.co/") {
		t.Fatalf("expected placeholder url, got %q", url)
	}
	if uploader.calls != 0 {
		t.Fatalf("provider must not be called for empty data, got %d calls", uploader.calls)
	}
}
