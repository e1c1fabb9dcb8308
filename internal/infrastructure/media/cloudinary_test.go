package media

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestCloudinary(t *testing.T, handler http.HandlerFunc) (*Cloudinary, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewCloudinary(Config{
		CloudName: "demo",
		APIKey:    "key123",
		APISecret: "secret456",
		Folder:    "restaurants",
	})
	c.baseURL = srv.URL
	return c, srv
}

func TestCloudinary_Upload_Success(t *testing.T) {
	var gotPath string
	var gotForm map[string]string

	c, _ := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("not a multipart request: %v", err)
		}
		gotForm = map[string]string{}
		for k, vs := range r.MultipartForm.Value {
			gotForm[k] = vs[0]
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Fatalf("file part missing: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url":"https://res.example.com/demo/img.jpg","public_id":"restaurants/img"}`))
	})

	asset, err := c.Upload(context.Background(), "img.jpg", strings.NewReader("binary"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if asset.URL != "https://res.example.com/demo/img.jpg" {
		t.Errorf("url: got %q", asset.URL)
	}
	if asset.PublicID != "restaurants/img" {
		t.Errorf("public id: got %q", asset.PublicID)
	}

	if gotPath != "/demo/image/upload" {
		t.Errorf("path: got %q", gotPath)
	}
	if gotForm["folder"] != "restaurants" {
		t.Errorf("folder param: got %q", gotForm["folder"])
	}
	if gotForm["transformation"] != "c_limit,h_500,w_500" {
		t.Errorf("transformation param: got %q", gotForm["transformation"])
	}
	if gotForm["api_key"] != "key123" {
		t.Errorf("api key param: got %q", gotForm["api_key"])
	}

	// The signature covers the sorted params, excluding api_key and the
	// signature itself.
	signed := "folder=" + gotForm["folder"] +
		"&timestamp=" + gotForm["timestamp"] +
		"&transformation=" + gotForm["transformation"] +
		"secret456"
	sum := sha1.Sum([]byte(signed))
	if gotForm["signature"] != hex.EncodeToString(sum[:]) {
		t.Errorf("signature mismatch: got %q", gotForm["signature"])
	}
}

func TestCloudinary_Upload_DelegateError(t *testing.T) {
	c, _ := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid image file"}}`))
	})

	_, err := c.Upload(context.Background(), "img.jpg", strings.NewReader("not an image"))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "Invalid image file") {
		t.Errorf("delegate message lost: %v", err)
	}
}

func TestCloudinary_Destroy_OK(t *testing.T) {
	var gotPath string
	c, _ := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseForm(); err != nil {
			t.Fatalf("not form encoded: %v", err)
		}
		if r.PostForm.Get("public_id") != "restaurants/img" {
			t.Errorf("public_id param: got %q", r.PostForm.Get("public_id"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"ok"}`))
	})

	if err := c.Destroy(context.Background(), "restaurants/img"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/demo/image/destroy" {
		t.Errorf("path: got %q", gotPath)
	}
}

func TestCloudinary_Destroy_NotFoundIsIdempotent(t *testing.T) {
	c, _ := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"not found"}`))
	})

	if err := c.Destroy(context.Background(), "restaurants/gone"); err != nil {
		t.Errorf("already-deleted asset must not be an error: %v", err)
	}
}

func TestCloudinary_Destroy_UnexpectedResult(t *testing.T) {
	c, _ := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"pending"}`))
	})

	if err := c.Destroy(context.Background(), "restaurants/img"); err == nil {
		t.Error("unexpected result string must surface as an error")
	}
}
