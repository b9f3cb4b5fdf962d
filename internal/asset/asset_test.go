package asset

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"gamecatalog/backend/internal/models"

	"github.com/stretchr/testify/require"
)

func TestAttach(t *testing.T) {
	image := []byte("\x89PNG\r\n\x1a\nfake image bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/images/cover.png":
			w.Write(image)
		case "/api/v1/upload":
			if r.Method != http.MethodPost {
				t.Errorf("Expected method POST, got %s", r.Method)
			}
			if r.Header.Get("Authorization") != "Bearer secret" {
				t.Errorf("Expected bearer token, got %q", r.Header.Get("Authorization"))
			}
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("Failed to parse form: %v", err)
			}
			if r.FormValue("ref") != "game" || r.FormValue("refId") != "42" || r.FormValue("field") != "cover" {
				t.Errorf("Unexpected form values: %v", r.MultipartForm.Value)
			}
			file, header, err := r.FormFile("files")
			if err != nil {
				t.Errorf("Missing file: %v", err)
				return
			}
			defer file.Close()
			if header.Filename != "foo-bar-cover.png" {
				t.Errorf("Expected file name foo-bar-cover.png, got %s", header.Filename)
			}
			data, _ := io.ReadAll(file)
			if string(data) != string(image) {
				t.Errorf("Uploaded bytes differ from downloaded bytes")
			}
			w.WriteHeader(http.StatusCreated)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(ClientOptions{UploadURL: server.URL + "/api/v1/upload", Token: "secret"})
	err := client.Attach(context.Background(), server.URL+"/images/cover.png", Target{
		Ref:   "game",
		RefID: 42,
		Field: models.AssetFieldCover,
		Name:  "foo-bar-cover.png",
	})
	require.NoError(t, err)
}

func TestAttachDownloadFailure(t *testing.T) {
	uploads := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/upload" {
			uploads++
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(ClientOptions{UploadURL: server.URL + "/upload"})
	err := client.Attach(context.Background(), server.URL+"/missing.jpg", Target{Ref: "game", RefID: 1, Field: models.AssetFieldGallery})
	require.ErrorIs(t, err, ErrUnexpectedStatus)
	require.Zero(t, uploads)
}

func TestAttachUploadRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/upload" {
			http.Error(w, `{"error":"Game not found"}`, http.StatusNotFound)
			return
		}
		w.Write([]byte("img"))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{UploadURL: server.URL + "/upload"})
	err := client.Attach(context.Background(), server.URL+"/a.jpg", Target{Ref: "game", RefID: 1, Field: models.AssetFieldCover})
	require.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestFileName(t *testing.T) {
	require.Equal(t, "shot_ggvgm_2x.jpg", FileName("https://images.example/a/shot_ggvgm_2x.jpg?x=1"))
	require.Equal(t, "image", FileName("https://images.example/"))
	require.Equal(t, "image", FileName("::bad"))
}
