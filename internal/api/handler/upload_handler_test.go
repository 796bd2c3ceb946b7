package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/rentguard/rentguard-api/internal/core/ports"
)

type stubMediaService struct {
	gotFiles []ports.FileInput
	urls     []string
	err      error
}

func (s *stubMediaService) UploadImages(_ context.Context, files []ports.FileInput) ([]string, error) {
	s.gotFiles = files
	if s.err != nil {
		return nil, s.err
	}
	return s.urls, nil
}

// multipartBody builds a multipart form with n image parts under the
// "images" field, each carrying an explicit Content-Type part header the way
// browsers send file uploads.
func multipartBody(t *testing.T, n int) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for i := 0; i < n; i++ {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="images"; filename="photo.jpg"`)
		h.Set("Content-Type", "image/jpeg")
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write([]byte("jpeg-bytes")); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, w.FormDataContentType()
}

func uploadContext(e *echo.Echo, body *bytes.Buffer, contentType string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload/images", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "user_1")
	c.Set("role", "landlord")
	return c, rec
}

func TestUploadHandler_UploadImages(t *testing.T) {
	e := echo.New()
	svc := &stubMediaService{urls: []string{"https://storage.example.com/rentguard-images/a.jpg", "https://storage.example.com/rentguard-images/b.jpg"}}
	h := NewUploadHandler(svc)

	body, ct := multipartBody(t, 2)
	c, rec := uploadContext(e, body, ct)

	if err := h.UploadImages(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status: got %d", rec.Code)
	}

	var resp uploadImagesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.URLs) != 2 {
		t.Errorf("expected 2 urls, got %d", len(resp.URLs))
	}

	if len(svc.gotFiles) != 2 {
		t.Fatalf("service received %d files", len(svc.gotFiles))
	}
	f := svc.gotFiles[0]
	if f.OriginalName != "photo.jpg" || f.ContentType != "image/jpeg" || f.Size != int64(len("jpeg-bytes")) {
		t.Errorf("file metadata not carried through: %+v", f)
	}
}

func TestUploadHandler_TooManyFiles(t *testing.T) {
	e := echo.New()
	h := NewUploadHandler(&stubMediaService{})

	body, ct := multipartBody(t, maxFilesPerUpload+1)
	c, _ := uploadContext(e, body, ct)

	err := h.UploadImages(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized batch, got %v", err)
	}
}

func TestUploadHandler_MissingClaims(t *testing.T) {
	e := echo.New()
	h := NewUploadHandler(&stubMediaService{})

	body, ct := multipartBody(t, 1)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload/images", body)
	req.Header.Set(echo.HeaderContentType, ct)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.UploadImages(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, got %v", err)
	}
}

func TestUploadHandler_NotMultipart(t *testing.T) {
	e := echo.New()
	h := NewUploadHandler(&stubMediaService{})

	c, _ := uploadContext(e, bytes.NewBufferString(`{"images":[]}`), echo.MIMEApplicationJSON)

	err := h.UploadImages(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-multipart body, got %v", err)
	}
}
