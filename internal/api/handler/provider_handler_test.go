package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/careslot/booking-api/internal/core/domain"
	"github.com/careslot/booking-api/internal/core/ports"
)

type stubProviderService struct {
	listFn        func(ctx context.Context, page ports.ProviderPage) (*ports.ListProvidersResult, error)
	getFn         func(ctx context.Context, id string) (*domain.Provider, error)
	createFn      func(ctx context.Context, in ports.CreateProviderInput) (*domain.Provider, error)
	updateFn      func(ctx context.Context, id string, in ports.CreateProviderInput) (*domain.Provider, error)
	deleteFn      func(ctx context.Context, id string) error
	uploadFn      func(ctx context.Context, id string, files []ports.ImageUpload) (*domain.Provider, error)
	deleteImageFn func(ctx context.Context, id, key string) error
}

func (s *stubProviderService) List(ctx context.Context, page ports.ProviderPage) (*ports.ListProvidersResult, error) {
	return s.listFn(ctx, page)
}

func (s *stubProviderService) Get(ctx context.Context, id string) (*domain.Provider, error) {
	return s.getFn(ctx, id)
}

func (s *stubProviderService) Create(ctx context.Context, in ports.CreateProviderInput) (*domain.Provider, error) {
	return s.createFn(ctx, in)
}

func (s *stubProviderService) Update(ctx context.Context, id string, in ports.CreateProviderInput) (*domain.Provider, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubProviderService) DeleteCascade(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubProviderService) UploadImages(ctx context.Context, id string, files []ports.ImageUpload) (*domain.Provider, error) {
	return s.uploadFn(ctx, id, files)
}

func (s *stubProviderService) DeleteImage(ctx context.Context, id, key string) error {
	return s.deleteImageFn(ctx, id, key)
}

func multipartBody(t *testing.T, filename, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="images"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestProviderHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubProviderService{
		listFn: func(ctx context.Context, page ports.ProviderPage) (*ports.ListProvidersResult, error) {
			if page.Page != 2 || page.Limit != 10 {
				t.Fatalf("unexpected page: %+v", page)
			}
			return &ports.ListProvidersResult{
				Items:      []*domain.Provider{{ID: "pv_1", Name: "Clinic A", Pic: "default.png"}},
				Total:      11,
				Page:       2,
				Limit:      10,
				TotalPages: 2,
			}, nil
		},
	}
	h := NewProviderHandler(stub, "https://img.example.com/")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/providers?page=2&limit=10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Count      int `json:"count"`
		TotalPages int `json:"total_pages"`
		Data       []struct {
			Pic string `json:"pic"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Count != 1 || resp.TotalPages != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Data[0].Pic != "https://img.example.com/default.png" {
		t.Fatalf("pic not prefixed: %q", resp.Data[0].Pic)
	}
}

func TestProviderHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubProviderService{
		getFn: func(ctx context.Context, id string) (*domain.Provider, error) {
			return nil, domain.ErrProviderNotFound
		},
	}
	h := NewProviderHandler(stub, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/providers/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.Get(c); !errors.Is(err, domain.ErrProviderNotFound) {
		t.Fatalf("expected ErrProviderNotFound, got %v", err)
	}
}

func TestProviderHandler_Create(t *testing.T) {
	e := newTestEcho()
	stub := &stubProviderService{
		createFn: func(ctx context.Context, in ports.CreateProviderInput) (*domain.Provider, error) {
			if in.Name != "Clinic A" || in.Address != "123 Main St" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Provider{ID: "pv_1", Name: in.Name, Address: in.Address, Images: []string{}, Pic: domain.DefaultProviderPic}, nil
		},
	}
	h := NewProviderHandler(stub, "")

	body := strings.NewReader(`{"name":"Clinic A","address":"123 Main St"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/providers", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestProviderHandler_Create_MissingName(t *testing.T) {
	e := newTestEcho()
	stub := &stubProviderService{
		createFn: func(ctx context.Context, in ports.CreateProviderInput) (*domain.Provider, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewProviderHandler(stub, "")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/providers", strings.NewReader(`{"address":"123 Main St"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestProviderHandler_Create_Duplicate(t *testing.T) {
	e := newTestEcho()
	stub := &stubProviderService{
		createFn: func(ctx context.Context, in ports.CreateProviderInput) (*domain.Provider, error) {
			return nil, domain.ErrProviderExists
		},
	}
	h := NewProviderHandler(stub, "")

	body := strings.NewReader(`{"name":"Clinic A","address":"123 Main St"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/providers", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); !errors.Is(err, domain.ErrProviderExists) {
		t.Fatalf("expected ErrProviderExists, got %v", err)
	}
}

func TestProviderHandler_Delete(t *testing.T) {
	e := newTestEcho()
	deleted := ""
	stub := &stubProviderService{
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	h := NewProviderHandler(stub, "")

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/providers/pv_1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("pv_1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if deleted != "pv_1" {
		t.Fatalf("cascade not invoked for pv_1, got %q", deleted)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProviderHandler_UploadImages(t *testing.T) {
	e := newTestEcho()
	stub := &stubProviderService{
		uploadFn: func(ctx context.Context, id string, files []ports.ImageUpload) (*domain.Provider, error) {
			if id != "pv_1" || len(files) != 1 {
				t.Fatalf("unexpected args: %q %d files", id, len(files))
			}
			if files[0].Filename != "front.png" || files[0].ContentType != "image/png" {
				t.Fatalf("unexpected file: %+v", files[0])
			}
			return &domain.Provider{ID: id, Images: []string{"pv_1/front.png"}, Pic: domain.DefaultProviderPic}, nil
		},
	}
	h := NewProviderHandler(stub, "")

	buf, contentType := multipartBody(t, "front.png", "image/png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPut, "/api/v1/providers/pv_1/images", buf)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("pv_1")

	if err := h.UploadImages(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProviderHandler_UploadImages_RejectsNonImage(t *testing.T) {
	e := newTestEcho()
	stub := &stubProviderService{
		uploadFn: func(ctx context.Context, id string, files []ports.ImageUpload) (*domain.Provider, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewProviderHandler(stub, "")

	buf, contentType := multipartBody(t, "notes.txt", "text/plain", []byte("plain text"))
	req := httptest.NewRequest(http.MethodPut, "/api/v1/providers/pv_1/images", buf)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("pv_1")

	err := h.UploadImages(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestProviderHandler_UploadImages_NoFiles(t *testing.T) {
	e := newTestEcho()
	stub := &stubProviderService{
		uploadFn: func(ctx context.Context, id string, files []ports.ImageUpload) (*domain.Provider, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewProviderHandler(stub, "")

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.Close()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/providers/pv_1/images", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("pv_1")

	err := h.UploadImages(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestProviderHandler_DeleteImage(t *testing.T) {
	e := newTestEcho()
	stub := &stubProviderService{
		deleteImageFn: func(ctx context.Context, id, key string) error {
			if id != "pv_1" || key != "pv_1/front.png" {
				t.Fatalf("unexpected args: %q %q", id, key)
			}
			return nil
		},
	}
	h := NewProviderHandler(stub, "")

	body := strings.NewReader(`{"key":"pv_1/front.png"}`)
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/providers/pv_1/images", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("pv_1")

	if err := h.DeleteImage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProviderHandler_DeleteImage_KeyMissing(t *testing.T) {
	e := newTestEcho()
	stub := &stubProviderService{
		deleteImageFn: func(ctx context.Context, id, key string) error {
			return domain.ErrImageNotFound
		},
	}
	h := NewProviderHandler(stub, "")

	body := strings.NewReader(`{"key":"pv_1/ghost.png"}`)
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/providers/pv_1/images", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("pv_1")

	if err := h.DeleteImage(c); !errors.Is(err, domain.ErrImageNotFound) {
		t.Fatalf("expected ErrImageNotFound, got %v", err)
	}
}
