package series

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/pkmncore/seriedex/pkg/pagination"
	"github.com/pkmncore/seriedex/pkg/routes"
)

func newTestMux(store *fakeStore, images *fakeStorage) *http.ServeMux {
	svc := newService(store, images, testLogger(), testConfig())
	handler := svc.Handler(1 << 20)

	mux := http.NewServeMux()
	routes.Register(mux, handler.Routes())
	return mux
}

func doRequest(mux *http.ServeMux, method, target string, body []byte) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHandlerCreate(t *testing.T) {
	t.Run("valid command returns 201", func(t *testing.T) {
		mux := newTestMux(newFakeStore(), &fakeStorage{})

		body, _ := json.Marshal(CreateCommand{
			Code:        "SWSH",
			Name:        "Sword & Shield",
			ReleaseYear: 2020,
		})

		rec := doRequest(mux, http.MethodPost, "/series", body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
		}

		var created Serie
		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if created.ID == nil {
			t.Error("created serie has no id")
		}
	})

	t.Run("invalid data returns 400", func(t *testing.T) {
		mux := newTestMux(newFakeStore(), &fakeStorage{})

		body, _ := json.Marshal(CreateCommand{Name: "No Code", ReleaseYear: 2020})

		rec := doRequest(mux, http.MethodPost, "/series", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("duplicate code returns 409", func(t *testing.T) {
		store := newFakeStore()
		store.codeTaken = true
		mux := newTestMux(store, &fakeStorage{})

		body, _ := json.Marshal(CreateCommand{
			Code:        "SWSH",
			Name:        "Sword & Shield",
			ReleaseYear: 2020,
		})

		rec := doRequest(mux, http.MethodPost, "/series", body)
		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", rec.Code)
		}
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		mux := newTestMux(newFakeStore(), &fakeStorage{})

		rec := doRequest(mux, http.MethodPost, "/series", []byte("{not json"))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandlerFind(t *testing.T) {
	rec := testRecord("SWSH", "Sword & Shield")
	mux := newTestMux(newFakeStore(rec), &fakeStorage{})

	t.Run("existing serie", func(t *testing.T) {
		resp := doRequest(mux, http.MethodGet, "/series/"+rec.ID.String(), nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.Code)
		}

		var serie Serie
		if err := json.Unmarshal(resp.Body.Bytes(), &serie); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if serie.Code != "SWSH" {
			t.Errorf("Code = %q, want SWSH", serie.Code)
		}
	})

	t.Run("unknown serie returns 404", func(t *testing.T) {
		resp := doRequest(mux, http.MethodGet, "/series/"+uuid.NewString(), nil)
		if resp.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.Code)
		}
	})

	t.Run("malformed id returns 400", func(t *testing.T) {
		resp := doRequest(mux, http.MethodGet, "/series/not-a-uuid", nil)
		if resp.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.Code)
		}
	})

	t.Run("by code", func(t *testing.T) {
		resp := doRequest(mux, http.MethodGet, "/series/code/SWSH", nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.Code)
		}
	})

	t.Run("unknown code returns 404", func(t *testing.T) {
		resp := doRequest(mux, http.MethodGet, "/series/code/NOPE", nil)
		if resp.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.Code)
		}
	})
}

func TestHandlerList(t *testing.T) {
	mux := newTestMux(newFakeStore(
		testRecord("SWSH", "Sword & Shield"),
		testRecord("SM", "Sun & Moon"),
	), &fakeStorage{})

	resp := doRequest(mux, http.MethodGet, "/series?page=0&page_size=10", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", resp.Code, resp.Body.String())
	}

	var page pagination.PageResult[Serie]
	if err := json.Unmarshal(resp.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if page.TotalElements != 2 {
		t.Errorf("TotalElements = %d, want 2", page.TotalElements)
	}
	if page.PageSize != 10 {
		t.Errorf("PageSize = %d, want 10", page.PageSize)
	}
	if !page.Last {
		t.Error("Last = false, want true")
	}
}

func TestHandlerSearch(t *testing.T) {
	mux := newTestMux(newFakeStore(
		testRecord("SWSH", "Sword & Shield"),
	), &fakeStorage{})

	body, _ := json.Marshal(map[string]any{
		"page":      0,
		"page_size": 5,
		"code":      "SWSH",
	})

	resp := doRequest(mux, http.MethodPost, "/series/search", body)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", resp.Code, resp.Body.String())
	}

	var page pagination.PageResult[Serie]
	if err := json.Unmarshal(resp.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if page.PageSize != 5 {
		t.Errorf("PageSize = %d, want 5", page.PageSize)
	}
}

func TestHandlerUpdate(t *testing.T) {
	rec := testRecord("SWSH", "Sword & Shield")
	mux := newTestMux(newFakeStore(rec), &fakeStorage{})

	t.Run("valid update returns 200", func(t *testing.T) {
		body, _ := json.Marshal(UpdateCommand{
			Code:        "SWSH",
			Name:        "Sword and Shield",
			ReleaseYear: 2020,
		})

		resp := doRequest(mux, http.MethodPut, "/series/"+rec.ID.String(), body)
		if resp.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", resp.Code, resp.Body.String())
		}

		var updated Serie
		if err := json.Unmarshal(resp.Body.Bytes(), &updated); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if updated.Name != "Sword and Shield" {
			t.Errorf("Name = %q, want replacement value", updated.Name)
		}
	})

	t.Run("unknown serie returns 404", func(t *testing.T) {
		body, _ := json.Marshal(UpdateCommand{
			Code:        "XY",
			Name:        "XY",
			ReleaseYear: 2014,
		})

		resp := doRequest(mux, http.MethodPut, "/series/"+uuid.NewString(), body)
		if resp.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.Code)
		}
	})
}

func TestHandlerDelete(t *testing.T) {
	rec := testRecord("SWSH", "Sword & Shield")
	store := newFakeStore(rec)
	mux := newTestMux(store, &fakeStorage{})

	t.Run("existing serie returns 204", func(t *testing.T) {
		resp := doRequest(mux, http.MethodDelete, "/series/"+rec.ID.String(), nil)
		if resp.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", resp.Code)
		}
	})

	t.Run("already deleted returns 404", func(t *testing.T) {
		resp := doRequest(mux, http.MethodDelete, "/series/"+rec.ID.String(), nil)
		if resp.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.Code)
		}
	})
}

func TestHandlerImages(t *testing.T) {
	rec := testRecord("SWSH", "Sword & Shield")
	store := newFakeStore(rec)
	images := &fakeStorage{}
	mux := newTestMux(store, images)

	t.Run("upload returns 201 and stamps url", func(t *testing.T) {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		part, err := writer.CreateFormFile("file", "artwork.png")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		part.Write([]byte("png bytes"))
		writer.Close()

		req := httptest.NewRequest(http.MethodPost, "/series/"+rec.ID.String()+"/image", &buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())

		resp := httptest.NewRecorder()
		mux.ServeHTTP(resp, req)

		if resp.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %s", resp.Code, resp.Body.String())
		}

		var serie Serie
		if err := json.Unmarshal(resp.Body.Bytes(), &serie); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if serie.ImageURL == nil || !strings.HasSuffix(*serie.ImageURL, "/image") {
			t.Errorf("ImageURL = %v, want image download path", serie.ImageURL)
		}
	})

	t.Run("download streams stored bytes", func(t *testing.T) {
		resp := doRequest(mux, http.MethodGet, "/series/"+rec.ID.String()+"/image", nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.Code)
		}
		if resp.Body.String() != "png bytes" {
			t.Errorf("body = %q, want stored bytes", resp.Body.String())
		}
	})

	t.Run("download for serie without image returns 404", func(t *testing.T) {
		other := testRecord("SM", "Sun & Moon")
		bare := newTestMux(newFakeStore(other), &fakeStorage{})

		resp := doRequest(bare, http.MethodGet, "/series/"+other.ID.String()+"/image", nil)
		if resp.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.Code)
		}
	})
}
