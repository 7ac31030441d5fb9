package handler_test

import (
    "bytes"
    "encoding/json"
    "mime/multipart"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/rs/zerolog"

    "github.com/blasthq/blast-backend/internal/handler"
    "github.com/blasthq/blast-backend/internal/service"
)

func multipartUpload(t *testing.T, filename, content string) *http.Request {
    t.Helper()

    var buf bytes.Buffer
    mw := multipart.NewWriter(&buf)
    fw, err := mw.CreateFormFile("file", filename)
    if err != nil {
        t.Fatalf("create form file: %v", err)
    }
    fw.Write([]byte(content))
    mw.Close()

    req := httptest.NewRequest("POST", "/contacts/upload", &buf)
    req.Header.Set("Content-Type", mw.FormDataContentType())
    return req
}

func TestUploadContacts(t *testing.T) {
    repo := &MockClientRepo{}
    h := &handler.UploadHandler{
        Importer: &service.Importer{Clients: repo, Log: zerolog.Nop()},
    }

    req := multipartUpload(t, "contacts.csv", "Name,Email,Phone\nJane Doe,jane@x.com,123\nJohn Roe,john@x.com,456\n")
    w := httptest.NewRecorder()
    h.UploadContacts(w, req)

    if w.Code != http.StatusOK {
        t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
    }

    var res struct {
        Imported int      `json:"imported"`
        Errors   []string `json:"errors"`
    }
    if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
        t.Fatalf("failed to decode response: %v", err)
    }
    if res.Imported != 2 || len(res.Errors) != 0 {
        t.Errorf("expected 2 imported with no errors, got %+v", res)
    }
    if len(repo.clients) != 2 {
        t.Errorf("expected 2 stored clients, got %d", len(repo.clients))
    }
}

func TestUploadContactsMissingNameColumn(t *testing.T) {
    h := &handler.UploadHandler{
        Importer: &service.Importer{Clients: &MockClientRepo{}, Log: zerolog.Nop()},
    }

    req := multipartUpload(t, "contacts.csv", "Email,Phone\njane@x.com,123\n")
    w := httptest.NewRecorder()
    h.UploadContacts(w, req)

    if w.Code != http.StatusBadRequest {
        t.Errorf("expected 400 for missing name column, got %d", w.Code)
    }
}

func TestUploadContactsNoFile(t *testing.T) {
    h := &handler.UploadHandler{
        Importer: &service.Importer{Clients: &MockClientRepo{}, Log: zerolog.Nop()},
    }

    var buf bytes.Buffer
    mw := multipart.NewWriter(&buf)
    mw.Close()

    req := httptest.NewRequest("POST", "/contacts/upload", &buf)
    req.Header.Set("Content-Type", mw.FormDataContentType())
    w := httptest.NewRecorder()
    h.UploadContacts(w, req)

    if w.Code != http.StatusBadRequest {
        t.Errorf("expected 400 when no file is provided, got %d", w.Code)
    }
}
