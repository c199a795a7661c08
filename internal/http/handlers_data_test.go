package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func postUpload(t *testing.T, srv *Server, path, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestExportDocumentShape(t *testing.T) {
	srv, led := newTestServer(t)

	rr := get(srv, "/data/export")
	if rr.Code != 200 {
		t.Fatalf("status=%d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type %q", ct)
	}
	cd := rr.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "construction-expenses-") || !strings.Contains(cd, ".json") {
		t.Fatalf("content disposition %q", cd)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(rr.Body.Bytes(), &doc); err != nil {
		t.Fatalf("export not valid JSON: %v", err)
	}
	for _, field := range []string{"expenses", "budget", "totalExpense", "remainingBudget", "exportDate"} {
		if _, ok := doc[field]; !ok {
			t.Errorf("export missing %q", field)
		}
	}

	var expenses []json.RawMessage
	if err := json.Unmarshal(doc["expenses"], &expenses); err != nil {
		t.Fatalf("expenses not an array: %v", err)
	}
	if len(expenses) != len(led.Expenses()) {
		t.Fatalf("exported %d expenses, ledger has %d", len(expenses), len(led.Expenses()))
	}
}

func TestImportStagesThenCommits(t *testing.T) {
	srv, led := newTestServer(t)

	payload := `{"expenses":[{"id":42,"description":"Imported tiles","amount":"9500","category":"flooring","date":"2024-03-01"}],"budget":"600000"}`

	// Stage: nothing committed yet, confirmation partial embeds the payload
	rr := postUpload(t, srv, "/data/import", "backup.json", payload)
	if rr.Code != 200 {
		t.Fatalf("stage status=%d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "Confirm Import") {
		t.Fatalf("expected confirmation partial")
	}
	if len(led.Expenses()) == 1 {
		t.Fatalf("import committed before confirmation")
	}

	// Commit
	rr2 := postForm(srv, "/data/import/confirm", url.Values{"payload": {payload}})
	if rr2.Code != 200 {
		t.Fatalf("commit status=%d: %s", rr2.Code, rr2.Body.String())
	}
	if got := len(led.Expenses()); got != 1 {
		t.Fatalf("expected 1 expense after import, got %d", got)
	}
	if led.Expenses()[0].ID != 42 || led.Expenses()[0].Description != "Imported tiles" {
		t.Fatalf("imported record mangled: %+v", led.Expenses()[0])
	}
	if led.Budget().Cents != 60000000 {
		t.Fatalf("imported budget not applied: %d", led.Budget().Cents)
	}
	if !strings.Contains(rr2.Header().Get("HX-Trigger"), "data:replaced") {
		t.Fatalf("missing data:replaced trigger")
	}
}

func TestImportRejectsBadFiles(t *testing.T) {
	srv, led := newTestServer(t)
	before := len(led.Expenses())

	// Not JSON at all
	rr := postUpload(t, srv, "/data/import", "junk.json", "this is not json")
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for junk, got %d", rr.Code)
	}

	// Valid JSON, wrong shape
	rr = postUpload(t, srv, "/data/import", "wrong.json", `{"budget":"100"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for missing expenses, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "no expense data") {
		t.Fatalf("schema error message missing: %s", rr.Body.String())
	}

	// A null expenses field must not stage an empty replace
	rr = postUpload(t, srv, "/data/import", "null.json", `{"expenses":null,"budget":"100"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for null expenses, got %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "Confirm Import") {
		t.Fatalf("null expenses reached the confirmation stage")
	}

	// Missing file field
	rr2 := postForm(srv, "/data/import", url.Values{})
	if rr2.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing file, got %d", rr2.Code)
	}

	if len(led.Expenses()) != before {
		t.Fatalf("rejected imports changed the collection")
	}
}

func TestImportConfirmRejectsTamperedPayload(t *testing.T) {
	srv, led := newTestServer(t)
	before := len(led.Expenses())

	rr := postForm(srv, "/data/import/confirm", url.Values{"payload": {"{broken"}})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	if len(led.Expenses()) != before {
		t.Fatalf("tampered payload changed the collection")
	}
}

func TestClearAll(t *testing.T) {
	srv, led := newTestServer(t)

	rr := postForm(srv, "/data/clear", url.Values{})
	if rr.Code != 200 {
		t.Fatalf("status=%d", rr.Code)
	}
	if got := len(led.Expenses()); got != 0 {
		t.Fatalf("expected empty collection, got %d", got)
	}
	if !strings.Contains(rr.Header().Get("HX-Trigger"), "data:replaced") {
		t.Fatalf("missing data:replaced trigger")
	}
}
