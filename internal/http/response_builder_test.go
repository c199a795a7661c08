package http

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTMXResponseBuilderDefaults(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHTMXResponse().Write(rr)

	if rr.Code != 200 {
		t.Fatalf("default status=%d", rr.Code)
	}
	if rr.Header().Get("HX-Trigger") != "" {
		t.Fatalf("unexpected HX-Trigger: %s", rr.Header().Get("HX-Trigger"))
	}
}

func TestHTMXResponseBuilderTriggers(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHTMXResponse().
		TriggerExpenseChanged(42).
		TriggerBudgetUpdated().
		TriggerSuccessNotification("done").
		Write(rr)

	var triggers map[string]json.RawMessage
	if err := json.Unmarshal([]byte(rr.Header().Get("HX-Trigger")), &triggers); err != nil {
		t.Fatalf("HX-Trigger not valid JSON: %v", err)
	}
	for _, name := range []string{"expense:changed", "budget:updated", "show-notification"} {
		if _, ok := triggers[name]; !ok {
			t.Errorf("missing trigger %q", name)
		}
	}

	var changed map[string]int64
	if err := json.Unmarshal(triggers["expense:changed"], &changed); err != nil || changed["id"] != 42 {
		t.Fatalf("expense:changed payload wrong: %s", triggers["expense:changed"])
	}
}

func TestErrorResponseEscapesHTML(t *testing.T) {
	rr := httptest.NewRecorder()
	BadRequestError(`<script>alert("x")</script>`).Write(rr)

	if rr.Code != 400 {
		t.Fatalf("status=%d", rr.Code)
	}
	body := rr.Body.String()
	if strings.Contains(body, "<script>") {
		t.Fatalf("unescaped HTML in body: %s", body)
	}
	if !strings.Contains(body, `class="error"`) {
		t.Fatalf("missing error wrapper: %s", body)
	}
}

func TestWriteHeadersDoesNotWriteStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHTMXResponse().TriggerBudgetUpdated().WriteHeaders(rr)

	if rr.Header().Get("HX-Trigger") == "" {
		t.Fatalf("missing HX-Trigger")
	}
	if rr.Body.Len() != 0 {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}

func TestMethodNotAllowedSetsAllowHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	MethodNotAllowedError("GET, POST").Write(rr)

	if rr.Code != 405 {
		t.Fatalf("status=%d", rr.Code)
	}
	if rr.Header().Get("Allow") != "GET, POST" {
		t.Fatalf("allow header %q", rr.Header().Get("Allow"))
	}
}
