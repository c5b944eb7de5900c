package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/w-h-a/premind"
	"github.com/w-h-a/premind/retriever"
	csvstore "github.com/w-h-a/premind/retriever/csv"
)

const testCSV = `policy_id,name,email,phone,due_date,premium_amount,notes
P001,Asha Rao,asha.rao@example.com,+91-9876543210,2025-09-15,12000,Prefers email reminders
`

func newTestServer(t *testing.T) *Server {
	t.Helper()

	path := filepath.Join(t.TempDir(), "policyholders.csv")
	if err := os.WriteFile(path, []byte(testCSV), 0o644); err != nil {
		t.Fatalf("failed to write test csv: %v", err)
	}

	store := csvstore.NewRetriever(retriever.WithLocation(path))

	// nil generator: the gateway stays in canned-fallback mode
	return NewServer(premind.New(store, nil))
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}

	return v
}

func createSession(t *testing.T, h http.Handler, policyID string) string {
	t.Helper()

	rec := doRequest(t, h, http.MethodPost, "/api/v1/sessions", createSessionRequest{PolicyID: policyID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	return decodeJSON[createSessionResponse](t, rec).ID
}

func TestCreateSessionUnknownPolicy(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s.Handler(), http.MethodPost, "/api/v1/sessions", createSessionRequest{PolicyID: "P999"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateSessionBadBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMessageUnknownSession(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s.Handler(), http.MethodPost, "/api/v1/sessions/nope/messages", messageRequest{Message: "hello"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestConversationFlowKeepsTranscriptRedacted(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	id := createSession(t, h, "P001")

	rec := doRequest(t, h, http.MethodPost, "/api/v1/sessions/"+id+"/messages", messageRequest{Message: "what's my email"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	msg := decodeJSON[messageResponse](t, rec)
	if msg.Reply != "Your registered email is: asha.rao@example.com" {
		t.Errorf("unexpected reply: %q", msg.Reply)
	}
	if msg.Ended {
		t.Error("expected the session to stay open")
	}

	rec = doRequest(t, h, http.MethodGet, "/api/v1/sessions/"+id+"/history", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	history := decodeJSON[historyResponse](t, rec)
	if len(history.Items) != 2 {
		t.Fatalf("expected 2 history turns, got %d", len(history.Items))
	}

	transcript := rec.Body.String()
	if !strings.Contains(transcript, "[EMAIL]") {
		t.Errorf("expected the placeholder in the transcript: %s", transcript)
	}
	if strings.Contains(transcript, "asha.rao@example.com") {
		t.Errorf("raw email leaked into the transcript: %s", transcript)
	}
}

func TestExitDiscardsSession(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	id := createSession(t, h, "P001")

	rec := doRequest(t, h, http.MethodPost, "/api/v1/sessions/"+id+"/messages", messageRequest{Message: "exit"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	msg := decodeJSON[messageResponse](t, rec)
	if !msg.Ended {
		t.Fatal("expected ended=true")
	}

	rec = doRequest(t, h, http.MethodGet, "/api/v1/sessions/"+id+"/history", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected the session to be discarded, got %d", rec.Code)
	}
}

func TestDeleteSession(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	id := createSession(t, h, "P001")

	rec := doRequest(t, h, http.MethodDelete, "/api/v1/sessions/"+id, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = doRequest(t, h, http.MethodGet, "/api/v1/sessions/"+id+"/history", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s.Handler(), http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeJSON[map[string]string](t, rec)
	if body["status"] != "healthy" {
		t.Errorf("unexpected health body: %v", body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	id := createSession(t, h, "P001")
	doRequest(t, h, http.MethodPost, "/api/v1/sessions/"+id+"/messages", messageRequest{Message: "what is my due date"})

	rec := doRequest(t, h, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	snapshot := decodeJSON[map[string]any](t, rec)
	conversations, ok := snapshot["conversations"].(map[string]any)
	if !ok {
		t.Fatalf("missing conversations group: %s", rec.Body.String())
	}
	if got, _ := conversations["turns"].(float64); got != 1 {
		t.Errorf("expected 1 turn, got %v", conversations["turns"])
	}
	if got, _ := conversations["handledLocally"].(float64); got != 1 {
		t.Errorf("expected 1 locally handled turn, got %v", conversations["handledLocally"])
	}
}
