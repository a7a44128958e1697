package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"testing"

	"example.com/signup/internal/domain"
	"example.com/signup/internal/registry"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	service := domain.NewService(registry.NewInMemoryRepository(), nil)
	mux := http.NewServeMux()
	NewHandler(service).RegisterRoutes(mux)
	return mux
}

func do(t *testing.T, mux *http.ServeMux, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func rosterPath(activity, action, email string) string {
	return "/activities/" + url.PathEscape(activity) + "/" + action + "?email=" + url.QueryEscape(email)
}

func listActivities(t *testing.T, mux *http.ServeMux) ListActivitiesResponse {
	t.Helper()
	rr := do(t, mux, http.MethodGet, "/activities")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}
	var resp ListActivitiesResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body %q: %v", rr.Body.String(), err)
	}
	return body
}

func count(items []string, value string) int {
	n := 0
	for _, item := range items {
		if item == value {
			n++
		}
	}
	return n
}

func TestRootRedirectsToIndex(t *testing.T) {
	rr := do(t, newTestMux(t), http.MethodGet, "/")

	if rr.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307 got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/static/index.html" {
		t.Fatalf("unexpected location %q", loc)
	}
}

func TestStaticIndexIsServed(t *testing.T) {
	rr := do(t, newTestMux(t), http.MethodGet, "/static/index.html")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Mergington High School") {
		t.Fatalf("index page missing title")
	}
}

func TestListActivitiesReturnsSeed(t *testing.T) {
	mux := newTestMux(t)
	rr := do(t, mux, http.MethodGet, "/activities")
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}

	activities := listActivities(t, mux)
	for _, name := range []string{"Basketball", "Soccer", "Programming Class", "Chess Club"} {
		if _, ok := activities[name]; !ok {
			t.Fatalf("expected %s in listing", name)
		}
	}

	var raw map[string]map[string]json.RawMessage
	if err := json.Unmarshal(rr.Body.Bytes(), &raw); err != nil {
		t.Fatalf("failed to decode raw listing: %v", err)
	}
	for _, field := range []string{"description", "schedule", "max_participants", "participants"} {
		if _, ok := raw["Basketball"][field]; !ok {
			t.Fatalf("basketball missing field %s", field)
		}
	}

	if !slices.Contains(activities["Basketball"].Participants, "alex@mergington.edu") {
		t.Fatalf("expected alex in basketball participants")
	}
	if len(activities["Soccer"].Participants) == 0 {
		t.Fatalf("expected soccer to have participants")
	}
}

func TestSignupAddsParticipant(t *testing.T) {
	mux := newTestMux(t)

	rr := do(t, mux, http.MethodPost, rosterPath("Basketball", "signup", "newstudent@mergington.edu"))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if body["message"] != "Signed up newstudent@mergington.edu for Basketball" {
		t.Fatalf("unexpected message %q", body["message"])
	}

	if !slices.Contains(listActivities(t, mux)["Basketball"].Participants, "newstudent@mergington.edu") {
		t.Fatalf("participant was not added")
	}
}

func TestSignupUnknownActivity(t *testing.T) {
	rr := do(t, newTestMux(t), http.MethodPost, rosterPath("NonexistentActivity", "signup", "student@mergington.edu"))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rr.Code)
	}
	if detail := decodeBody(t, rr)["detail"]; detail != "Activity not found" {
		t.Fatalf("unexpected detail %q", detail)
	}
}

func TestSignupTwiceKeepsDuplicate(t *testing.T) {
	mux := newTestMux(t)

	for i := 0; i < 2; i++ {
		rr := do(t, mux, http.MethodPost, rosterPath("Basketball", "signup", "duplicate@mergington.edu"))
		if rr.Code != http.StatusOK {
			t.Fatalf("signup %d: expected 200 got %d", i, rr.Code)
		}
	}

	if n := count(listActivities(t, mux)["Basketball"].Participants, "duplicate@mergington.edu"); n != 2 {
		t.Fatalf("expected 2 entries got %d", n)
	}
}

func TestSignupRequiresEmail(t *testing.T) {
	rr := do(t, newTestMux(t), http.MethodPost, "/activities/Basketball/signup")

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", rr.Code)
	}
	if kind := decodeBody(t, rr)["type"]; kind != "validation_failed" {
		t.Fatalf("unexpected error type %q", kind)
	}
}

func TestUnregisterRemovesParticipant(t *testing.T) {
	mux := newTestMux(t)

	do(t, mux, http.MethodPost, rosterPath("Basketball", "signup", "toremove@mergington.edu"))
	if !slices.Contains(listActivities(t, mux)["Basketball"].Participants, "toremove@mergington.edu") {
		t.Fatalf("participant was not added")
	}

	rr := do(t, mux, http.MethodDelete, rosterPath("Basketball", "unregister", "toremove@mergington.edu"))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}
	message := decodeBody(t, rr)["message"]
	if !strings.Contains(message, "Unregistered") || !strings.Contains(message, "toremove@mergington.edu") {
		t.Fatalf("unexpected message %q", message)
	}

	if slices.Contains(listActivities(t, mux)["Basketball"].Participants, "toremove@mergington.edu") {
		t.Fatalf("participant was not removed")
	}
}

func TestUnregisterRemovesOneOccurrence(t *testing.T) {
	mux := newTestMux(t)

	for i := 0; i < 2; i++ {
		do(t, mux, http.MethodPost, rosterPath("Soccer", "signup", "twice@mergington.edu"))
	}
	rr := do(t, mux, http.MethodDelete, rosterPath("Soccer", "unregister", "twice@mergington.edu"))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}

	if n := count(listActivities(t, mux)["Soccer"].Participants, "twice@mergington.edu"); n != 1 {
		t.Fatalf("expected 1 remaining entry got %d", n)
	}
}

func TestUnregisterSeededParticipant(t *testing.T) {
	mux := newTestMux(t)

	rr := do(t, mux, http.MethodDelete, rosterPath("Basketball", "unregister", "alex@mergington.edu"))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}

	basketball := listActivities(t, mux)["Basketball"]
	if slices.Contains(basketball.Participants, "alex@mergington.edu") {
		t.Fatalf("alex should have been removed")
	}
	if basketball.Participants == nil {
		t.Fatalf("participants should encode as an empty list")
	}
}

func TestUnregisterUnknownParticipant(t *testing.T) {
	rr := do(t, newTestMux(t), http.MethodDelete, rosterPath("Basketball", "unregister", "nonexistent@mergington.edu"))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rr.Code)
	}
	if detail := decodeBody(t, rr)["detail"]; detail != "Student not found in this activity" {
		t.Fatalf("unexpected detail %q", detail)
	}
}

func TestUnregisterUnknownActivity(t *testing.T) {
	rr := do(t, newTestMux(t), http.MethodDelete, rosterPath("NonexistentActivity", "unregister", "student@mergington.edu"))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rr.Code)
	}
	if detail := decodeBody(t, rr)["detail"]; detail != "Activity not found" {
		t.Fatalf("unexpected detail %q", detail)
	}
}

func TestSignupAndUnregisterMultipleParticipants(t *testing.T) {
	mux := newTestMux(t)
	emails := []string{"student1@mergington.edu", "student2@mergington.edu", "student3@mergington.edu"}

	for _, email := range emails {
		if rr := do(t, mux, http.MethodPost, rosterPath("Chess Club", "signup", email)); rr.Code != http.StatusOK {
			t.Fatalf("signup %s: expected 200 got %d", email, rr.Code)
		}
	}

	if rr := do(t, mux, http.MethodDelete, rosterPath("Chess Club", "unregister", emails[1])); rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}

	participants := listActivities(t, mux)["Chess Club"].Participants
	want := []string{"michael@mergington.edu", "daniel@mergington.edu", emails[0], emails[2]}
	if !slices.Equal(participants, want) {
		t.Fatalf("unexpected participants %v", participants)
	}
}

func TestUnsupportedMethodIsRejected(t *testing.T) {
	rr := do(t, newTestMux(t), http.MethodGet, rosterPath("Basketball", "signup", "student@mergington.edu"))

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", rr.Code)
	}
}

func TestHealthz(t *testing.T) {
	rr := do(t, newTestMux(t), http.MethodGet, "/healthz")

	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("unexpected healthz response %d %q", rr.Code, rr.Body.String())
	}
}
