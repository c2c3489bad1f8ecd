package httpapi

import (
	"net/http"
	"testing"
)

type stateBody struct {
	State struct {
		CurrentIndex   int    `json:"currentIndex"`
		CurrentSection string `json:"currentSection"`
		Timestamp      int64  `json:"timestamp"`
	} `json:"state"`
	Statistics struct {
		CurrentIndex       int `json:"currentIndex"`
		TotalKanji         int `json:"totalKanji"`
		ProgressPercentage int `json:"progressPercentage"`
	} `json:"statistics"`
}

func TestStateHandler(t *testing.T) {
	router := newTestRouter(t)

	rr := doRequest(t, router, http.MethodGet, "/api/state", nil)
	expectStatus(t, rr, http.StatusOK)
	if body := decode[stateBody](t, rr); body.State.CurrentIndex != 0 || body.State.CurrentSection != "flashcards" {
		t.Fatalf("expected default state, got %+v", body.State)
	}

	rr = doRequest(t, router, http.MethodPut, "/api/state", map[string]any{"currentIndex": 2, "currentSection": "test"})
	expectStatus(t, rr, http.StatusOK)
	body := decode[stateBody](t, rr)
	if body.State.CurrentIndex != 2 || body.State.CurrentSection != "test" || body.State.Timestamp == 0 {
		t.Fatalf("unexpected state: %+v", body.State)
	}
	if body.Statistics.ProgressPercentage != 50 || body.Statistics.TotalKanji != 6 {
		t.Fatalf("unexpected statistics: %+v", body.Statistics)
	}

	rr = doRequest(t, router, http.MethodPost, "/api/state/navigate", map[string]any{"direction": "next"})
	expectStatus(t, rr, http.StatusOK)
	if body := decode[stateBody](t, rr); body.State.CurrentIndex != 3 || body.State.CurrentSection != "test" {
		t.Fatalf("expected index 3 in section test, got %+v", body.State)
	}

	rr = doRequest(t, router, http.MethodPost, "/api/state/navigate", map[string]any{"direction": "random"})
	expectStatus(t, rr, http.StatusOK)
	if body := decode[stateBody](t, rr); body.State.CurrentIndex == 3 {
		t.Fatalf("expected random to move away from 3")
	}

	expectErrorCode(t, doRequest(t, router, http.MethodPut, "/api/state", map[string]any{"currentIndex": 6}), http.StatusBadRequest, codeBadRequest)
	expectErrorCode(t, doRequest(t, router, http.MethodPut, "/api/state", map[string]any{"currentSection": "home"}), http.StatusBadRequest, codeBadRequest)
	expectErrorCode(t, doRequest(t, router, http.MethodPost, "/api/state/navigate", map[string]any{"direction": "up"}), http.StatusBadRequest, codeBadRequest)
}

func TestStateHandler_ClientsAreIndependent(t *testing.T) {
	router := newTestRouter(t)

	rr := doRequest(t, router, http.MethodPut, "/api/state", map[string]any{"currentIndex": 5}, "X-Client-ID", "alice")
	expectStatus(t, rr, http.StatusOK)

	rr = doRequest(t, router, http.MethodGet, "/api/state?client=alice", nil)
	if body := decode[stateBody](t, rr); body.State.CurrentIndex != 5 {
		t.Fatalf("expected alice at 5, got %d", body.State.CurrentIndex)
	}

	rr = doRequest(t, router, http.MethodGet, "/api/state", nil, "X-Client-ID", "bob")
	if body := decode[stateBody](t, rr); body.State.CurrentIndex != 0 {
		t.Fatalf("expected bob at 0, got %d", body.State.CurrentIndex)
	}

	rr = doRequest(t, router, http.MethodPost, "/api/state/navigate", map[string]any{"direction": "prev"})
	if body := decode[stateBody](t, rr); body.State.CurrentIndex != 0 {
		t.Fatalf("expected prev at the first card to stay at 0, got %d", body.State.CurrentIndex)
	}
}
