package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestProblemMediaType(t *testing.T) {
	res := httptest.NewRecorder()
	Problem(res, http.StatusNotFound, "Not Found", "no such record")

	if got := res.Header().Get("Content-Type"); got != "application/problem+json" {
		t.Fatalf("unexpected content type %q", got)
	}
	if res.Code != http.StatusNotFound {
		t.Fatalf("unexpected status %d", res.Code)
	}
	body := res.Body.String()
	if !strings.Contains(body, `"status":404`) || !strings.Contains(body, `"title":"Not Found"`) {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrDuplicate, http.StatusConflict},
		{ErrValidation, http.StatusBadRequest},
		{ErrForbidden, http.StatusForbidden},
		{ErrUnauthorized, http.StatusUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		res := httptest.NewRecorder()
		RespondError(res, tc.err)
		if res.Code != tc.want {
			t.Fatalf("error %v: expected %d, got %d", tc.err, tc.want, res.Code)
		}
	}
}

func TestJSONResponse(t *testing.T) {
	res := httptest.NewRecorder()
	JSON(res, http.StatusCreated, map[string]string{"slug": "hello-world"})

	if got := res.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type %q", got)
	}
	if res.Code != http.StatusCreated || !strings.Contains(res.Body.String(), `"hello-world"`) {
		t.Fatalf("unexpected response %d %s", res.Code, res.Body.String())
	}
}
