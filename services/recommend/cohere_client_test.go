package recommend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"testing"
)

func newTestCohereClient(rt roundTripFunc) *cohereClient {
	return newCohereClient("cohere-key", "command-r", "", &http.Client{Transport: rt})
}

func TestRecommendTitlesParsesAndCleans(t *testing.T) {
	client := newTestCohereClient(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodPost || req.URL.Path != "/v1/chat" {
			t.Errorf("unexpected request %s %s", req.Method, req.URL.Path)
		}
		if got := req.Header.Get("Authorization"); got != "Bearer cohere-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		body, _ := io.ReadAll(req.Body)
		if !strings.Contains(string(body), `"model":"command-r"`) || !strings.Contains(string(body), "Recommend 5 movies") {
			t.Errorf("unexpected request body %s", body)
		}
		return jsonResponse(http.StatusOK, `{"text":"1. Inception\n\n2) Dune\n- Heat\nArrival\n"}`), nil
	})

	got := client.recommendTitles(context.Background(), "mind-bending sci-fi")
	want := []string{"Inception", "Dune", "Heat", "Arrival"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("recommendTitles = %v, want %v", got, want)
	}
}

func TestRecommendTitlesCapsAtFive(t *testing.T) {
	client := newTestCohereClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"text":"1. A\n2. B\n3. C\n4. D\n5. E\n6. F\n7. G"}`), nil
	})

	got := client.recommendTitles(context.Background(), "anything")
	if len(got) != 5 {
		t.Fatalf("expected 5 titles, got %d: %v", len(got), got)
	}
}

func TestRecommendTitlesEmptyOnFailure(t *testing.T) {
	for name, rt := range map[string]roundTripFunc{
		"transport error": func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		},
		"server error": func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusTooManyRequests, `{}`), nil
		},
		"malformed body": func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `not json`), nil
		},
		"blank text": func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"text":"\n \n"}`), nil
		},
	} {
		t.Run(name, func(t *testing.T) {
			client := newTestCohereClient(rt)
			if got := client.recommendTitles(context.Background(), "q"); len(got) != 0 {
				t.Fatalf("expected no titles, got %v", got)
			}
		})
	}
}
