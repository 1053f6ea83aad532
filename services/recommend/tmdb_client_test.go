package recommend

import (
	"context"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"lovecinema/models"
)

func newTestTMDBClient(rt roundTripFunc) *tmdbClient {
	return newTMDBClient("tmdb-key", "", &http.Client{Transport: rt})
}

func TestMovieDetailsBuildsPosterURL(t *testing.T) {
	client := newTestTMDBClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"results":[{
			"id": 76341,
			"title": "Mad Max: Fury Road",
			"overview": "An apocalyptic story.",
			"poster_path": "/fury.jpg",
			"release_date": "2015-05-13",
			"vote_average": 7.6
		}]}`), nil
	})

	d := client.movieDetails(context.Background(), "mad max")
	if d.TMDBID != 76341 {
		t.Fatalf("unexpected id %d", d.TMDBID)
	}
	if d.Poster != "https://image.tmdb.org/t/p/w500/fury.jpg" {
		t.Fatalf("unexpected poster %q", d.Poster)
	}
	if d.ReleaseDate != "2015-05-13" {
		t.Fatalf("release date must pass through verbatim, got %q", d.ReleaseDate)
	}
	if d.Rating != "7.6" {
		t.Fatalf("unexpected rating %q", d.Rating)
	}
}

func TestMovieDetailsPlaceholdersOnMiss(t *testing.T) {
	client := newTestTMDBClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"results":[]}`), nil
	})

	d := client.movieDetails(context.Background(), "no such movie")
	if d.TMDBID != 0 {
		t.Fatalf("expected zero id on miss, got %d", d.TMDBID)
	}
	if d.Title != "no such movie" {
		t.Fatalf("miss must keep the query title, got %q", d.Title)
	}
	if d.Overview != models.PlaceholderOverview || d.Poster != models.PlaceholderPoster {
		t.Fatalf("expected placeholder fields, got %+v", d)
	}
	if d.ReleaseDate != models.PlaceholderDate || d.Rating != models.PlaceholderRating {
		t.Fatalf("expected placeholder date/rating, got %+v", d)
	}
}

func TestMovieDetailsPlaceholdersOnTransportFailure(t *testing.T) {
	client := newTestTMDBClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadGateway, `upstream down`), nil
	})

	d := client.movieDetails(context.Background(), "whatever")
	if d.TMDBID != 0 || d.Overview != models.PlaceholderOverview {
		t.Fatalf("transport failure must degrade to placeholders, got %+v", d)
	}
}

func TestWatchProvidersPriorityAndDedup(t *testing.T) {
	client := newTestTMDBClient(func(req *http.Request) (*http.Response, error) {
		if !strings.Contains(req.URL.Path, "/movie/42/watch/providers") {
			t.Errorf("unexpected path %s", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, `{"results":{"IN":{
			"flatrate":[{"provider_name":"A"},{"provider_name":"B"}],
			"rent":[{"provider_name":"B"},{"provider_name":"C"}]
		}}}`), nil
	})

	got := client.watchProviders(context.Background(), 42, "IN")
	want := []string{"A", "B", "C"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("watchProviders = %v, want %v", got, want)
	}
}

func TestWatchProvidersFullPriorityOrder(t *testing.T) {
	client := newTestTMDBClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"results":{"IN":{
			"buy":[{"provider_name":"Buy1"}],
			"rent":[{"provider_name":"Rent1"}],
			"free":[{"provider_name":"Free1"}],
			"ads":[{"provider_name":"Ads1"}],
			"flatrate":[{"provider_name":"Sub1"}]
		}}}`), nil
	})

	got := client.watchProviders(context.Background(), 7, "IN")
	want := []string{"Sub1", "Ads1", "Free1", "Rent1", "Buy1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("watchProviders = %v, want %v", got, want)
	}
}

func TestWatchProvidersRegionMissing(t *testing.T) {
	client := newTestTMDBClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"results":{"US":{"flatrate":[{"provider_name":"A"}]}}}`), nil
	})

	if got := client.watchProviders(context.Background(), 7, "IN"); got != nil {
		t.Fatalf("expected nil for missing region, got %v", got)
	}
}

func TestWatchProvidersZeroID(t *testing.T) {
	client := newTestTMDBClient(func(req *http.Request) (*http.Response, error) {
		t.Error("no request should be made without a catalog id")
		return jsonResponse(http.StatusNotFound, `{}`), nil
	})

	if got := client.watchProviders(context.Background(), 0, "IN"); got != nil {
		t.Fatalf("expected nil for zero id, got %v", got)
	}
}
