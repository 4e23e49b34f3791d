package fxrate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func chartBody(closes string) string {
	return `{"chart":{"result":[{"indicators":{"quote":[{"close":` + closes + `}]}}]}}`
}

func TestSpotReturnsLatestClose(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v8/finance/chart/THB=X", r.URL.Path)
		_, _ = w.Write([]byte(chartBody("[33.9,34.1,34.25]")))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	spot, err := client.Spot(context.Background(), "USD")
	require.NoError(t, err)
	require.InDelta(t, 34.25, spot, 1e-9)
}

func TestSpotSkipsTrailingNullCloses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chartBody("[38.5,38.75,null]")))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	spot, err := client.Spot(context.Background(), "EUR")
	require.NoError(t, err)
	require.InDelta(t, 38.75, spot, 1e-9)
}

func TestSpotUnknownCurrencyFallsBackToDefaultTicker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v8/finance/chart/THB=X", r.URL.Path)
		_, _ = w.Write([]byte(chartBody("[34.0]")))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	spot, err := client.Spot(context.Background(), "GBP")
	require.NoError(t, err)
	require.InDelta(t, 34.0, spot, 1e-9)
}

func TestSpotUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	_, err := client.Spot(context.Background(), "JPY")
	require.Error(t, err)
}

func TestEffectiveRate(t *testing.T) {
	require.InDelta(t, 33.8, Effective(34.0, 0.5, 0.3), 1e-9)
	require.InDelta(t, 34.0, Effective(34.0, 0, 0), 1e-9)
}
