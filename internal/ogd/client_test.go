package ogd_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/ogd"
)

func TestClientYearURL(t *testing.T) {
	c := ogd.NewClient("https://example.test/download/", time.Second)

	assert.Equal(t,
		"https://example.test/download/ugz_ogd_traffic_rosengartenbruecke_h1_2023.csv",
		c.YearURL(2023))
}

func TestClientFetchYear(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ugz_ogd_traffic_rosengartenbruecke_h1_2023.csv", r.URL.Path)
		w.Write([]byte(csvHeader +
			"2023-01-02T08:00+0100,Zch_Rosengartenbruecke,Richtung Bucheggplatz,1,2,Personenwagen,120,bereinigt\n"))
	}))
	defer srv.Close()

	c := ogd.NewClient(srv.URL+"/", 5*time.Second)
	records, err := c.FetchYear(context.Background(), 2023)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 120, records[0].Count)
}

func TestClientFetchYearNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := ogd.NewClient(srv.URL+"/", 5*time.Second)
	_, err := c.FetchYear(context.Background(), 2019)

	require.Error(t, err)
	var dsErr *ogd.DataSourceError
	require.ErrorAs(t, err, &dsErr)
	assert.Equal(t, 2019, dsErr.Year)
	assert.Contains(t, dsErr.Error(), "unexpected status 404")
}

func TestClientFetchYearUnparsableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not,a,count\nfile,at,all\n"))
	}))
	defer srv.Close()

	c := ogd.NewClient(srv.URL+"/", 5*time.Second)
	_, err := c.FetchYear(context.Background(), 2023)

	var dsErr *ogd.DataSourceError
	require.ErrorAs(t, err, &dsErr)
}

func TestClientFetchYearContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := ogd.NewClient(srv.URL+"/", 5*time.Second)
	_, err := c.FetchYear(ctx, 2023)

	require.Error(t, err)
	var dsErr *ogd.DataSourceError
	require.ErrorAs(t, err, &dsErr)
	assert.True(t, errors.Is(err, context.Canceled))
}
