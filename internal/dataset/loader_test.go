package dataset_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/dataset"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/models"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/ogd"
)

const csvHeader = "Datum,Standort,Richtung,Fahrstreifen,Klasse.ID,Klasse.Text,Anzahl,Status\n"

func yearCSV(year, perHour int) string {
	return csvHeader + fmt.Sprintf(
		"%d-06-01T08:00+0200,Zch_Rosengartenbruecke,Richtung Bucheggplatz,1,2,Personenwagen,%d,bereinigt\n",
		year, perHour)
}

func TestLoaderRefresh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ugz_ogd_traffic_rosengartenbruecke_h1_2022.csv":
			w.Write([]byte(yearCSV(2022, 100)))
		case "/ugz_ogd_traffic_rosengartenbruecke_h1_2023.csv":
			w.Write([]byte(yearCSV(2023, 200)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	store := dataset.NewStore(testDB(t))
	loader := dataset.NewLoader(ogd.NewClient(srv.URL+"/", 5*time.Second), store)

	snap, err := loader.Refresh(context.Background(), []int{2022, 2023})

	require.NoError(t, err)
	assert.Len(t, snap.Records, 2)
	assert.Equal(t, []int{2022, 2023}, snap.Years)
	assert.Empty(t, snap.FetchErrors)
	assert.False(t, snap.RefreshedAt.IsZero())

	status := loader.Status()
	assert.Equal(t, 2, status.RecordCount)
	assert.Equal(t, []int{2022, 2023}, status.Years)
}

func TestLoaderRefreshKeepsCachedYearOnFetchError(t *testing.T) {
	healthy := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			http.Error(w, "gone", http.StatusBadGateway)
			return
		}
		w.Write([]byte(yearCSV(2023, 100)))
	}))
	defer srv.Close()

	store := dataset.NewStore(testDB(t))
	loader := dataset.NewLoader(ogd.NewClient(srv.URL+"/", 5*time.Second), store)

	_, err := loader.Refresh(context.Background(), []int{2023})
	require.NoError(t, err)

	healthy = false
	snap, err := loader.Refresh(context.Background(), []int{2023})

	// The portal failure is not fatal: the cached year keeps serving.
	require.NoError(t, err)
	assert.Len(t, snap.Records, 1)
	require.Len(t, snap.FetchErrors, 1)
	assert.Contains(t, snap.FetchErrors[0], "unexpected status 502")
}

func TestLoaderRefreshFailsWithoutAnyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	store := dataset.NewStore(testDB(t))
	loader := dataset.NewLoader(ogd.NewClient(srv.URL+"/", 5*time.Second), store)

	_, err := loader.Refresh(context.Background(), []int{2023})

	require.Error(t, err)
	assert.Nil(t, loader.Snapshot())
}

func TestLoaderWarmFromCache(t *testing.T) {
	db := testDB(t)
	store := dataset.NewStore(db)
	zurich := time.FixedZone("CET", 3600)
	require.NoError(t, store.ReplaceYear(2023, []models.CountRecord{
		count(time.Date(2023, 1, 2, 8, 0, 0, 0, zurich), "Richtung Bucheggplatz", 2, 120),
	}))
	refreshed := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.SetRefreshedAt(refreshed))

	loader := dataset.NewLoader(nil, store)
	snap, err := loader.Warm()

	require.NoError(t, err)
	assert.Len(t, snap.Records, 1)
	assert.Equal(t, []int{2023}, snap.Years)
	assert.True(t, snap.RefreshedAt.Equal(refreshed))
}

func TestLoaderSnapshotNilBeforeWarm(t *testing.T) {
	loader := dataset.NewLoader(nil, dataset.NewStore(testDB(t)))

	assert.Nil(t, loader.Snapshot())
	assert.Equal(t, 0, loader.Status().RecordCount)
}
