package forecast

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matryer/is"
)

const forecastPayload = `{
  "city": {"name": "London"},
  "list": [
    {"dt": 1767225600, "main": {"temp": 8.2, "humidity": 81}, "wind": {"speed": 4.1}},
    {"dt": 1767236400, "main": {"temp": 7.5, "humidity": 84}, "wind": {"speed": 3.6}},
    {"dt": 1767247200, "main": {"temp": 9.0, "humidity": 78}, "wind": {"speed": 5.2}}
  ]
}`

func TestOpenWeatherFetch(t *testing.T) {
	is := is.New(t)

	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"q":     q.Get("q"),
			"appid": q.Get("appid"),
			"units": q.Get("units"),
		}
		w.Write([]byte(forecastPayload))
	}))
	defer server.Close()

	src := NewOpenWeatherSource("test-key", "", "metric")
	src.baseURL = server.URL

	set, err := src.Fetch(context.Background(), "London")
	is.NoErr(err)
	is.Equal(gotQuery["q"], "London")
	is.Equal(gotQuery["appid"], "test-key")
	is.Equal(gotQuery["units"], "metric")

	is.Equal(set.City, "London")
	is.Equal(set.Provider, "openweather")
	is.Equal(len(set.Records), 3)

	is.Equal(set.Records[0].Timestamp, time.Unix(1767225600, 0).UTC())
	is.Equal(set.Records[0].Temperature, 8.2)
	is.Equal(set.Records[0].Humidity, 81.0)
	is.Equal(set.Records[0].WindSpeed, 4.1)

	// Upstream order preserved.
	is.True(set.Records[1].Timestamp.After(set.Records[0].Timestamp))
	is.True(set.Records[2].Timestamp.After(set.Records[1].Timestamp))
}

func TestOpenWeatherFetchWithCountry(t *testing.T) {
	is := is.New(t)

	var gotLocation string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLocation = r.URL.Query().Get("q")
		w.Write([]byte(forecastPayload))
	}))
	defer server.Close()

	src := NewOpenWeatherSource("test-key", "GB", "metric")
	src.baseURL = server.URL

	_, err := src.Fetch(context.Background(), "London")
	is.NoErr(err)
	is.Equal(gotLocation, "London,GB")
}

func TestOpenWeatherMissingAPIKey(t *testing.T) {
	is := is.New(t)

	src := NewOpenWeatherSource("", "", "metric")
	_, err := src.Fetch(context.Background(), "London")
	is.True(err != nil)
}

func TestOpenWeatherBadStatus(t *testing.T) {
	is := is.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	src := NewOpenWeatherSource("bad-key", "", "metric")
	src.baseURL = server.URL

	_, err := src.Fetch(context.Background(), "London")
	is.True(err != nil)
}

func TestOpenWeatherEmptyList(t *testing.T) {
	is := is.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"city": {"name": "Nowhere"}, "list": []}`))
	}))
	defer server.Close()

	src := NewOpenWeatherSource("test-key", "", "metric")
	src.baseURL = server.URL

	_, err := src.Fetch(context.Background(), "Nowhere")
	is.True(err != nil)
}
