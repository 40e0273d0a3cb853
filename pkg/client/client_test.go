package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neotica/restaurantreview/pkg/client"
)

const detailJSON = `{
  "error": false,
  "message": "success",
  "restaurant": {
    "id": "rqdv5juczeskfw1e867",
    "name": "Melting Pot",
    "description": "Lorem ipsum",
    "city": "Medan",
    "address": "Jln. Pandeglang no 19",
    "pictureId": "14",
    "rating": 4.2,
    "customerReviews": [
      {"name": "Ahmad", "review": "Tidak rekomendasi untuk pelajar!", "date": "13 November 2019"}
    ]
  }
}`

// newTestClient creates a Client backed by the given httptest handler.
func newTestClient(t *testing.T, handler http.Handler) *client.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := client.New(server.URL, client.WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return c
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	_, err := client.New("restaurant-api")
	require.Error(t, err)
}

func TestFetchRestaurant_Success(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/detail/rqdv5juczeskfw1e867", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(detailJSON))
	}))

	r, err := c.FetchRestaurant(context.Background(), "rqdv5juczeskfw1e867")
	require.NoError(t, err)

	assert.Equal(t, "Melting Pot", r.Name)
	assert.Equal(t, "Lorem ipsum", r.Description)
	assert.Equal(t, "14", r.PictureID)
	assert.Equal(t, "Medan", r.City)
	assert.InDelta(t, 4.2, r.Rating, 0.001)
	require.Len(t, r.Reviews, 1)
	assert.Equal(t, "Ahmad", r.Reviews[0].Name)
	assert.Equal(t, "Tidak rekomendasi untuk pelajar!", r.Reviews[0].Text)
}

func TestFetchRestaurant_EmptyIDIssuesNoRequest(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	_, err := c.FetchRestaurant(context.Background(), "")
	require.ErrorIs(t, err, client.ErrEmptyID)
	assert.Zero(t, calls.Load())
}

func TestFetchRestaurant_BadStatus(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":true,"message":"restaurant not found"}`))
	}))

	_, err := c.FetchRestaurant(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, client.IsBadResponse(err))
	assert.False(t, client.IsTransport(err))

	var ce *client.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusNotFound, ce.Status)
	assert.Equal(t, "restaurant not found", ce.Message)
}

func TestFetchRestaurant_StatusWithoutBodyUsesStatusText(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := c.FetchRestaurant(context.Background(), "x")
	var ce *client.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "Internal Server Error", ce.Message)
}

func TestFetchRestaurant_MissingPayload(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":false,"message":"success"}`))
	}))

	_, err := c.FetchRestaurant(context.Background(), "x")
	assert.True(t, client.IsBadResponse(err))
}

func TestFetchRestaurant_ServerErrorFlag(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":true,"message":"quota exceeded","restaurant":{"name":"x"}}`))
	}))

	_, err := c.FetchRestaurant(context.Background(), "x")
	var ce *client.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, client.KindBadResponse, ce.Kind)
	assert.Equal(t, "quota exceeded", ce.Message)
}

func TestFetchRestaurant_MalformedBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))

	_, err := c.FetchRestaurant(context.Background(), "x")
	assert.True(t, client.IsBadResponse(err))
}

func TestFetchRestaurant_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c, err := client.New(url)
	require.NoError(t, err)

	_, err = c.FetchRestaurant(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, client.IsTransport(err))
}

func TestFetchRestaurant_TimeoutIsTransport(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	c, err := client.New(server.URL, client.WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = c.FetchRestaurant(context.Background(), "x")
	assert.True(t, client.IsTransport(err))
}

func TestWithTimeout_LeavesSharedClientAlone(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	shared := &http.Client{Timeout: time.Minute}
	c, err := client.New(server.URL, client.WithHTTPClient(shared), client.WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = c.FetchRestaurant(context.Background(), "x")
	assert.True(t, client.IsTransport(err))
	assert.Equal(t, time.Minute, shared.Timeout)
}

func TestWithHTTPClient_NilKeepsDefault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(detailJSON))
	}))
	t.Cleanup(server.Close)

	c, err := client.New(server.URL, client.WithHTTPClient(nil), client.WithTimeout(time.Second))
	require.NoError(t, err)

	_, err = c.FetchRestaurant(context.Background(), "rqdv5juczeskfw1e867")
	assert.NoError(t, err)
}

func TestPostReview_SendsFormAndReturnsServerList(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/review", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "rqdv5juczeskfw1e867", r.PostForm.Get("id"))
		assert.Equal(t, "martinn", r.PostForm.Get("name"))
		assert.Equal(t, "Great food", r.PostForm.Get("review"))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"error":false,"message":"success","customerReviews":[
			{"name":"Ahmad","review":"Tidak rekomendasi untuk pelajar!"},
			{"name":"martinn","review":"Great food"}
		]}`))
	}))

	r, err := c.PostReview(context.Background(), "rqdv5juczeskfw1e867", "martinn", "Great food")
	require.NoError(t, err)
	require.Len(t, r.Reviews, 2)
	assert.Equal(t, "Great food", r.Reviews[1].Text)
	assert.False(t, r.HasHeader())
}

func TestPostReview_EmptyTextIssuesNoRequest(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	_, err := c.PostReview(context.Background(), "id", "martinn", "")
	require.ErrorIs(t, err, client.ErrEmptyReview)
	assert.Zero(t, calls.Load())
}

func TestPostReview_MissingReviews(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":false,"message":"success"}`))
	}))

	_, err := c.PostReview(context.Background(), "id", "martinn", "ok")
	assert.True(t, client.IsBadResponse(err))
}

func TestPictureURL(t *testing.T) {
	assert.Equal(t,
		"https://restaurant-api.dicoding.dev/images/large/14",
		client.PictureURL("https://restaurant-api.dicoding.dev/", client.PictureLarge, "14"))
	assert.Equal(t,
		"https://example.com/images/large/7",
		client.PictureURL("https://example.com", "", "7"))
	assert.Empty(t, client.PictureURL("https://example.com", client.PictureSmall, ""))
}

func TestErrorString(t *testing.T) {
	err := &client.Error{Kind: client.KindBadResponse, Op: "fetch", Status: 404, Message: "Not Found"}
	assert.Equal(t, "fetch: bad response: 404 Not Found", err.Error())
}
