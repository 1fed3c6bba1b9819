package unsplash

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/propositos-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchFixture = `{
	"total": 133,
	"total_pages": 7,
	"results": [
		{
			"id": "eOLpJytrbsQ",
			"description": "A man drinking a coffee.",
			"alt_description": "man sipping coffee",
			"urls": {
				"raw": "https://images.example/raw",
				"full": "https://images.example/full",
				"regular": "https://images.example/regular",
				"small": "https://images.example/small",
				"thumb": "https://images.example/thumb"
			},
			"links": {"html": "https://unsplash.example/photos/eOLpJytrbsQ"},
			"user": {"name": "Jeff Sheldon", "links": {"html": "https://unsplash.example/@ugmonk"}}
		}
	]
}`

func testClient(srv *httptest.Server) *Client {
	return &Client{httpClient: srv.Client(), baseURL: srv.URL}
}

func TestSearch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/photos", r.URL.Path)
		assert.Equal(t, "Client-ID test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "wedding decor", r.URL.Query().Get("query"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "20", r.URL.Query().Get("per_page"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchFixture))
	}))
	defer srv.Close()

	res, err := testClient(srv).Search(context.Background(), "test-key", "wedding decor", 2)
	require.NoError(t, err)

	assert.Equal(t, 133, res.Total)
	assert.Equal(t, 7, res.TotalPages)
	require.Len(t, res.Results, 1)
	assert.Equal(t, "eOLpJytrbsQ", res.Results[0].ID)
	assert.Equal(t, "https://images.example/regular", res.Results[0].URLs.Regular)
	assert.Equal(t, "Jeff Sheldon", res.Results[0].User.Name)
}

func TestSearch_RejectedCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := testClient(srv).Search(context.Background(), "bad-key", "flowers", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.ErrorContains(t, err, "credential")
}

func TestSearch_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(srv).Search(context.Background(), "test-key", "flowers", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestSearch_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed before use

	_, err := testClient(srv).Search(context.Background(), "test-key", "flowers", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}
