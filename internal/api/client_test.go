package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/catalog/internal/model"
	"github.com/idilsaglam/catalog/internal/server"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := server.NewStore("")
	require.NoError(t, err)
	srv := httptest.NewServer(server.NewRouter(store, nil))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewNormalizesBaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, New("").BaseURL())
	assert.Equal(t, "http://example.test", New(" http://example.test/ ").BaseURL())
}

func TestClientRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := New(newBackend(t).URL)

	items, err := c.ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)

	created, err := c.CreateItem(ctx, model.Draft{Name: "A", Description: "B"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := c.GetItem(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Item{ID: created.ID, Name: "A", Description: "B"}, got)

	updated, err := c.UpdateItem(ctx, created.ID, model.Draft{Name: "Y", Description: "Z"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Y", updated.Name)

	require.NoError(t, c.DeleteItem(ctx, created.ID))

	_, err = c.GetItem(ctx, created.ID)
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusNotFound, te.StatusCode)
}

func TestDeleteMissingIsTransportError(t *testing.T) {
	c := New(newBackend(t).URL)

	err := c.DeleteItem(context.Background(), "42")
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusNotFound, te.StatusCode)
	assert.Equal(t, http.MethodDelete, te.Method)
	assert.Equal(t, "/api/items/42", te.Path)
}

func TestRequestHeaders(t *testing.T) {
	type seen struct {
		method, contentType, requestID string
	}
	var got []seen
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, seen{r.Method, r.Header.Get("Content-Type"), r.Header.Get("X-Request-ID")})
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `[]`)
		default:
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"id":1,"name":"n","description":"d"}`)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	c := New(srv.URL)
	_, err := c.ListItems(ctx)
	require.NoError(t, err)
	_, err = c.CreateItem(ctx, model.Draft{Name: "n", Description: "d"})
	require.NoError(t, err)
	_, err = c.UpdateItem(ctx, "1", model.Draft{Name: "n", Description: "d"})
	require.NoError(t, err)
	require.NoError(t, c.DeleteItem(ctx, "1"))

	require.Len(t, got, 4)
	assert.Equal(t, "", got[0].contentType)
	assert.Equal(t, "application/json", got[1].contentType)
	assert.Equal(t, "application/json", got[2].contentType)
	assert.Equal(t, "", got[3].contentType)
	for _, s := range got {
		assert.NotEmpty(t, s.requestID, s.method)
	}
}

func TestNonSuccessStatusIsNotParsed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `<html>boom</html>`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListItems(context.Background())
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusInternalServerError, te.StatusCode)
	assert.Contains(t, err.Error(), "status: 500")
}

func TestUnreachableHostIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).ListItems(context.Background())
	var ne *NetworkError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, http.MethodGet, ne.Method)
	var te *TransportError
	assert.False(t, errors.As(err, &te))
}

func TestCancelledContextIsNetworkError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(newBackend(t).URL).ListItems(ctx)
	var ne *NetworkError
	require.True(t, errors.As(err, &ne))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEmptySuccessBodyIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetItem(context.Background(), "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestMalformedBodyIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 1, "name": `))
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetItem(context.Background(), "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
	var ne *NetworkError
	assert.False(t, errors.As(err, &ne))
}

func TestBodyCutShortIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, buf, err := http.NewResponseController(w).Hijack()
		if err != nil {
			return
		}
		defer conn.Close()
		_, _ = buf.WriteString("HTTP/1.1 200 OK\r\nContent-Type: application/json\r\nContent-Length: 500\r\n\r\n[{\"id\": 1")
		_ = buf.Flush()
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListItems(context.Background())
	var ne *NetworkError
	require.True(t, errors.As(err, &ne), "got %v", err)
	assert.Equal(t, http.MethodGet, ne.Method)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
