package restclient_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	resthttp "github.com/fivetwenty-io/restclient/internal/http"
	"github.com/fivetwenty-io/restclient/pkg/restclient"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  *restclient.Config
		wantErr bool
	}{
		{name: "nil config", config: nil, wantErr: true},
		{name: "empty base URL", config: &restclient.Config{}, wantErr: true},
		{name: "empty base URL in dry-run mode", config: &restclient.Config{URLsOnly: true}, wantErr: true},
		{name: "unparsable base URL", config: &restclient.Config{BaseURL: "http://[::1"}, wantErr: true},
		{name: "host without scheme", config: &restclient.Config{BaseURL: "localhost:8080"}, wantErr: true},
		{name: "absolute base URL", config: &restclient.Config{BaseURL: "http://localhost"}},
		{name: "base URL with trailing separator", config: &restclient.Config{BaseURL: "http://localhost/"}},
		{name: "rooted path", config: &restclient.Config{BaseURL: "/api"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			client, err := restclient.New(testCase.config)
			if testCase.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, restclient.ErrInvalidParameters)
				assert.Nil(t, client)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.config.BaseURL, client.BaseURL())
			assert.False(t, client.URLsOnly())
		})
	}
}

func TestNewWithTransport(t *testing.T) {
	t.Parallel()

	t.Run("keeps the mode flag", func(t *testing.T) {
		t.Parallel()

		client, err := restclient.NewWithTransport("http://localhost", true, &MockTransport{})
		require.NoError(t, err)
		assert.True(t, client.URLsOnly())
		assert.True(t, client.Resource("books").URLsOnly())
	})

	t.Run("empty base URL", func(t *testing.T) {
		t.Parallel()

		_, err := restclient.NewWithTransport("", false, nil)
		require.ErrorIs(t, err, restclient.ErrInvalidParameters)
	})
}

func TestRestClient_Resource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		baseURL  string
		resource string
		want     string
	}{
		{name: "plain base", baseURL: "http://localhost", resource: "books", want: "http://localhost/books"},
		{name: "trailing separator", baseURL: "http://localhost/", resource: "books", want: "http://localhost/books"},
		{name: "duplicate separators", baseURL: "http://localhost//", resource: "/books", want: "http://localhost/books"},
		{name: "base with path", baseURL: "http://localhost/api/v1", resource: "authors", want: "http://localhost/api/v1/authors"},
		{name: "nested resource", baseURL: "http://localhost", resource: "v2/books", want: "http://localhost/v2/books"},
		{name: "name needing escape", baseURL: "http://localhost", resource: "rare books", want: "http://localhost/rare%20books"},
		{name: "single dot name", baseURL: "http://localhost/api", resource: ".", want: "http://localhost/api/%2E"},
		{name: "double dot name", baseURL: "http://localhost/api", resource: "..", want: "http://localhost/api/%2E%2E"},
		{name: "name climbing out of the base", baseURL: "http://localhost/api", resource: "../admin", want: "http://localhost/api/%2E%2E/admin"},
		{name: "arbitrary identifier", baseURL: "https://api.example.com", resource: "anything_at_all", want: "https://api.example.com/anything_at_all"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			client, err := restclient.New(&restclient.Config{BaseURL: testCase.baseURL, Transport: &MockTransport{}})
			require.NoError(t, err)

			assert.Equal(t, testCase.want, client.Resource(testCase.resource).URL())
		})
	}
}

func TestRestClient_DotResourceCollectionURL(t *testing.T) {
	t.Parallel()

	client, err := restclient.New(&restclient.Config{BaseURL: "http://localhost/api", Transport: &MockTransport{}})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost/api/%2E%2E/", client.Resource("..").CollectionURL())
	assert.Equal(t, "http://localhost/api/%2E%2E/admin/", client.Resource("../admin").CollectionURL())
}

func TestLogger_IsTransportLogger(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		reflect.TypeOf((*resthttp.Logger)(nil)).Elem(),
		reflect.TypeOf((*restclient.Logger)(nil)).Elem())
}

func TestRestClient_ResourceIsNotCached(t *testing.T) {
	t.Parallel()

	client, err := restclient.New(&restclient.Config{BaseURL: "http://localhost", Transport: &MockTransport{}})
	require.NoError(t, err)

	first := client.Resource("books")
	second := client.Resource("books")

	assert.NotSame(t, first, second)
	assert.Equal(t, first.URL(), second.URL())
}

func TestRestClient_DefaultTransport(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/books/7/", request.URL.Path)
		assert.Equal(t, "restclient-test", request.Header.Get("User-Agent"))

		writer.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	registry := prometheus.NewRegistry()

	client, err := restclient.New(&restclient.Config{
		BaseURL:           server.URL + "/",
		UserAgent:         "restclient-test",
		MetricsRegisterer: registry,
	})
	require.NoError(t, err)

	result, err := client.Resource("books").Retrieve(context.Background(), 7)
	require.NoError(t, err)

	defer func() { _ = result.Response.Body.Close() }()

	assert.False(t, result.DryRun())
	assert.Equal(t, server.URL+"/books/7/", result.URL)
	assert.Equal(t, http.StatusNotFound, result.Response.StatusCode)

	count, err := testutil.GatherAndCount(registry, "restclient_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRestClient_DefaultTransportNetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client, err := restclient.New(&restclient.Config{BaseURL: baseURL})
	require.NoError(t, err)

	result, err := client.Resource("books").List(context.Background(), nil)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.False(t, errors.Is(err, restclient.ErrInvalidParameters))
}
