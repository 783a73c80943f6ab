package restclient_test

import (
	"context"
	"net/http"
	"net/url"

	"github.com/stretchr/testify/mock"
)

// MockTransport implements restclient.Transport for testing.
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	return responseFrom(m.Called(ctx, rawURL))
}

func (m *MockTransport) GetWithParams(ctx context.Context, rawURL string, params url.Values) (*http.Response, error) {
	return responseFrom(m.Called(ctx, rawURL, params))
}

func (m *MockTransport) Post(ctx context.Context, rawURL string, data interface{}) (*http.Response, error) {
	return responseFrom(m.Called(ctx, rawURL, data))
}

func (m *MockTransport) Put(ctx context.Context, rawURL string, data interface{}) (*http.Response, error) {
	return responseFrom(m.Called(ctx, rawURL, data))
}

func (m *MockTransport) Patch(ctx context.Context, rawURL string, data interface{}) (*http.Response, error) {
	return responseFrom(m.Called(ctx, rawURL, data))
}

func (m *MockTransport) Delete(ctx context.Context, rawURL string) (*http.Response, error) {
	return responseFrom(m.Called(ctx, rawURL))
}

func responseFrom(args mock.Arguments) (*http.Response, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*http.Response), args.Error(1)
}

func okResponse() *http.Response {
	return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}
}
