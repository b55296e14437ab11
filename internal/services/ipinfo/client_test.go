package ipinfo_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/console-weather/internal/models"
	"github.com/Nazarious-ucu/console-weather/internal/services/ipinfo"
)

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestExternal_OwnAddress(t *testing.T) {
	m := &mockHTTPClient{}
	m.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.String() == "https://ipinfo.io"
	})).Return(response(http.StatusOK,
		`{"ip":"129.49.1.1","city":"Stony Brook","region":"New York","postal":"11790","org":"AS5719"}`), nil).Once()
	t.Cleanup(func() { m.AssertExpectations(t) })

	c := ipinfo.NewClient("https://ipinfo.io/", m, zerolog.Nop())

	info, err := c.External(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, models.IPInfo{
		IP:     "129.49.1.1",
		City:   "Stony Brook",
		Region: "New York",
		Postal: "11790",
	}, info)
}

func TestExternal_KnownAddress(t *testing.T) {
	m := &mockHTTPClient{}
	m.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.String() == "https://ipinfo.io/8.8.8.8"
	})).Return(response(http.StatusOK, `{"ip":"8.8.8.8","postal":"94043"}`), nil).Once()
	t.Cleanup(func() { m.AssertExpectations(t) })

	c := ipinfo.NewClient("https://ipinfo.io", m, zerolog.Nop())

	info, err := c.External(context.Background(), "8.8.8.8")
	require.NoError(t, err)
	assert.Equal(t, "94043", info.Postal)
}

func TestExternal_StatusError(t *testing.T) {
	m := &mockHTTPClient{}
	m.On("Do", mock.Anything).Return(response(http.StatusTooManyRequests,
		`{"error":{"title":"Rate limit exceeded"}}`), nil).Once()
	t.Cleanup(func() { m.AssertExpectations(t) })

	c := ipinfo.NewClient("https://ipinfo.io", m, zerolog.Nop())

	info, err := c.External(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Code [429]")
	assert.Equal(t, models.IPInfo{}, info)
}

func TestExternal_TransportError(t *testing.T) {
	m := &mockHTTPClient{}
	m.On("Do", mock.Anything).Return(nil, assert.AnError).Once()
	t.Cleanup(func() { m.AssertExpectations(t) })

	c := ipinfo.NewClient("https://ipinfo.io", m, zerolog.Nop())

	_, err := c.External(context.Background(), "")
	assert.ErrorIs(t, err, assert.AnError)
}
