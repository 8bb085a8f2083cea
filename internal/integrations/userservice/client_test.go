package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, time.Second, nopLogger{})
}

func TestGetUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/users/3", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":3,"name":"Ivan","is_blocked":true}`))
	})

	user, err := c.GetUser(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, "Ivan", user.Name)
	assert.True(t, user.IsBlocked)
}

func TestGetUserWithGracefulDegradation(t *testing.T) {
	t.Run("not found is passed through", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := c.GetUserWithGracefulDegradation(context.Background(), 3)

		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.NotErrorIs(t, err, ErrServiceDegraded)
	})

	t.Run("server error degrades", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := c.GetUserWithGracefulDegradation(context.Background(), 3)

		assert.ErrorIs(t, err, ErrServiceDegraded)
	})

	t.Run("malformed body degrades", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{`))
		})

		_, err := c.GetUserWithGracefulDegradation(context.Background(), 3)

		assert.ErrorIs(t, err, ErrServiceDegraded)
	})
}
