package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShimClient_Post_Success(t *testing.T) {
	var gotPath, gotContentType string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		assert.Equal(t, http.MethodPost, r.Method)
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"content":"hello"}`))
	}))
	defer srv.Close()

	client := NewShimClient(srv.URL+"/", nil)
	res, err := client.Post(context.Background(), PathFsRead, map[string]string{"path": "a.txt"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.JSONEq(t, `{"content":"hello"}`, string(res.Body))
	assert.Equal(t, "/fs/read", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "a.txt", gotBody["path"])
}

func TestShimClient_Post_HTTPError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, "not found")
	}))
	defer srv.Close()

	client := NewShimClient(srv.URL, srv.Client())
	res, err := client.Post(context.Background(), PathFsRead, map[string]string{"path": "missing.txt"})

	require.Nil(t, res)
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "not found", httpErr.Body)
	assert.Equal(t, 1, calls, "failed calls must not be retried")
}

func TestShimClient_Post_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	client := NewShimClient(addr, nil)
	_, err := client.Post(context.Background(), PathChat, map[string]interface{}{"message": "hi"})

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, PathChat, transportErr.Path)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestShimClient_Post_EncodeError(t *testing.T) {
	client := NewShimClient("http://127.0.0.1:1", nil)
	_, err := client.Post(context.Background(), PathChat, map[string]interface{}{"bad": make(chan int)})

	require.Error(t, err)
	var transportErr *TransportError
	assert.False(t, errors.As(err, &transportErr))
}
