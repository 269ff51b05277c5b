package request

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallPostsJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret", r.Header.Get("X-Auth-Token"))

		var payload map[string]bool
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.True(t, payload["free_memory"])

		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	req := Request{
		Url:     server.URL,
		Method:  http.MethodPost,
		Headers: []Headers{{Key: "X-Auth-Token", Value: "secret"}},
		Payload: map[string]bool{"free_memory": true},
	}

	var response struct {
		Ok bool `json:"ok"`
	}
	require.NoError(t, req.Call(context.Background(), &response))
	assert.True(t, response.Ok)
}

func TestCallReportsStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	req := Request{Url: server.URL, Method: http.MethodGet}
	err := req.Call(context.Background(), nil)
	assert.ErrorContains(t, err, "502")
}

func TestCallUploadsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "note.txt")
	require.NoError(t, os.WriteFile(file, []byte("hello bird"), 0o644))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "a note", r.FormValue("description"))

		part, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer part.Close()
		assert.Equal(t, "note.txt", header.Filename)
		assert.True(t, strings.HasPrefix(header.Header.Get("Content-Type"), "text/plain"))

		data, err := io.ReadAll(part)
		require.NoError(t, err)
		assert.Equal(t, "hello bird", string(data))

		_, _ = w.Write([]byte("stored"))
	}))
	defer server.Close()

	req := Request{
		Url:      server.URL,
		Method:   http.MethodPost,
		FileName: file,
		Fields:   []Fields{{Key: "description", Value: "a note"}},
	}

	var response string
	require.NoError(t, req.Call(context.Background(), &response))
	assert.Equal(t, "stored", response)
}
