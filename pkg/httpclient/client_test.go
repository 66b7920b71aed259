package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func TestClient_Do(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"duplicate email"}`))
	}))
	defer server.Close()

	client := NewClient(DefaultConfig(), testLogger())
	req, err := http.NewRequest(http.MethodGet, server.URL+"/brands", nil)
	require.NoError(t, err)

	resp, err := client.Do(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.False(t, IsSuccessStatus(resp.StatusCode))
	assert.Equal(t, "duplicate email", ErrorMessage(resp))
}

func TestClient_Do_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(DefaultConfig(), testLogger())
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)

	_, err = client.Do(context.Background(), req)
	assert.Error(t, err)
}

func TestParseJSON(t *testing.T) {
	value, err := ParseJSON(&Response{Body: []byte(" ")})
	require.NoError(t, err)
	assert.Nil(t, value)

	value, err = ParseJSON(&Response{Body: []byte(`{"brands":[]}`)})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"brands": []any{}}, value)

	_, err = ParseJSON(&Response{Body: []byte(`<html>`)})
	assert.Error(t, err)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "", ErrorMessage(nil))
	assert.Equal(t, "", ErrorMessage(&Response{Body: []byte(`not json`)}))
	assert.Equal(t, "", ErrorMessage(&Response{Body: []byte(`[1,2]`)}))
	assert.Equal(t, "nope", ErrorMessage(&Response{Body: []byte(`{"message":"nope"}`)}))
}
