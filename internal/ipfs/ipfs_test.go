package ipfs

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habithero/habitherod/internal/config"
	"github.com/habithero/habitherod/internal/models"
	"github.com/habithero/habitherod/pkg/logger"
)

func newTestUploader(apiURL string) *Uploader {
	return NewUploader(logger.NewNop(), &config.Config{
		IPFSAPIURL:        apiURL,
		IPFSGateway:       "http://127.0.0.1:8081/ipfs/",
		IPFSPublicGateway: "https://ipfs.io/ipfs/",
	})
}

func TestUpload_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "logo.svg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Name":"logo.svg","Hash":"QmTestHash","Size":"1024"}`))
	}))
	defer ts.Close()

	u := newTestUploader(ts.URL + "/api/v0/add")
	result, err := u.Upload(context.Background(), "logo.svg", strings.NewReader("<svg/>"))
	require.NoError(t, err)

	assert.Equal(t, "QmTestHash", result.Hash)
	assert.Equal(t, "1024", result.Size)
	assert.Equal(t, "http://127.0.0.1:8081/ipfs/QmTestHash", result.LocalURL)
	assert.Equal(t, "https://ipfs.io/ipfs/QmTestHash", result.PublicURL)
	assert.Equal(t, "http://127.0.0.1:8081/ipfs/QmTestHash", result.GatewayURL)
}

func TestUpload_NodeError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "node down", http.StatusInternalServerError)
	}))
	defer ts.Close()

	u := newTestUploader(ts.URL + "/api/v0/add")
	_, err := u.Upload(context.Background(), "logo.svg", strings.NewReader("<svg/>"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestUpload_MissingHash(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Name":"logo.svg"}`))
	}))
	defer ts.Close()

	u := newTestUploader(ts.URL + "/api/v0/add")
	_, err := u.Upload(context.Background(), "logo.svg", strings.NewReader("<svg/>"))
	assert.Error(t, err)
}

func TestURLs(t *testing.T) {
	u := newTestUploader("http://127.0.0.1:5001/api/v0/add")
	result := u.URLs("QmTestHash")

	assert.Equal(t, "QmTestHash", result.Hash)
	assert.Equal(t, "http://127.0.0.1:8081/ipfs/QmTestHash", result.LocalURL)
	assert.Equal(t, "https://ipfs.io/ipfs/QmTestHash", result.PublicURL)
	assert.Equal(t, "http://127.0.0.1:8081/ipfs/QmTestHash", result.GatewayURL)
}

func TestFetch_StreamsFromGateway(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ipfs/QmTestHash" {
			w.Header().Set("Content-Type", "image/svg+xml")
			w.Write([]byte("<svg/>"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	u := NewUploader(logger.NewNop(), &config.Config{
		IPFSGateway: ts.URL + "/ipfs/",
	})

	contentType, body, err := u.Fetch(context.Background(), "QmTestHash")
	require.NoError(t, err)
	defer body.Close()

	assert.Equal(t, "image/svg+xml", contentType)
	content, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(content))

	_, _, err = u.Fetch(context.Background(), "QmMissing")
	assert.ErrorIs(t, err, models.ErrFileNotFound)
}

func TestHealthy(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/version") {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	u := newTestUploader(ts.URL + "/api/v0/add")
	assert.True(t, u.Healthy(context.Background()))

	ts.Close()
	assert.False(t, u.Healthy(context.Background()))
}
