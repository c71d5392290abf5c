// Package ipfs pins habit badge images on an IPFS node and builds the
// gateway URLs handed back to clients.
package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/habithero/habitherod/internal/config"
	"github.com/habithero/habitherod/internal/models"
	"github.com/habithero/habitherod/pkg/logger"
)

// nodeResponse is the raw response of the IPFS node's add endpoint.
type nodeResponse struct {
	Name string `json:"Name"`
	Hash string `json:"Hash"`
	Size string `json:"Size"`
}

// Uploader posts multipart bodies to the IPFS node API.
type Uploader struct {
	logger *logger.Logger

	apiURL        string
	gateway       string
	publicGateway string
	client        *http.Client
}

// NewUploader creates an Uploader from the IPFS configuration.
func NewUploader(logger *logger.Logger, cfg *config.Config) *Uploader {
	return &Uploader{
		logger:        logger,
		apiURL:        cfg.IPFSAPIURL,
		gateway:       cfg.IPFSGateway,
		publicGateway: cfg.IPFSPublicGateway,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Upload pins the content of r under the given filename and returns the
// content hash together with local, public and gateway URLs.
func (u *Uploader) Upload(ctx context.Context, filename string, r io.Reader) (*models.UploadResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fileWriter, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(fileWriter, r); err != nil {
		return nil, fmt.Errorf("failed to copy file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.apiURL, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request to IPFS: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("IPFS API returned status %d: %s", resp.StatusCode, string(body))
	}

	var nodeResp nodeResponse
	if err := json.Unmarshal(body, &nodeResp); err != nil {
		return nil, fmt.Errorf("failed to parse IPFS response: %w", err)
	}
	if nodeResp.Hash == "" {
		return nil, fmt.Errorf("IPFS response missing hash")
	}

	u.logger.Debug("File pinned ", "name ", filename, " hash ", nodeResp.Hash)
	return &models.UploadResult{
		Hash:       nodeResp.Hash,
		Size:       nodeResp.Size,
		LocalURL:   u.gateway + nodeResp.Hash,
		PublicURL:  u.publicGateway + nodeResp.Hash,
		GatewayURL: u.gateway + nodeResp.Hash,
	}, nil
}

// UploadAsset pins a local file by path. Used for the fixed badge
// asset minted with each habit.
func (u *Uploader) UploadAsset(ctx context.Context, path string) (*models.UploadResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open asset %s: %w", path, err)
	}
	defer file.Close()

	return u.Upload(ctx, filepath.Base(path), file)
}

// URLs builds the gateway URL set for an already-pinned hash. No
// network call is made; the gateways resolve the hash on access.
func (u *Uploader) URLs(hash string) *models.UploadResult {
	return &models.UploadResult{
		Hash:       hash,
		LocalURL:   u.gateway + hash,
		PublicURL:  u.publicGateway + hash,
		GatewayURL: u.gateway + hash,
	}
}

// Fetch streams a pinned file back from the local gateway. An unknown
// hash yields ErrFileNotFound; the caller owns the returned body.
func (u *Uploader) Fetch(ctx context.Context, hash string) (string, io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.gateway+hash, nil)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("failed to retrieve file from IPFS: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return "", nil, models.ErrFileNotFound
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return contentType, resp.Body, nil
}

// Healthy reports whether the IPFS node answers its version endpoint.
func (u *Uploader) Healthy(ctx context.Context) bool {
	versionURL := strings.TrimSuffix(u.apiURL, "/add") + "/version"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, versionURL, nil)
	if err != nil {
		return false
	}
	resp, err := u.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
