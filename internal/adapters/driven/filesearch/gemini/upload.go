package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driven"
	"github.com/Sidharth1743/File-Search/internal/logger"
)

// Resumable upload protocol headers.
const (
	uploadProtocolHeader      = "X-Goog-Upload-Protocol"
	uploadCommandHeader       = "X-Goog-Upload-Command"
	uploadOffsetHeader        = "X-Goog-Upload-Offset"
	uploadContentLengthHeader = "X-Goog-Upload-Header-Content-Length"
	uploadContentTypeHeader   = "X-Goog-Upload-Header-Content-Type"
	uploadURLHeader           = "X-Goog-Upload-URL"
)

// Upload submits one file for ingestion and returns the handle of the
// asynchronous remote job. The API uses a two-step resumable protocol:
// a start call carrying the document configuration answers with an
// upload URL, and sending the bytes there finalises the submission.
func (c *Client) Upload(ctx context.Context, req driven.UploadRequest) (domain.Operation, error) {
	data, err := os.ReadFile(req.FilePath)
	if err != nil {
		return domain.Operation{}, fmt.Errorf("read %s: %w", req.FilePath, err)
	}

	start := uploadStartRequest{
		DisplayName:    req.DisplayName,
		CustomMetadata: toWireMetadata(req.Metadata),
		ChunkingConfig: toWireChunking(req.Chunking),
	}

	uploadURL, err := c.startUpload(ctx, req.StoreName, start, len(data), mimeType(req.FilePath))
	if err != nil {
		return domain.Operation{}, err
	}

	op, err := c.finalizeUpload(ctx, uploadURL, data)
	if err != nil {
		return domain.Operation{}, err
	}

	logger.Debug("[gemini] upload of %s started operation %s", req.DisplayName, op.Name)
	return op, nil
}

// startUpload performs the handshake and returns the session upload URL.
func (c *Client) startUpload(ctx context.Context, storeName string, start uploadStartRequest, size int, contentType string) (string, error) {
	payload, err := json.Marshal(start)
	if err != nil {
		return "", fmt.Errorf("encode upload config: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	requestURL := fmt.Sprintf("%s/upload/v1beta/%s:uploadToFileSearchStore", c.baseURL, storeName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(uploadProtocolHeader, "resumable")
	req.Header.Set(uploadCommandHeader, "start")
	req.Header.Set(uploadContentLengthHeader, strconv.Itoa(size))
	req.Header.Set(uploadContentTypeHeader, contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("start upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("start upload: %w", decodeAPIError(resp.StatusCode, data))
	}

	uploadURL := resp.Header.Get(uploadURLHeader)
	if uploadURL == "" {
		return "", ErrNoUploadURL
	}
	return uploadURL, nil
}

// finalizeUpload sends the file bytes to the session URL and decodes the
// operation the API answers with.
func (c *Client) finalizeUpload(ctx context.Context, uploadURL string, data []byte) (domain.Operation, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.Operation{}, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return domain.Operation{}, fmt.Errorf("build finalize request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set(uploadOffsetHeader, "0")
	req.Header.Set(uploadCommandHeader, "upload, finalize")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Operation{}, fmt.Errorf("finalize upload: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Operation{}, fmt.Errorf("read finalize response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Operation{}, fmt.Errorf("finalize upload: %w", decodeAPIError(resp.StatusCode, body))
	}

	var op operationResource
	if err := json.Unmarshal(body, &op); err != nil {
		return domain.Operation{}, fmt.Errorf("decode operation: %w", err)
	}
	return op.toOperation(), nil
}

// GetOperation re-fetches an operation by its handle.
func (c *Client) GetOperation(ctx context.Context, name string) (domain.Operation, error) {
	var op operationResource
	if err := c.doJSON(ctx, http.MethodGet, "/v1beta/"+name, nil, nil, &op); err != nil {
		return domain.Operation{}, fmt.Errorf("get operation %s: %w", name, err)
	}
	return op.toOperation(), nil
}

// mimeType guesses the upload content type from the file extension.
func mimeType(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return "application/octet-stream"
}
