package asr

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

	"github.com/scrivenlabs/scriven/internal/config"
)

type httpRecognizer struct {
	endpoint string
	cfg      config.ASRConfig
	client   *http.Client
}

// NewHTTPRecognizer talks to a transcription sidecar over HTTP. The sidecar
// accepts a multipart upload on /transcribe and answers /health probes.
func NewHTTPRecognizer(cfg config.ASRConfig) (Recognizer, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("asr endpoint is empty")
	}
	return &httpRecognizer{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		cfg:      cfg,
		client:   &http.Client{Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond},
	}, nil
}

func (r *httpRecognizer) Transcribe(ctx context.Context, audioPath string) (Result, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return Result{}, fmt.Errorf("open audio: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return Result{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return Result{}, fmt.Errorf("copy audio into form: %w", err)
	}
	if r.cfg.Model != "" {
		if err := writer.WriteField("model", r.cfg.Model); err != nil {
			return Result{}, fmt.Errorf("write model field: %w", err)
		}
	}
	if r.cfg.Language != "" {
		if err := writer.WriteField("language", r.cfg.Language); err != nil {
			return Result{}, fmt.Errorf("write language field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return Result{}, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint+"/transcribe", &body)
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := r.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("asr request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return Result{}, fmt.Errorf("asr service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var out Result
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, fmt.Errorf("decode asr response: %w", err)
	}
	return out, nil
}

// Healthy reports whether the remote service answers its health probe.
func (r *httpRecognizer) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
