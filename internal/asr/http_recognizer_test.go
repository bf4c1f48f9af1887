package asr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/scrivenlabs/scriven/internal/config"
)

func writeTempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "take.wav")
	if err := os.WriteFile(path, []byte("RIFF-not-really-audio"), 0o644); err != nil {
		t.Fatalf("write temp audio: %v", err)
	}
	return path
}

func TestHTTPRecognizerTranscribe(t *testing.T) {
	var gotModel, gotLanguage, gotFilename string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcribe" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotModel = r.FormValue("model")
		gotLanguage = r.FormValue("language")
		if headers := r.MultipartForm.File["file"]; len(headers) == 1 {
			gotFilename = headers[0].Filename
		}
		json.NewEncoder(w).Encode(Result{
			Text:     "To sætninger i alt",
			Language: "da",
			Duration: 9.5,
			Segments: []Segment{
				{Start: 0, End: 4.1, Text: "To sætninger", AvgLogProb: score(-0.31)},
				{Start: 5.9, End: 9.5, Text: "i alt", AvgLogProb: score(-0.44)},
			},
		})
	}))
	defer server.Close()

	rec, err := NewHTTPRecognizer(config.ASRConfig{
		Mode:      "http",
		Endpoint:  server.URL,
		Model:     "large-v3",
		Language:  "da",
		TimeoutMS: 5000,
	})
	if err != nil {
		t.Fatalf("construct recognizer: %v", err)
	}

	res, err := rec.Transcribe(context.Background(), writeTempAudio(t))
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if res.Text != "To sætninger i alt" || len(res.Segments) != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Segments[1].AvgLogProb == nil || *res.Segments[1].AvgLogProb != -0.44 {
		t.Fatalf("segment score lost: %+v", res.Segments[1])
	}
	if gotModel != "large-v3" || gotLanguage != "da" {
		t.Fatalf("form fields = model %q language %q", gotModel, gotLanguage)
	}
	if gotFilename != "take.wav" {
		t.Fatalf("uploaded filename = %q", gotFilename)
	}
}

func TestHTTPRecognizerErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	rec, err := NewHTTPRecognizer(config.ASRConfig{Mode: "http", Endpoint: server.URL, TimeoutMS: 5000})
	if err != nil {
		t.Fatalf("construct recognizer: %v", err)
	}
	if _, err := rec.Transcribe(context.Background(), writeTempAudio(t)); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestHTTPRecognizerHealthProbe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	rec, err := NewHTTPRecognizer(config.ASRConfig{Mode: "http", Endpoint: server.URL, TimeoutMS: 5000})
	if err != nil {
		t.Fatalf("construct recognizer: %v", err)
	}
	probe, ok := rec.(interface{ Healthy(context.Context) bool })
	if !ok {
		t.Fatal("http recognizer should expose a health probe")
	}
	if !probe.Healthy(context.Background()) {
		t.Fatal("expected healthy probe against live server")
	}

	server.Close()
	if probe.Healthy(context.Background()) {
		t.Fatal("expected unhealthy probe after shutdown")
	}
}
