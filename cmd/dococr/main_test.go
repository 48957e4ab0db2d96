package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestRunWithoutDocumentID(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(nil, &stdout, &stderr)

	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	want := "{\"success\": false, \"error\": \"No document ID provided\"}\n"
	if stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}
}

func TestRunMissingDocument(t *testing.T) {
	t.Setenv("DOCUMENT_DIR", t.TempDir())
	t.Setenv("LOG_LEVEL", "debug")
	var stdout, stderr bytes.Buffer

	code := run([]string{"abc123"}, &stdout, &stderr)

	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	out := stdout.String()
	if strings.Count(out, "\n") != 1 || !strings.HasSuffix(out, "\n") {
		t.Fatalf("expected exactly one JSON line, got %q", out)
	}

	var res struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("stdout is not JSON: %v", err)
	}
	if res.Success || !strings.Contains(res.Error, "abc123.pdf") {
		t.Errorf("unexpected result %+v", res)
	}
	if !strings.Contains(stderr.String(), "run_id=") {
		t.Errorf("expected logs on stderr with a run id, got %q", stderr.String())
	}
}

func TestRunInvalidConfiguration(t *testing.T) {
	t.Setenv("OCR_CONCURRENCY", "0")
	var stdout, stderr bytes.Buffer

	code := run([]string{"abc123"}, &stdout, &stderr)

	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if !strings.HasPrefix(stdout.String(), `{"success": false, "error": "configuration validation failed: OCR_CONCURRENCY`) {
		t.Errorf("unexpected stdout %q", stdout.String())
	}
}

func TestRunIgnoresExtraArguments(t *testing.T) {
	t.Setenv("DOCUMENT_DIR", t.TempDir())
	var stdout, stderr bytes.Buffer

	run([]string{"abc123", "extra"}, &stdout, &stderr)

	if !strings.Contains(stdout.String(), "abc123.pdf") {
		t.Errorf("first argument should be the document id, got %q", stdout.String())
	}
}
