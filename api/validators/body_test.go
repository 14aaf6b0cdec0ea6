package validators

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/quotedesk/quotedesk-backend/pkg/errors"
)

type samplePayload struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count" validate:"min=1"`
}

func decodeRequest(t *testing.T, body string, dst any) error {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	return DecodeJSONBody(req, dst)
}

func TestDecodeJSONBodyHappyPath(t *testing.T) {
	t.Parallel()

	var payload samplePayload
	if err := decodeRequest(t, `{"name":"widget","count":3}`, &payload); err != nil {
		t.Fatalf("DecodeJSONBody: %v", err)
	}
	if payload.Name != "widget" || payload.Count != 3 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	var payload samplePayload
	err := decodeRequest(t, `{"name":"widget","count":3,"colour":"red"}`, &payload)
	if err == nil {
		t.Fatalf("expected unknown-field error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestDecodeJSONBodyRejectsEmptyBody(t *testing.T) {
	t.Parallel()

	var payload samplePayload
	err := decodeRequest(t, "", &payload)
	if err == nil {
		t.Fatalf("expected error for empty body")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Message() != "request body is required" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestDecodeJSONBodyReportsFieldFailures(t *testing.T) {
	t.Parallel()

	var payload samplePayload
	err := decodeRequest(t, `{"count":0}`, &payload)
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected details map, got %T", typed.Details())
	}
	if details["name"] != "is required" {
		t.Fatalf("unexpected name detail %q", details["name"])
	}
	if details["count"] != "must be at least 1" {
		t.Fatalf("unexpected count detail %q", details["count"])
	}
}

func TestDecodeJSONBodyRejectsTrailingData(t *testing.T) {
	t.Parallel()

	var payload samplePayload
	err := decodeRequest(t, `{"name":"a","count":1}{"name":"b"}`, &payload)
	if err == nil {
		t.Fatalf("expected error for trailing JSON")
	}
}
