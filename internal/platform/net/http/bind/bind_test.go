package bind

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "spamguard/internal/platform/errors"
)

// shared payload for many tests
type payload struct {
	Name string `json:"name" validate:"required,min=2"`
	Age  int    `json:"age" validate:"min=1"`
}

type item struct {
	Content string `json:"content" validate:"required"`
}

type batch struct {
	Items []item `json:"items" validate:"required,min=1,max=2,dive"`
}

func TestParseJSON_Success(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Alice","age":3}`))
	got, err := ParseJSON[payload](req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Alice" || got.Age != 3 {
		t.Fatalf("got %+v", got)
	}
}

func TestParseJSON_EmptyBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", http.NoBody)
	_, err := ParseJSON[payload](req)
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error code, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{`))
	_, err := ParseJSON[payload](req)
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error code, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestParseJSON_UnknownField(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Al","age":3,"boom":1}`))
	_, err := ParseJSON[payload](req) // DisallowUnknown default true
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error for unknown field, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestParseJSON_DisallowUnknownFalse_OK(t *testing.T) {
	opts := JSONOptions{DisallowUnknown: false}
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Al","age":3,"extra":"ok"}`))
	got, err := ParseJSON[payload](req, opts)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if got.Name != "Al" || got.Age != 3 {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

// Forces trailing-data branch via seam
func TestParseJSON_TrailingData_Seam(t *testing.T) {
	orig := jsonMore
	jsonMore = func(_ *json.Decoder) bool { return true }
	defer func() { jsonMore = orig }()

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Al","age":3}`))
	_, err := ParseJSON[payload](req)
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error for trailing data, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestParseJSON_ValidationError_CarriesField(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"A","age":3}`))
	_, err := ParseJSON[payload](req)
	e, ok := perr.As(err)
	if !ok || e.Code() != perr.ErrorCodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if e.Field() != "name" || e.Message() != "name must be at least 2" {
		t.Fatalf("field/message = %q/%q", e.Field(), e.Message())
	}
}

func TestParseJSON_DiveFieldPath(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"items":[{"content":"ok"},{"content":""}]}`))
	_, err := ParseJSON[batch](req)
	e, ok := perr.As(err)
	if !ok || e.Field() != "items[1].content" {
		t.Fatalf("expected items[1].content, got %v", err)
	}
}

func TestParseJSON_SliceBounds(t *testing.T) {
	for _, body := range []string{
		`{"items":[]}`,
		`{"items":[{"content":"a"},{"content":"b"},{"content":"c"}]}`,
	} {
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))
		_, err := ParseJSON[batch](req)
		if perr.CodeOf(err) != perr.ErrorCodeValidation {
			t.Fatalf("%s: expected validation error, got %v", body, err)
		}
	}
}

func TestParseJSON_NoLimit(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Bob","age":2}`))
	if _, err := ParseJSON[payload](req, JSONOptions{MaxBytes: 0}); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
}

func TestParseJSON_ExactlyAtLimit(t *testing.T) {
	body := `{"name":"Bob","age":2}`
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	if _, err := ParseJSON[payload](req, JSONOptions{MaxBytes: int64(len(body))}); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
}

func TestParseJSON_MaxBytes_Fail(t *testing.T) {
	opts := JSONOptions{MaxBytes: 5, DisallowUnknown: true}
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Alice","age":3}`))
	_, err := ParseJSON[payload](req, opts)
	if perr.CodeOf(err) != perr.ErrorCodeJSON || !strings.Contains(err.Error(), "exceeds 5 bytes") {
		t.Fatalf("expected size limit error, got %v (%v)", perr.CodeOf(err), err)
	}
}

// Triggers InvalidValidationError in validator.Struct
func TestParseJSON_InvalidValidationError_Path(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`5`))
	_, err := ParseJSON[int](req) // non-struct validation
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON-coded error, got %v (%v)", perr.CodeOf(err), err)
	}
}

// json:"foo,omitempty", json:"-", and no json tag
func TestTagNameFunc_JsonTagNameUsed(t *testing.T) {
	type s struct {
		Val int `json:"foo,omitempty" validate:"min=1"`
	}
	err := Get().Validator.Struct(s{Val: 0})
	field, msg := ValidationFieldAndMessage(err)
	if field != "foo" { // trimmed before comma
		t.Fatalf("expected field=foo, got %s", field)
	}
	if !strings.Contains(msg, "at least") {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestTagNameFunc_DashUsesFieldName(t *testing.T) {
	type s struct {
		Secret int `json:"-" validate:"min=1"`
	}
	field, _ := ValidationFieldAndMessage(Get().Validator.Struct(s{Secret: 0}))
	if field != "Secret" {
		t.Fatalf("expected field=Secret, got %s", field)
	}
}

func TestTagNameFunc_NoTagUsesFieldName(t *testing.T) {
	type s struct {
		Plain int `validate:"min=1"`
	}
	field, _ := ValidationFieldAndMessage(Get().Validator.Struct(s{Plain: 0}))
	if field != "Plain" {
		t.Fatalf("expected field=Plain, got %s", field)
	}
}

func TestValidationFieldAndMessage_GenericError(t *testing.T) {
	field, msg := ValidationFieldAndMessage(errors.New("boom"))
	if field != "" || msg != "boom" {
		t.Fatalf("expected generic passthrough, got field=%q msg=%q", field, msg)
	}
	if f, m := ValidationFieldAndMessage(nil); f != "" || m != "" {
		t.Fatalf("nil should be empty, got %q %q", f, m)
	}
}

func TestTranslations_Max(t *testing.T) {
	type s struct {
		Count int `json:"count" validate:"max=5"`
	}
	_, msg := ValidationFieldAndMessage(Get().Validator.Struct(s{Count: 6}))
	if msg != "count must be at most 5" {
		t.Fatalf("unexpected max message: %q", msg)
	}
}

func TestTranslations_OneOf(t *testing.T) {
	type s struct {
		Format string `json:"format" validate:"omitempty,oneof=text html"`
	}
	if err := Get().Validator.Struct(s{}); err != nil {
		t.Fatalf("empty format should pass: %v", err)
	}
	field, msg := ValidationFieldAndMessage(Get().Validator.Struct(s{Format: "pdf"}))
	if field != "format" || !strings.Contains(msg, "text html") {
		t.Fatalf("unexpected oneof result: %q %q", field, msg)
	}
}
