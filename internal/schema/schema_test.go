package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/me/botdash/pkg/model"
)

func TestPositiveInt(t *testing.T) {
	tests := []struct {
		slug string
		want int
		ok   bool
	}{
		{"1", 1, true},
		{"42", 42, true},
		{"9000", 9000, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"007", 0, false},
		{"4.2", 0, false},
		{"1e3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{" 5", 0, false},
		{"99999999999999999999999", 0, false},
	}
	for _, tt := range tests {
		res := PositiveInt(tt.slug)
		if res.OK() != tt.ok {
			t.Errorf("PositiveInt(%q).OK() = %v, want %v", tt.slug, res.OK(), tt.ok)
			continue
		}
		if res.Value != tt.want {
			t.Errorf("PositiveInt(%q) = %d, want %d", tt.slug, res.Value, tt.want)
		}
	}
}

func TestUUID(t *testing.T) {
	tests := []struct {
		slug string
		want string
		ok   bool
	}{
		{"6f1c2e8a-3b7d-4f0e-9a51-2c4d6e8f0a1b", "6f1c2e8a-3b7d-4f0e-9a51-2c4d6e8f0a1b", true},
		{"6F1C2E8A-3B7D-4F0E-9A51-2C4D6E8F0A1B", "6f1c2e8a-3b7d-4f0e-9a51-2c4d6e8f0a1b", true},
		{"6f1c2e8a3b7d4f0e9a512c4d6e8f0a1b", "", false},
		{"{6f1c2e8a-3b7d-4f0e-9a51-2c4d6e8f0a1b}", "", false},
		{"urn:uuid:6f1c2e8a-3b7d-4f0e-9a51-2c4d6e8f0a1b", "", false},
		{"6f1c2e8a-3b7d-4f0e-9a51-2c4d6e8f0a1z", "", false},
		{"not-a-uuid", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		res := UUID(tt.slug)
		if res.OK() != tt.ok {
			t.Errorf("UUID(%q).OK() = %v, want %v", tt.slug, res.OK(), tt.ok)
			continue
		}
		if res.Value != tt.want {
			t.Errorf("UUID(%q) = %q, want %q", tt.slug, res.Value, tt.want)
		}
	}
}

func TestValidate_ListResponse(t *testing.T) {
	valid := `{
		"data": [{
			"uuid": "6f1c2e8a-3b7d-4f0e-9a51-2c4d6e8f0a1b",
			"bot_name": "Standup",
			"meeting_url": "https://zoom.us/j/123",
			"meeting_platform": "zoom",
			"status": "completed",
			"created_at": "2026-01-01T10:00:00Z"
		}],
		"cursor": "next",
		"prev_cursor": null
	}`
	var resp model.ListResponse[model.Bot]
	if err := json.Unmarshal([]byte(valid), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res := Validate(resp); !res.OK() {
		t.Fatalf("valid response rejected: %v", res.Errors)
	}

	resp.Data[0].Status = "exploded"
	res := Validate(resp)
	if res.OK() {
		t.Fatal("expected invalid status to fail")
	}
	if got := res.Errors[0].Path; got != "data[0].status" {
		t.Errorf("Path = %q, want data[0].status", got)
	}
}

func TestValidate_MissingRequiredField(t *testing.T) {
	body := `{"data": [{"bot_name": "Standup", "meeting_platform": "zoom", "status": "queued", "created_at": "2026-01-01T10:00:00Z"}]}`
	var resp model.ListResponse[model.Bot]
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	res := Validate(resp)
	if res.OK() {
		t.Fatal("expected missing uuid to fail")
	}
	if !strings.Contains(res.Err().Error(), "uuid") {
		t.Errorf("error %q does not name the uuid field", res.Err())
	}
}

func TestValidate_MissingData(t *testing.T) {
	var resp model.ListResponse[model.Bot]
	if err := json.Unmarshal([]byte(`{"cursor": null}`), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res := Validate(resp); res.OK() {
		t.Error("expected missing data array to fail")
	}
}

func TestValidate_NilPointer(t *testing.T) {
	var s *model.Session
	if res := Validate(s); !res.OK() {
		t.Errorf("nil session should be accepted, got %v", res.Errors)
	}
}

func TestError_Message(t *testing.T) {
	err := (&Error{Fields: []model.FieldError{
		{Field: "cursor", Path: "cursor", Message: "must be a single value"},
		{Message: "bad input"},
	}}).Error()
	want := "validation failed: cursor: must be a single value; bad input"
	if err != want {
		t.Errorf("Error() = %q, want %q", err, want)
	}
}
