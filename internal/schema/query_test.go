package schema

import (
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/me/botdash/pkg/model"
)

func mustQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	q, err := url.ParseQuery(raw)
	if err != nil {
		t.Fatalf("ParseQuery(%q): %v", raw, err)
	}
	return q
}

func TestParseQuery_EmptyIsFirstPageUnfiltered(t *testing.T) {
	res := ParseQuery[BotFilters](url.Values{})
	if !res.OK() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if !reflect.DeepEqual(res.Value, BotFilters{}) {
		t.Errorf("Value = %+v, want zero filters", res.Value)
	}
}

func TestParseQuery_BotFilters(t *testing.T) {
	q := mustQuery(t, "cursor=abc123&status=completed&status=failed&meetingPlatform=zoom,teams&createdAfter=2026-01-01&createdBefore=2026-02-01T10:30:00%2B02:00&limit=25&botUuid=6f1c2e8a-3b7d-4f0e-9a51-2c4d6e8f0a1b&unknown=x")
	res := ParseQuery[BotFilters](q)
	if !res.OK() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	f := res.Value

	if f.Cursor != "abc123" {
		t.Errorf("Cursor = %q", f.Cursor)
	}
	if f.Limit == nil || *f.Limit != 25 {
		t.Errorf("Limit = %v", f.Limit)
	}
	wantStatus := []model.BotStatus{model.BotStatusCompleted, model.BotStatusFailed}
	if !reflect.DeepEqual(f.Status, wantStatus) {
		t.Errorf("Status = %v, want %v", f.Status, wantStatus)
	}
	wantPlatforms := []model.MeetingPlatform{model.PlatformZoom, model.PlatformTeams}
	if !reflect.DeepEqual(f.MeetingPlatform, wantPlatforms) {
		t.Errorf("MeetingPlatform = %v, want %v", f.MeetingPlatform, wantPlatforms)
	}
	if f.CreatedAfter == nil || !f.CreatedAfter.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("CreatedAfter = %v", f.CreatedAfter)
	}
	if f.CreatedBefore == nil || !f.CreatedBefore.Equal(time.Date(2026, 2, 1, 8, 30, 0, 0, time.UTC)) {
		t.Errorf("CreatedBefore = %v", f.CreatedBefore)
	}
	if f.CreatedBefore.Location() != time.UTC {
		t.Errorf("CreatedBefore not normalized to UTC: %v", f.CreatedBefore.Location())
	}
}

func TestParseQuery_EnumListNormalization(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []model.MeetingPlatform
	}{
		{"single value", "meetingPlatform=zoom", []model.MeetingPlatform{"zoom"}},
		{"repeated keys", "meetingPlatform=teams&meetingPlatform=zoom", []model.MeetingPlatform{"teams", "zoom"}},
		{"comma joined", "meetingPlatform=google_meet,zoom", []model.MeetingPlatform{"google_meet", "zoom"}},
		{"duplicates dropped keeping first order", "meetingPlatform=zoom&meetingPlatform=teams,zoom", []model.MeetingPlatform{"zoom", "teams"}},
		{"empty items ignored", "meetingPlatform=,zoom,", []model.MeetingPlatform{"zoom"}},
		{"all empty is absent", "meetingPlatform=", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseQuery[BotFilters](mustQuery(t, tt.query))
			if !res.OK() {
				t.Fatalf("unexpected errors: %v", res.Errors)
			}
			if !reflect.DeepEqual(res.Value.MeetingPlatform, tt.want) {
				t.Errorf("MeetingPlatform = %#v, want %#v", res.Value.MeetingPlatform, tt.want)
			}
		})
	}
}

func TestParseQuery_Failures(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantField string
	}{
		{"repeated cursor", "cursor=&cursor=abc", "cursor"},
		{"repeated cursor values", "cursor=a&cursor=b", "cursor"},
		{"unknown status", "status=exploded", "status[0]"},
		{"unknown platform in list", "meetingPlatform=zoom,webex", "meetingPlatform[1]"},
		{"non numeric limit", "limit=fifty", "limit"},
		{"limit too large", "limit=1000", "limit"},
		{"limit zero", "limit=0", "limit"},
		{"limit negative", "limit=-5", "limit"},
		{"bad date", "createdAfter=yesterday", "createdAfter"},
		{"bad uuid", "botUuid=not-a-uuid", "botUuid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseQuery[BotFilters](mustQuery(t, tt.query))
			if res.OK() {
				t.Fatalf("expected failure, got %+v", res.Value)
			}
			if !reflect.DeepEqual(res.Value, BotFilters{}) {
				t.Errorf("failed result leaked a partial value: %+v", res.Value)
			}
			found := false
			for _, fe := range res.Errors {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("errors %v do not mention field %q", res.Errors, tt.wantField)
			}
			if res.Err() == nil {
				t.Error("Err() = nil for failed result")
			}
		})
	}
}

func TestParseQuery_EmptyScalarIsAbsent(t *testing.T) {
	res := ParseQuery[BotFilters](mustQuery(t, "cursor=&botUuid=&limit="))
	if !res.OK() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if res.Value.Cursor != "" || res.Value.BotUUID != "" || res.Value.Limit != nil {
		t.Errorf("Value = %+v, want empty", res.Value)
	}
}

func TestParseQuery_AbsentRedirectToStaysEmpty(t *testing.T) {
	for _, raw := range []string{"", "redirectTo=", "error=bad"} {
		res := ParseQuery[SignInPage](mustQuery(t, raw))
		if !res.OK() {
			t.Fatalf("%q: unexpected errors: %v", raw, res.Errors)
		}
		if res.Value.RedirectTo != "" {
			t.Errorf("%q: RedirectTo = %q, want empty so the caller picks the landing route", raw, res.Value.RedirectTo)
		}
	}
}

func TestParseQuery_RedirectToMustBeLocal(t *testing.T) {
	tests := []struct {
		target string
		ok     bool
	}{
		{"/bots", true},
		{"/admin/teams/7?tab=members", true},
		{"//evil.example.com", false},
		{"https://evil.example.com/", false},
		{"/\\evil.example.com", false},
		{"bots", false},
	}
	for _, tt := range tests {
		q := url.Values{"redirectTo": {tt.target}}
		res := ParseQuery[SignInPage](q)
		if res.OK() != tt.ok {
			t.Errorf("redirectTo=%q: OK() = %v, want %v (errors %v)", tt.target, res.OK(), tt.ok, res.Errors)
		}
	}
}

func TestParseQuery_EmbeddedFilters(t *testing.T) {
	res := ParseQuery[AdminBotFilters](mustQuery(t, "teamId=7&status=queued&cursor=c1"))
	if !res.OK() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if res.Value.TeamID == nil || *res.Value.TeamID != 7 || res.Value.Cursor != "c1" || len(res.Value.Status) != 1 {
		t.Errorf("Value = %+v", res.Value)
	}

	res = ParseQuery[AdminBotFilters](mustQuery(t, "teamId=-3"))
	if res.OK() {
		t.Error("expected negative teamId to fail")
	}
}

// parse(serialize(parse(q))) == parse(q) for every valid query.
func TestParseQuery_Idempotent(t *testing.T) {
	queries := []string{
		"",
		"cursor=abc123",
		"cursor=abc123&limit=50",
		"status=completed&status=failed&meetingPlatform=zoom,teams",
		"meetingPlatform=teams&meetingPlatform=zoom&meetingPlatform=teams",
		"createdAfter=2026-01-01&createdBefore=2026-02-01T10:30:00Z",
		"createdBefore=2026-02-01T10:30:00.123456789%2B05:30",
		"botUuid=6f1c2e8a-3b7d-4f0e-9a51-2c4d6e8f0a1b&cursor=&limit=",
	}
	for _, raw := range queries {
		t.Run(raw, func(t *testing.T) {
			first := ParseQuery[BotFilters](mustQuery(t, raw))
			if !first.OK() {
				t.Fatalf("first parse failed: %v", first.Errors)
			}
			second := ParseQuery[BotFilters](EncodeQuery(first.Value))
			if !second.OK() {
				t.Fatalf("second parse failed: %v (encoded %q)", second.Errors, EncodeQuery(first.Value).Encode())
			}
			if !reflect.DeepEqual(first.Value, second.Value) {
				t.Errorf("not idempotent:\n first  %+v\n second %+v", first.Value, second.Value)
			}
		})
	}
}

func TestParseQuery_SignInPageRoundTrip(t *testing.T) {
	tests := []struct {
		raw  string
		want url.Values
	}{
		{"error=bad", url.Values{"error": {"bad"}}},
		{"redirectTo=%2Fteam&error=bad", url.Values{"error": {"bad"}, "redirectTo": {"/team"}}},
	}
	for _, tt := range tests {
		first := ParseQuery[SignInPage](mustQuery(t, tt.raw))
		if !first.OK() {
			t.Fatalf("%q: %v", tt.raw, first.Errors)
		}
		encoded := EncodeQuery(first.Value)
		if !reflect.DeepEqual(encoded, tt.want) {
			t.Errorf("%q: EncodeQuery = %v, want %v", tt.raw, encoded, tt.want)
		}
		if second := ParseQuery[SignInPage](encoded); !reflect.DeepEqual(first.Value, second.Value) {
			t.Errorf("%q: first %+v, second %+v", tt.raw, first.Value, second.Value)
		}
	}
}

func TestParseQuery_DecodeErrorsNameTheKey(t *testing.T) {
	tests := []struct {
		raw  string
		path string
	}{
		{"limit=ten", "limit"},
		{"createdAfter=01/02/2026", "createdAfter"},
		{"teamId=x", "teamId"},
	}
	for _, tt := range tests {
		res := ParseQuery[AdminBotFilters](mustQuery(t, tt.raw))
		if res.OK() {
			t.Errorf("%q: expected failure", tt.raw)
			continue
		}
		if len(res.Errors) != 1 || res.Errors[0].Path != tt.path {
			t.Errorf("%q: errors = %+v, want one on %s", tt.raw, res.Errors, tt.path)
		}
		if !reflect.DeepEqual(res.Value, AdminBotFilters{}) {
			t.Errorf("%q: Value = %+v, want zero on failure", tt.raw, res.Value)
		}
	}
}

func TestEncodeQuery(t *testing.T) {
	after := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	before := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	f := BotFilters{
		Page:            Page{Cursor: "abc"},
		Status:          []model.BotStatus{"completed", "failed"},
		MeetingPlatform: []model.MeetingPlatform{"zoom"},
		CreatedAfter:    &after,
		CreatedBefore:   &before,
	}
	q := EncodeQuery(f)

	want := url.Values{
		"cursor":          {"abc"},
		"status":          {"completed", "failed"},
		"meetingPlatform": {"zoom"},
		"createdAfter":    {"2026-01-01"},
		"createdBefore":   {"2026-01-02T15:04:05Z"},
	}
	if !reflect.DeepEqual(q, want) {
		t.Errorf("EncodeQuery = %v, want %v", q, want)
	}

	if got := EncodeQuery(BotFilters{}); len(got) != 0 {
		t.Errorf("EncodeQuery(zero) = %v, want empty", got)
	}
	if got := EncodeQuery(nil); len(got) != 0 {
		t.Errorf("EncodeQuery(nil) = %v, want empty", got)
	}
}
