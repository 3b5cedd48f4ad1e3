package model

import "testing"

func TestListResponse_Cursors(t *testing.T) {
	tests := []struct {
		name     string
		resp     ListResponse[Bot]
		wantNext bool
		wantPrev bool
	}{
		{"first and only page", ListResponse[Bot]{}, false, false},
		{"first page of many", ListResponse[Bot]{Cursor: StringPtr("def456")}, true, false},
		{"middle page", ListResponse[Bot]{Cursor: StringPtr("def456"), PrevCursor: StringPtr("abc123")}, true, true},
		{"last page", ListResponse[Bot]{PrevCursor: StringPtr("abc123")}, false, true},
		{"empty string cursor", ListResponse[Bot]{Cursor: StringPtr("")}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resp.HasNext(); got != tt.wantNext {
				t.Errorf("HasNext() = %v, want %v", got, tt.wantNext)
			}
			if got := tt.resp.HasPrev(); got != tt.wantPrev {
				t.Errorf("HasPrev() = %v, want %v", got, tt.wantPrev)
			}
		})
	}
}

func TestListResponse_CursorValues(t *testing.T) {
	resp := ListResponse[Bot]{Cursor: StringPtr("def456"), PrevCursor: StringPtr("abc123")}
	if got := resp.NextCursor(); got != "def456" {
		t.Errorf("NextCursor() = %q, want def456", got)
	}
	if got := resp.PreviousCursor(); got != "abc123" {
		t.Errorf("PreviousCursor() = %q, want abc123", got)
	}

	var empty ListResponse[Bot]
	if empty.NextCursor() != "" || empty.PreviousCursor() != "" {
		t.Error("expected empty cursors for zero response")
	}
}
