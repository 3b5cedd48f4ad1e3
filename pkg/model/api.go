package model

// ListResponse is the cursor-paginated list envelope of the backend.
// Cursor is the token of the next page and PrevCursor the token of the
// previous one; nil means there is no page in that direction.
type ListResponse[T any] struct {
	Data       []T     `json:"data" validate:"required,dive"`
	Cursor     *string `json:"cursor"`
	PrevCursor *string `json:"prev_cursor"`
}

// HasNext reports whether a next page exists.
func (l ListResponse[T]) HasNext() bool {
	return l.Cursor != nil && *l.Cursor != ""
}

// HasPrev reports whether a previous page exists.
func (l ListResponse[T]) HasPrev() bool {
	return l.PrevCursor != nil && *l.PrevCursor != ""
}

// NextCursor returns the next-page token, or "" when there is none.
func (l ListResponse[T]) NextCursor() string {
	if l.Cursor == nil {
		return ""
	}
	return *l.Cursor
}

// PreviousCursor returns the previous-page token, or "" when there is none.
func (l ListResponse[T]) PreviousCursor() string {
	if l.PrevCursor == nil {
		return ""
	}
	return *l.PrevCursor
}

// DetailResponse is the single-entity envelope of the backend.
type DetailResponse[T any] struct {
	Success bool `json:"success" validate:"eq=true"`
	Data    T    `json:"data" validate:"required"`
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
