package dto

type CreateStoryRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateStoryRequest carries the admin-editable fields. Nil means leave
// the field untouched.
type UpdateStoryRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}
