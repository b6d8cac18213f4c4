package dto

// ErrorResponse is the uniform failure body. Raw driver errors are logged
// server-side, never echoed here.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func Error(msg string) ErrorResponse {
	return ErrorResponse{Success: false, Message: msg}
}

// Pagination describes one page of an offset-paginated listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
}

// CursorPagination describes one page of a cursor-paginated stream.
type CursorPagination struct {
	Limit      int     `json:"limit"`
	HasMore    bool    `json:"hasMore"`
	NextCursor *string `json:"nextCursor"`
}
