package entities

// ErrorResponse is the standard error payload returned by the API
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// CacheWriteResponse acknowledges an image cache write attempt
type CacheWriteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
