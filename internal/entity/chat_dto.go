package entity

// ChatRequest is the POST /chat body.
type ChatRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse carries the classified answer back to the caller.
// SessionID echoes the request id, or a freshly generated one when
// the caller started a new conversation.
type ChatResponse struct {
	Answer    string `json:"answer"`
	Source    string `json:"source"`
	SessionID string `json:"session_id"`
}

// UploadedFileResult reports the outcome of indexing a single file.
type UploadedFileResult struct {
	Filename string `json:"filename"`
	Chunks   int    `json:"chunks"`
	Error    string `json:"error,omitempty"`
}

// UploadResponse summarises a multi-file ingestion.
type UploadResponse struct {
	Message    string               `json:"message"`
	FileCount  int                  `json:"file_count"`
	ChunkCount int                  `json:"chunk_count"`
	Files      []UploadedFileResult `json:"files"`
}
