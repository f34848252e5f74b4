package entity

// AnswerSource tags where the answer text came from.
type AnswerSource string

const (
	// SourceRAG - the completion was grounded in retrieved document chunks
	SourceRAG AnswerSource = "rag"
	// SourceGeneral - no chunks were retrieved, the model answered from general knowledge
	SourceGeneral AnswerSource = "general"
	// SourceFallback - neither retrieval nor generation was confident, canned reply
	SourceFallback AnswerSource = "fallback"
)

// Answer is the orchestrator result for a single question.
type Answer struct {
	Text   string
	Source AnswerSource
}

// Message roles for the completion client.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// ChatMessage is one turn of the prompt sent to the completion client.
type ChatMessage struct {
	Role    MessageRole
	Content string
}

// ChunkPayload is the payload stored next to every vector.
type ChunkPayload struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// VectorPoint is a single (id, vector, payload) entry owned by the vector store.
// IDs are generated once at index time and never reused.
type VectorPoint struct {
	ID      string       `json:"id"`
	Vector  []float64    `json:"vector"`
	Payload ChunkPayload `json:"payload"`
}

// SearchHit is one ranked result of a similarity search.
type SearchHit struct {
	Payload ChunkPayload `json:"payload"`
	Score   float64      `json:"score"`
}

// FileData is an uploaded file held in memory during ingestion.
type FileData struct {
	Filename string
	Content  []byte
}

// TranscriptFormat selects the rendering of a session transcript.
type TranscriptFormat string

const (
	FormatMarkdown TranscriptFormat = "md"
	FormatDOCX     TranscriptFormat = "docx"
	FormatPDF      TranscriptFormat = "pdf"
)

// IsValid checks if the format is supported.
func (f TranscriptFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatDOCX, FormatPDF:
		return true
	}
	return false
}
