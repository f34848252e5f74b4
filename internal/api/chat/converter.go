package chat

import "github.com/akorchak/docchat-backend/internal/entity"

// toChatResponse converts an Answer entity to the response DTO
func toChatResponse(answer *entity.Answer, sessionID string) *entity.ChatResponse {
	return &entity.ChatResponse{
		Answer:    answer.Text,
		Source:    string(answer.Source),
		SessionID: sessionID,
	}
}
