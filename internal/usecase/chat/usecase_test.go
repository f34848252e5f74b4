package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/akorchak/docchat-backend/internal/config"
	"github.com/akorchak/docchat-backend/internal/entity"
	"github.com/akorchak/docchat-backend/internal/pkg/fallback"
	"github.com/akorchak/docchat-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const englishFallback = "Sorry, I’m not sure yet. I’ll get back to you soon."

type stubEmbedder struct {
	calls int
	err   error
}

func (s *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float64, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	vectors := make([][]float64, len(texts))
	for i := range texts {
		vectors[i] = []float64{1, 2, 3}
	}
	return vectors, nil
}

type stubSearcher struct {
	hits  []entity.SearchHit
	calls int
	err   error
}

func (s *stubSearcher) Search(_ context.Context, _ []float64, _ int) ([]entity.SearchHit, error) {
	s.calls++
	return s.hits, s.err
}

type stubCompleter struct {
	reply    string
	err      error
	received [][]entity.ChatMessage
}

func (s *stubCompleter) Complete(_ context.Context, messages []entity.ChatMessage) (string, error) {
	s.received = append(s.received, messages)
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func testConfig() config.ChatConfig {
	return config.ChatConfig{
		ChunkMaxLength:    800,
		TopK:              5,
		HistoryLimit:      3,
		FallbackMinLength: 30,
		DefaultLanguage:   "en",
	}
}

func newTestUsecase(searcher *stubSearcher, completer *stubCompleter) (*Usecase, *repository.SessionMemory) {
	sessions := repository.NewSessionMemory(time.Minute)
	uc := NewUsecase(
		&stubEmbedder{},
		searcher,
		completer,
		sessions,
		fallback.NewSelector("en"),
		testConfig(),
		zap.NewNop(),
	)
	return uc, sessions
}

func TestAsk_EmptyQuestionRejectedBeforeExternalCalls(t *testing.T) {
	embedder := &stubEmbedder{}
	searcher := &stubSearcher{}
	completer := &stubCompleter{}
	sessions := repository.NewSessionMemory(time.Minute)
	uc := NewUsecase(embedder, searcher, completer, sessions, fallback.NewSelector("en"), testConfig(), zap.NewNop())

	_, err := uc.Ask(context.Background(), "s1", "   \t ")

	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrInvalidInput))
	assert.Zero(t, embedder.calls)
	assert.Zero(t, searcher.calls)
	assert.Empty(t, completer.received)
}

func TestAsk_RetrievalHitsClassifiedAsRAG(t *testing.T) {
	searcher := &stubSearcher{hits: []entity.SearchHit{
		{Payload: entity.ChunkPayload{Text: "The warranty period is two years.", Source: "manual.pdf"}, Score: 0.92},
	}}
	completer := &stubCompleter{reply: "According to the documentation, the warranty lasts two years."}
	uc, _ := newTestUsecase(searcher, completer)

	answer, err := uc.Ask(context.Background(), "s1", "How long is the warranty?")

	require.NoError(t, err)
	assert.Equal(t, entity.SourceRAG, answer.Source)
	assert.Equal(t, completer.reply, answer.Text)

	// The final user turn must carry the retrieved context and the question.
	messages := completer.received[0]
	final := messages[len(messages)-1]
	assert.Equal(t, entity.RoleUser, final.Role)
	assert.Contains(t, final.Content, "The warranty period is two years.")
	assert.Contains(t, final.Content, "How long is the warranty?")
}

func TestAsk_NoHitsLongCompletionIsGeneral(t *testing.T) {
	reply := strings.Repeat("Go is a statically typed language. ", 3)
	searcher := &stubSearcher{}
	completer := &stubCompleter{reply: reply}
	uc, _ := newTestUsecase(searcher, completer)

	answer, err := uc.Ask(context.Background(), "s1", "What is Go?")

	require.NoError(t, err)
	assert.Equal(t, entity.SourceGeneral, answer.Source)
	assert.Equal(t, strings.TrimSpace(reply), answer.Text)

	// Without hits the final turn is the bare question.
	messages := completer.received[0]
	final := messages[len(messages)-1]
	assert.Equal(t, "What is Go?", final.Content)
}

func TestAsk_NoHitsEmptyCompletionIsFallback(t *testing.T) {
	searcher := &stubSearcher{}
	completer := &stubCompleter{reply: ""}
	uc, _ := newTestUsecase(searcher, completer)

	answer, err := uc.Ask(context.Background(), "s1", "Can you check the internal pricing tables for me?")

	require.NoError(t, err)
	assert.Equal(t, entity.SourceFallback, answer.Source)
	assert.Equal(t, englishFallback, answer.Text)
}

func TestAsk_NoHitsShortCompletionIsFallback(t *testing.T) {
	searcher := &stubSearcher{}
	completer := &stubCompleter{reply: "No idea."}
	uc, _ := newTestUsecase(searcher, completer)

	answer, err := uc.Ask(context.Background(), "s1", "What does the contract say about renewals?")

	require.NoError(t, err)
	assert.Equal(t, entity.SourceFallback, answer.Source)
	assert.Equal(t, englishFallback, answer.Text)
}

func TestAsk_SystemInstructionComesFirst(t *testing.T) {
	searcher := &stubSearcher{}
	completer := &stubCompleter{reply: strings.Repeat("x", 40)}
	uc, _ := newTestUsecase(searcher, completer)

	_, err := uc.Ask(context.Background(), "s1", "Anything?")

	require.NoError(t, err)
	messages := completer.received[0]
	require.NotEmpty(t, messages)
	assert.Equal(t, entity.RoleSystem, messages[0].Role)
	assert.Equal(t, systemInstruction, messages[0].Content)
}

func TestAsk_SecondCallSeesFirstTurnVerbatim(t *testing.T) {
	searcher := &stubSearcher{}
	completer := &stubCompleter{reply: strings.Repeat("Useful general knowledge answer. ", 2)}
	uc, _ := newTestUsecase(searcher, completer)
	ctx := context.Background()

	first, err := uc.Ask(ctx, "s1", "First question?")
	require.NoError(t, err)

	_, err = uc.Ask(ctx, "s1", "Second question?")
	require.NoError(t, err)

	messages := completer.received[1]
	var contents []string
	for _, m := range messages {
		contents = append(contents, m.Content)
	}
	assert.Contains(t, contents, "First question?")
	assert.Contains(t, contents, first.Text)

	// Roles alternate through the history portion: system, user, assistant, user.
	require.Len(t, messages, 4)
	assert.Equal(t, entity.RoleUser, messages[1].Role)
	assert.Equal(t, entity.RoleAssistant, messages[2].Role)
	assert.Equal(t, entity.RoleUser, messages[3].Role)
}

func TestAsk_HistoryWindowNeverExceedsLimit(t *testing.T) {
	searcher := &stubSearcher{}
	completer := &stubCompleter{reply: strings.Repeat("A perfectly valid general answer. ", 2)}
	uc, sessions := newTestUsecase(searcher, completer)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := uc.Ask(ctx, "s1", "Another question entirely?")
		require.NoError(t, err)
	}

	turns, err := sessions.History(ctx, "s1")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(turns), 2*testConfig().HistoryLimit)
	assert.Len(t, turns, 2*testConfig().HistoryLimit)

	// The window holds the most recent turns in original order.
	assert.Equal(t, "Another question entirely?", turns[len(turns)-2])
}

func TestAsk_CompletionFailureLeavesHistoryUntouched(t *testing.T) {
	searcher := &stubSearcher{}
	completer := &stubCompleter{err: errors.New("upstream exploded")}
	uc, sessions := newTestUsecase(searcher, completer)
	ctx := context.Background()

	_, err := uc.Ask(ctx, "s1", "Will this fail?")

	require.Error(t, err)
	turns, herr := sessions.History(ctx, "s1")
	require.NoError(t, herr)
	assert.Empty(t, turns)
}

func TestAsk_SearchFailurePropagates(t *testing.T) {
	searcher := &stubSearcher{err: errors.New("qdrant down")}
	completer := &stubCompleter{}
	uc, _ := newTestUsecase(searcher, completer)

	_, err := uc.Ask(context.Background(), "s1", "Does search work?")

	require.Error(t, err)
	assert.Empty(t, completer.received, "completion must not run after a failed retrieval")
}

func TestTranscript_UnknownSession(t *testing.T) {
	uc, _ := newTestUsecase(&stubSearcher{}, &stubCompleter{})

	_, _, err := uc.Transcript(context.Background(), "missing", entity.FormatMarkdown)

	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrSessionNotFound))
}

func TestTranscript_Markdown(t *testing.T) {
	searcher := &stubSearcher{}
	completer := &stubCompleter{reply: strings.Repeat("General knowledge based reply. ", 2)}
	uc, _ := newTestUsecase(searcher, completer)
	ctx := context.Background()

	_, err := uc.Ask(ctx, "s1", "What is a goroutine?")
	require.NoError(t, err)

	data, contentType, err := uc.Transcript(ctx, "s1", entity.FormatMarkdown)

	require.NoError(t, err)
	assert.Contains(t, contentType, "markdown")
	assert.Contains(t, string(data), "What is a goroutine?")
}
