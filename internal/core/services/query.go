package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/paperchat/paperchat/internal/chunker"
	"github.com/paperchat/paperchat/internal/core/domain"
	"github.com/paperchat/paperchat/internal/core/ports/driven"
	"github.com/paperchat/paperchat/internal/core/ports/driving"
	"github.com/paperchat/paperchat/internal/logger"
	"github.com/paperchat/paperchat/internal/ranker"
)

// Ensure QueryService implements the interface.
var _ driving.Querier = (*QueryService)(nil)

// defaultTopK is the number of chunks retrieved per question when the
// settings do not override it.
const defaultTopK = 5

// groundedSystemPrompt instructs the model to answer strictly from the
// supplied excerpts and cite pages.
const groundedSystemPrompt = `You are a helpful assistant that answers questions about a document.
Answer using ONLY the context excerpts provided below. Each excerpt is
labeled with the page it came from. Cite pages inline as [Page N] when
you use an excerpt. If the context does not contain the answer, say so
plainly instead of guessing.`

// summarySystemPrompt instructs the model to produce a structured summary
// of the full document text.
const summarySystemPrompt = `You are a helpful assistant that summarizes documents.
Write a concise summary of the document text provided below. Cover the
main topics and conclusions, keep the original's emphasis, and do not
add information that is not in the text.`

// chatSystemPrompt is used for ungrounded conversation.
const chatSystemPrompt = `You are a helpful assistant.`

// reviewSystemPrompt is the general reviewer persona, used when no role
// is given or the role is unknown.
const reviewSystemPrompt = `You are a helpful assistant with expertise in research papers.
Provide a critical peer review of the document, focusing on its strengths
and weaknesses.`

// reviewProfiles maps a reviewer role to its persona prompt.
var reviewProfiles = map[string]string{
	"physicist": "You are a reviewer with expertise in Physics. Focus on the underlying " +
		"physical principles, theoretical models, and the validity of any physical " +
		"measurements presented.",
	"chemist": "You are a reviewer with expertise in Chemistry. Focus on the chemical " +
		"compositions, reactions, and material properties from a chemical standpoint.",
	"synthesis": "You are a reviewer with expertise in Material Synthesis. Focus on the " +
		"novelty, reproducibility, and scalability of the synthesis techniques.",
	"editor": "You are an editor. Review the paper for clarity, grammar, style, and " +
		"overall structure. Ensure the arguments are presented logically and the paper " +
		"is easy to understand.",
}

// noContextNotice replaces the excerpt block when retrieval returns
// nothing usable.
const noContextNotice = "No relevant context found."

// QueryService answers questions over ingested documents. Retrieval is a
// full scan of the document's vector store ranked by cosine similarity.
type QueryService struct {
	docStore driven.DocumentStore
	vectors  driven.VectorStore
	embedder driven.EmbeddingService
	llm      driven.LLMService
	sessions driving.SessionManager
	chunker  *chunker.Chunker
	topK     int
}

// NewQueryService creates the query pipeline. The chunker must match the
// one used at ingestion so summarization can strip window overlap.
// topK <= 0 selects the default.
func NewQueryService(
	docStore driven.DocumentStore,
	vectors driven.VectorStore,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	sessions driving.SessionManager,
	ch *chunker.Chunker,
	topK int,
) *QueryService {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &QueryService{
		docStore: docStore,
		vectors:  vectors,
		embedder: embedder,
		llm:      llm,
		sessions: sessions,
		chunker:  ch,
		topK:     topK,
	}
}

// Ask embeds the question, ranks the document's vectors and streams a
// grounded completion.
func (s *QueryService) Ask(ctx context.Context, docID, sessionID, question string) (<-chan string, <-chan error) {
	deltas := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(deltas)
		defer close(errs)

		if s.llm == nil {
			errs <- domain.ErrLLMUnavailable
			return
		}
		if s.embedder == nil {
			errs <- domain.ErrEmbeddingUnavailable
			return
		}
		if strings.TrimSpace(question) == "" {
			errs <- fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
			return
		}

		excerpts, err := s.retrieve(ctx, docID, question)
		if err != nil {
			errs <- err
			return
		}

		messages := s.historyMessages(sessionID, groundedSystemPrompt+"\n\nContext:\n"+excerpts)
		messages = append(messages, driven.ChatMessage{Role: domain.RoleUser, Content: question})

		s.stream(ctx, messages, sessionID, question, deltas, errs)
	}()

	return deltas, errs
}

// Summarize streams a summary of the document's full chunk text.
func (s *QueryService) Summarize(ctx context.Context, docID, sessionID string) (<-chan string, <-chan error) {
	deltas := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(deltas)
		defer close(errs)

		if s.llm == nil {
			errs <- domain.ErrLLMUnavailable
			return
		}

		doc, err := s.readyDocument(ctx, docID)
		if err != nil {
			errs <- err
			return
		}

		chunks, err := s.docStore.Chunks(ctx, docID)
		if err != nil {
			errs <- err
			return
		}
		text := assembleText(chunks, s.chunker.Window()-s.chunker.Stride())
		logger.Debug("Summarizing %s: %d chunks, %d chars", doc.ID, len(chunks), len(text))

		messages := []driven.ChatMessage{
			{Role: domain.RoleSystem, Content: summarySystemPrompt + "\n\nDocument:\n" + text},
			{Role: domain.RoleUser, Content: "Summarize this document."},
		}

		s.stream(ctx, messages, sessionID, "Summarize this document.", deltas, errs)
	}()

	return deltas, errs
}

// Review streams a critical review of the document's full text. role
// selects a reviewer persona; empty or unknown roles get the general
// peer reviewer.
func (s *QueryService) Review(ctx context.Context, docID, sessionID, role string) (<-chan string, <-chan error) {
	deltas := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(deltas)
		defer close(errs)

		if s.llm == nil {
			errs <- domain.ErrLLMUnavailable
			return
		}

		doc, err := s.readyDocument(ctx, docID)
		if err != nil {
			errs <- err
			return
		}

		chunks, err := s.docStore.Chunks(ctx, docID)
		if err != nil {
			errs <- err
			return
		}
		text := assembleText(chunks, s.chunker.Window()-s.chunker.Stride())
		logger.Debug("Reviewing %s as %q: %d chunks, %d chars", doc.ID, role, len(chunks), len(text))

		system := reviewSystemPrompt
		if profile, ok := reviewProfiles[role]; ok {
			system = profile
		}

		userText := "Provide a critical review of the document."
		if role != "" {
			userText = fmt.Sprintf("Provide a critical review of the document from the perspective of a %s.", role)
		}

		messages := []driven.ChatMessage{
			{Role: domain.RoleSystem, Content: system},
			{Role: domain.RoleUser, Content: "Please provide a critical review of the following document:\n\n" + text},
		}

		s.stream(ctx, messages, sessionID, userText, deltas, errs)
	}()

	return deltas, errs
}

// Chat streams a plain completion over the session's history with no
// document grounding.
func (s *QueryService) Chat(ctx context.Context, sessionID, prompt string) (<-chan string, <-chan error) {
	deltas := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(deltas)
		defer close(errs)

		if s.llm == nil {
			errs <- domain.ErrLLMUnavailable
			return
		}
		if strings.TrimSpace(prompt) == "" {
			errs <- fmt.Errorf("%w: empty prompt", domain.ErrInvalidInput)
			return
		}

		messages := s.historyMessages(sessionID, chatSystemPrompt)
		messages = append(messages, driven.ChatMessage{Role: domain.RoleUser, Content: prompt})

		s.stream(ctx, messages, sessionID, prompt, deltas, errs)
	}()

	return deltas, errs
}

// retrieve embeds the question and returns the top-K excerpt block.
func (s *QueryService) retrieve(ctx context.Context, docID, question string) (string, error) {
	doc, err := s.readyDocument(ctx, docID)
	if err != nil {
		return "", err
	}

	chunks, err := s.docStore.Chunks(ctx, docID)
	if err != nil {
		return "", err
	}
	if len(chunks) != doc.ChunkCount {
		return "", fmt.Errorf("%w: catalog has %d chunks, document records %d",
			domain.ErrStoreSizeMismatch, len(chunks), doc.ChunkCount)
	}

	handle, err := s.vectors.Open(docID, doc.ChunkCount, doc.Dim)
	if err != nil {
		return "", err
	}
	defer handle.Close()

	rows, err := handle.ReadAll()
	if err != nil {
		return "", err
	}

	query, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return "", err
	}
	if len(query) != doc.Dim {
		return "", fmt.Errorf("%w: query width %d, store width %d",
			domain.ErrEmbeddingFailed, len(query), doc.Dim)
	}

	hits := ranker.TopK(query, rows, s.topK)
	logger.Debug("Retrieved %d of %d chunks for %s", len(hits), len(rows), docID)

	var b strings.Builder
	for _, hit := range hits {
		if hit.Score <= 0 {
			continue
		}
		chunk := chunks[hit.Row]
		fmt.Fprintf(&b, "[Page %d] %s\n\n", chunk.Page, chunk.Text)
	}
	if b.Len() == 0 {
		return noContextNotice, nil
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// readyDocument loads the document and confirms it finished ingesting.
func (s *QueryService) readyDocument(ctx context.Context, docID string) (*domain.Document, error) {
	doc, err := s.docStore.Get(ctx, docID)
	if err != nil {
		return nil, err
	}
	if doc.State != domain.StateReady {
		return nil, fmt.Errorf("%w: document %s is %s", domain.ErrInvalidInput, docID, doc.State)
	}
	return doc, nil
}

// historyMessages builds the message list: the system prompt followed by
// the session transcript, when a session is attached.
func (s *QueryService) historyMessages(sessionID, systemPrompt string) []driven.ChatMessage {
	messages := []driven.ChatMessage{
		{Role: domain.RoleSystem, Content: systemPrompt},
	}
	if sessionID == "" || s.sessions == nil {
		return messages
	}

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return messages
	}
	for _, msg := range session.Messages {
		messages = append(messages, driven.ChatMessage{Role: msg.Role, Content: msg.Content})
	}
	return messages
}

// stream runs the completion and forwards deltas. On clean completion
// the exchange is appended to the session transcript.
func (s *QueryService) stream(ctx context.Context, messages []driven.ChatMessage, sessionID, userText string, deltas chan<- string, errs chan<- error) {
	var reply strings.Builder

	err := s.llm.ChatStream(ctx, messages, driven.ChatOptions{}, func(delta string) error {
		reply.WriteString(delta)
		select {
		case deltas <- delta:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	if err != nil {
		errs <- err
		return
	}

	if sessionID != "" && s.sessions != nil {
		if err := s.sessions.Append(sessionID, domain.Message{
			Role: domain.RoleUser, Content: userText,
		}); err != nil {
			logger.Warn("Recording user turn: %v", err)
		}
		if err := s.sessions.Append(sessionID, domain.Message{
			Role: domain.RoleAssistant, Content: reply.String(),
		}); err != nil {
			logger.Warn("Recording assistant turn: %v", err)
		}
	}
}

// assembleText joins chunk text back into the document body. Follow-on
// windows on the same page drop their leading overlap region so repeated
// text does not inflate the summary input. Overlap counts characters,
// matching how the chunker cuts windows.
func assembleText(chunks []domain.Chunk, overlap int) string {
	var b strings.Builder
	var lastPage int
	for _, chunk := range chunks {
		if chunk.Page != lastPage {
			if lastPage != 0 {
				b.WriteString("\n")
			}
			lastPage = chunk.Page
			b.WriteString(chunk.Text)
			continue
		}
		text := []rune(chunk.Text)
		if len(text) > overlap {
			b.WriteString(string(text[overlap:]))
		}
	}
	return b.String()
}
