package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperchat/paperchat/internal/core/domain"
	"github.com/paperchat/paperchat/internal/core/ports/driven"
)

func TestChat_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.False(t, req.Stream)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)

		json.NewEncoder(w).Encode(chatResponse{
			Message: chatMessage{Role: "assistant", Content: "hello there"},
			Done:    true,
		})
	}))
	defer server.Close()

	svc := NewLLMService(Config{BaseURL: server.URL})

	reply, err := svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: "system", Content: "be helpful"},
		{Role: "user", Content: "hi"},
	}, driven.ChatOptions{})
	require.NoError(t, err)
	assert.Equal(t, "hello there", reply)
}

func TestChatStream_DeliversDeltasUntilDone(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)

		enc := json.NewEncoder(w)
		enc.Encode(chatResponse{Message: chatMessage{Content: "Hel"}})
		enc.Encode(chatResponse{Message: chatMessage{Content: "lo"}})
		enc.Encode(chatResponse{Done: true})
		// Anything after done must be ignored.
		enc.Encode(chatResponse{Message: chatMessage{Content: "junk"}})
	}))
	defer server.Close()

	svc := NewLLMService(Config{BaseURL: server.URL})

	var got string
	err := svc.ChatStream(context.Background(), []driven.ChatMessage{
		{Role: "user", Content: "hi"},
	}, driven.ChatOptions{}, func(delta string) error {
		got += delta
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello", got)
}

func TestChatStream_CallbackErrorStops(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		enc := json.NewEncoder(w)
		enc.Encode(chatResponse{Message: chatMessage{Content: "a"}})
		enc.Encode(chatResponse{Message: chatMessage{Content: "b"}})
		enc.Encode(chatResponse{Done: true})
	}))
	defer server.Close()

	svc := NewLLMService(Config{BaseURL: server.URL})

	sentinel := errors.New("stop")
	var calls int
	err := svc.ChatStream(context.Background(), nil, driven.ChatOptions{}, func(string) error {
		calls++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}

func TestChatStream_ServerReportedError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(chatResponse{Error: "model exploded"})
	}))
	defer server.Close()

	svc := NewLLMService(Config{BaseURL: server.URL})

	err := svc.ChatStream(context.Background(), nil, driven.ChatOptions{}, func(string) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model exploded")
}

func TestChat_OptionsForwarded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.Options)
		assert.Equal(t, 64, req.Options.NumPredict)
		assert.InDelta(t, 0.7, req.Options.Temperature, 1e-9)

		json.NewEncoder(w).Encode(chatResponse{Done: true})
	}))
	defer server.Close()

	svc := NewLLMService(Config{BaseURL: server.URL})

	_, err := svc.Chat(context.Background(), nil, driven.ChatOptions{MaxTokens: 64, Temperature: 0.7})
	require.NoError(t, err)
}

func TestChat_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	server.Close()

	svc := NewLLMService(Config{BaseURL: server.URL})

	_, err := svc.Chat(context.Background(), nil, driven.ChatOptions{})
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}
