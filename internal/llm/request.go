package llm

import (
	"encoding/json"
	"fmt"
)

// ChatMessage is one entry in the provider request's message list.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ToolDefinition is the wire shape of one tool offered to the model.
type ToolDefinition struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

type ToolFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters"`
}

type chatRequest struct {
	Model         string           `json:"model"`
	Messages      []ChatMessage    `json:"messages"`
	Stream        bool             `json:"stream"`
	StreamOptions *streamOptions   `json:"stream_options,omitempty"`
	Tools         []ToolDefinition `json:"tools,omitempty"`
	ToolChoice    string           `json:"tool_choice,omitempty"`
}

type streamOptions struct {
	IncludeUsage bool `json:"include_usage"`
}

// BuildChatRequest renders the streaming chat-completion body for an
// OpenAI-compatible endpoint. Tools are forwarded as-is; tool_choice is set
// to "auto" only when at least one tool is offered.
func BuildChatRequest(modelName string, messages []ChatMessage, tools []ToolDefinition) ([]byte, error) {
	req := chatRequest{
		Model:         modelName,
		Messages:      messages,
		Stream:        true,
		StreamOptions: &streamOptions{IncludeUsage: true},
		Tools:         tools,
	}
	if len(tools) > 0 {
		req.ToolChoice = "auto"
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("could not marshal chat request: %w", err)
	}
	return body, nil
}
