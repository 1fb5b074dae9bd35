package llm

import (
	"encoding/json"
	"fmt"

	app_errors "loomchat/backend/internal/errors"
	"loomchat/backend/internal/model"
)

// ResponseKind tags one UnifiedResponse variant.
type ResponseKind string

const (
	// KindContentDelta is a normal streaming frame carrying a (possibly
	// empty) piece of assistant content.
	KindContentDelta ResponseKind = "content_delta"
	// KindFinal is the terminal frame of a completion, identified by a
	// finish reason; it may carry trailing content.
	KindFinal ResponseKind = "final"
	// KindToolCall is a frame in which the model requests tool invocations.
	KindToolCall ResponseKind = "tool_call"
	// KindUsage is a frame carrying only token accounting.
	KindUsage ResponseKind = "usage"
	// KindError is reserved for provider-reported error payloads; no parse
	// routine produces it yet.
	KindError ResponseKind = "error"
)

// UnifiedResponse is the provider-agnostic representation of one decoded
// frame. Exactly one variant applies, selected by Kind.
type UnifiedResponse struct {
	Kind ResponseKind

	// Content is the delta text for KindContentDelta, or the optional
	// trailing content of a KindFinal frame (nil when the final frame
	// carried none).
	Content *string

	// FinishReason is set for KindFinal and may accompany KindToolCall.
	FinishReason string

	ToolCalls []model.ToolCallInfo
	Usage     *model.Usage

	// Message carries the provider's error text for KindError.
	Message string
}

// ResponseMapper turns raw frame text into UnifiedResponse values for one
// provider compatibility family. The family is a closed tag: each supported
// value gets its own hardcoded parse routine, and adding a family means
// adding a routine, not inspecting payloads at runtime.
type ResponseMapper struct {
	compatibility model.Compatibility
}

// NewResponseMapper fails for families without a parse routine, so the
// orchestrator can reject an unsupported endpoint before any stream starts.
func NewResponseMapper(compatibility model.Compatibility) (*ResponseMapper, error) {
	switch compatibility {
	case model.CompatibilityOpenAI:
		return &ResponseMapper{compatibility: compatibility}, nil
	default:
		return nil, fmt.Errorf("%w: no parse routine for provider compatibility %q", app_errors.ErrValidation, compatibility)
	}
}

// openaiFrame mirrors one streaming chat-completion chunk. Every field is
// optional on the wire; pointers keep "absent" distinguishable from "empty".
type openaiFrame struct {
	Choices []struct {
		Delta struct {
			Content   *string          `json:"content"`
			ToolCalls []openaiToolCall `json:"tool_calls"`
		} `json:"delta"`
		FinishReason *string `json:"finish_reason"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int64 `json:"prompt_tokens"`
		CompletionTokens int64 `json:"completion_tokens"`
		TotalTokens      int64 `json:"total_tokens"`
	} `json:"usage"`
}

type openaiToolCall struct {
	ID       *string `json:"id"`
	Index    *int64  `json:"index"`
	Type     *string `json:"type"`
	Function *struct {
		Name      *string `json:"name"`
		Arguments *string `json:"arguments"`
	} `json:"function"`
}

// Parse decodes one frame's text and selects the variant. When several
// signals share a frame the priority is: tool calls, then finish reason,
// then content (even empty), then usage; a frame with none of them is a
// benign empty delta.
func (m *ResponseMapper) Parse(frameText string) (*UnifiedResponse, error) {
	var frame openaiFrame
	if err := json.Unmarshal([]byte(frameText), &frame); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", app_errors.ErrMalformedFrame, frameText, err)
	}

	var content *string
	var finishReason *string
	var toolCalls []model.ToolCallInfo

	if len(frame.Choices) > 0 {
		choice := frame.Choices[0]
		content = choice.Delta.Content
		finishReason = choice.FinishReason
		toolCalls = collectToolCalls(choice.Delta.ToolCalls)
	}

	var usage *model.Usage
	if frame.Usage != nil {
		usage = &model.Usage{
			PromptTokens:     frame.Usage.PromptTokens,
			CompletionTokens: frame.Usage.CompletionTokens,
			TotalTokens:      frame.Usage.TotalTokens,
		}
	}

	switch {
	case len(toolCalls) > 0:
		resp := &UnifiedResponse{Kind: KindToolCall, ToolCalls: toolCalls}
		if finishReason != nil {
			resp.FinishReason = *finishReason
		}
		return resp, nil
	case finishReason != nil:
		return &UnifiedResponse{Kind: KindFinal, Content: content, FinishReason: *finishReason}, nil
	case content != nil:
		return &UnifiedResponse{Kind: KindContentDelta, Content: content}, nil
	case usage != nil:
		return &UnifiedResponse{Kind: KindUsage, Usage: usage}, nil
	default:
		empty := ""
		return &UnifiedResponse{Kind: KindContentDelta, Content: &empty}, nil
	}
}

// collectToolCalls keeps only fully-described descriptors; a partial entry
// is dropped rather than surfaced half-filled.
func collectToolCalls(raw []openaiToolCall) []model.ToolCallInfo {
	var out []model.ToolCallInfo
	for _, tc := range raw {
		if tc.ID == nil || tc.Index == nil || tc.Type == nil || tc.Function == nil ||
			tc.Function.Name == nil || tc.Function.Arguments == nil {
			continue
		}
		out = append(out, model.ToolCallInfo{
			ID:        *tc.ID,
			Index:     *tc.Index,
			CallType:  *tc.Type,
			Name:      *tc.Function.Name,
			Arguments: *tc.Function.Arguments,
		})
	}
	return out
}
