package model

import "time"

// NodeType distinguishes the kinds of turns a branch can hold. Only message
// nodes participate in generation history.
type NodeType string

const (
	NodeTypeMessage NodeType = "message"
	NodeTypeNote    NodeType = "note"
	NodeTypeToolUse NodeType = "tool_use"
)

// NodeRole identifies which side of the conversation a node belongs to.
type NodeRole string

const (
	NodeRoleUser      NodeRole = "user"
	NodeRoleAssistant NodeRole = "assistant"
)

// MessageStatus tracks the lifecycle of one message version. A version is
// mutable only while generating; once done it is an immutable snapshot.
type MessageStatus string

const (
	MessageStatusGenerating MessageStatus = "generating"
	MessageStatusDone       MessageStatus = "done"
	MessageStatusError      MessageStatus = "error"
)

// Compatibility is the closed provider-family tag that selects a parsing
// routine. Adding a family means adding a constant and its parse routine,
// never runtime type inspection.
type Compatibility string

const (
	CompatibilityNone   Compatibility = "none"
	CompatibilityOpenAI Compatibility = "openai"
)

// ContextInheritanceMode controls where a chat's system context comes from.
type ContextInheritanceMode string

const (
	InheritNone      ContextInheritanceMode = "none"
	InheritParent    ContextInheritanceMode = "parent"
	InheritWorkspace ContextInheritanceMode = "workspace"
)

// Node is one turn (user or assistant) in a branch. It points at its active
// content version; regeneration repoints it.
type Node struct {
	ID              string    `json:"id"`
	Type            NodeType  `json:"type"`
	Role            NodeRole  `json:"role"`
	BranchID        string    `json:"branch_id"`
	ActiveMessageID *string   `json:"active_message_id,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MessageVersion is one content snapshot for a node. Version numbers are
// strictly increasing per node.
type MessageVersion struct {
	ID            string        `json:"id"`
	NodeID        string        `json:"node_id"`
	Content       string        `json:"content"`
	Status        MessageStatus `json:"status"`
	VersionNumber int64         `json:"version_number"`
	ModelID       string        `json:"model_id"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// MessagePair holds the ids created transactionally at the start of a
// generation: the user turn and its paired, initially empty assistant turn.
type MessagePair struct {
	UserNodeID         string `json:"user_node_id"`
	UserMessageID      string `json:"user_message_id"`
	AssistantNodeID    string `json:"assistant_node_id"`
	AssistantMessageID string `json:"assistant_message_id"`
}

// GenerationContext is everything needed to call a provider for one branch.
// It is built fresh per generation by joining branch -> chat -> model ->
// endpoint -> provider and never persisted.
type GenerationContext struct {
	ChatID               string
	ChatContext          *string
	InheritanceMode      ContextInheritanceMode
	BranchID             string
	ModelID              string
	ModelName            string
	ModelRequestTemplate *string
	ProviderBaseURL      string
	EndpointPath         string
	EndpointMethod       string
	Compatibility        Compatibility
	EndpointTemplate     *string
	Streaming            bool
}

// ModelRef identifies a model row, used when a regeneration overrides the
// branch's model.
type ModelRef struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	RequestTemplate *string `json:"request_template,omitempty"`
}

// ItemContext is the resolved inherited system context for a chat: which
// item supplied it and the context text, if any.
type ItemContext struct {
	ItemType string  `json:"item_type"`
	ItemID   string  `json:"item_id"`
	Context  *string `json:"context,omitempty"`
}

// HistoryMessage is one prior turn on a branch, flattened to what the
// provider request needs.
type HistoryMessage struct {
	NodeID  string
	Role    NodeRole
	Content string
}

// Tool is an active tool definition forwarded to the provider. Execution is
// out of scope; tools are detected and surfaced only.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema string `json:"input_schema"`
}

// Usage carries the provider's token accounting for one generation.
type Usage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
}

// ToolCallInfo describes one tool invocation requested by the provider.
// Arguments stay as raw text; nothing here executes them.
type ToolCallInfo struct {
	ID        string `json:"id"`
	Index     int64  `json:"index"`
	CallType  string `json:"call_type"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Stream event names as they appear on the wire to the desktop shell.
const (
	EventChunk = "chunk"
	EventUsage = "usage"
	EventDone  = "done"
)

// StreamEvent is one update delivered out-of-band to the subscriber of a
// live generation. Event selects which fields are meaningful.
type StreamEvent struct {
	Event          string `json:"event"`
	ChatID         string `json:"chat_id"`
	BranchID       string `json:"branch_id"`
	MessageID      string `json:"message_id,omitempty"`
	MessageContent string `json:"message_content,omitempty"`
	Delta          string `json:"delta,omitempty"`
	Usage          *Usage `json:"usage,omitempty"`
}
