package repository

import (
	"context"

	"loomchat/backend/internal/model"
)

// Repository defines the interface for data storage operations.
// This interface makes it easy to switch database implementations.
type Repository interface {
	// GetGenerationContext joins branch -> chat -> model -> endpoint ->
	// provider for the branch's streaming chat endpoint. An incomplete
	// chain comes back as ErrNotFound.
	GetGenerationContext(ctx context.Context, branchID string) (*model.GenerationContext, error)

	GetNode(ctx context.Context, nodeID string) (*model.Node, error)

	// GetModel resolves a model row by id, used when a regeneration
	// overrides the branch's model.
	GetModel(ctx context.Context, modelID string) (*model.ModelRef, error)

	// CreateChatPair transactionally creates the user turn (status done)
	// and its paired empty assistant turn (status generating) on a branch.
	CreateChatPair(ctx context.Context, branchID, userContent, modelID string) (*model.MessagePair, error)

	// CreateRegenVersion transactionally allocates the node's next version
	// number, inserts a new generating version under the given model, and
	// repoints the node's active version at it.
	CreateRegenVersion(ctx context.Context, nodeID, modelID string) (*model.MessageVersion, error)

	UpdateMessageContent(ctx context.Context, messageID, content string) error
	UpdateMessageStatus(ctx context.Context, messageID string, status model.MessageStatus) error

	// GetBranchHistory returns the branch's message turns in order, each
	// with its active version's content. A non-empty beforeNodeID limits
	// the history to turns strictly preceding that node.
	GetBranchHistory(ctx context.Context, branchID, beforeNodeID string) ([]model.HistoryMessage, error)

	// ResolveInheritedContext follows the chat's context-inheritance mode
	// (none / parent / workspace) to the system context text to use.
	ResolveInheritedContext(ctx context.Context, chatID string) (*model.ItemContext, error)

	// ListActiveTools returns the tools enabled for a chat, used only to
	// populate the provider request's tool list.
	ListActiveTools(ctx context.Context, chatID string) ([]model.Tool, error)
}
