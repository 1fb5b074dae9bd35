package interfaces

import (
	"context"

	"loomchat/backend/internal/model"
	"loomchat/backend/internal/session"
)

// This file defines the interfaces for our core services.
// Depending on these interfaces, instead of concrete implementations, allows for
// decoupling (e.g., API layer from Service layer) and easier testing via mocking.

// GenerationService defines the contract for the streaming generation
// pipeline. Generate and Regenerate return once the detached streaming
// task is launched; events arrive on the registered sender.
type GenerationService interface {
	Generate(ctx context.Context, branchID, messageText string, sender session.Sender) (*model.MessagePair, error)
	Regenerate(ctx context.Context, nodeID string, overrideModelID *string, sender session.Sender) (*model.MessageVersion, error)
	Reconnect(branchID string, sender session.Sender) error
	Unregister(branchID string)
}
