package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	app_errors "loomchat/backend/internal/errors"
	"loomchat/backend/internal/llm"
	"loomchat/backend/internal/model"
	"loomchat/backend/internal/repository"
	"loomchat/backend/internal/session"
)

// GenerationService coordinates one streaming generation end to end:
// context resolution, record creation, the detached provider stream, event
// fan-out through the session registry, and final persistence.
type GenerationService struct {
	repo     repository.Repository
	provider llm.Provider
	sessions *session.Registry
}

func NewGenerationService(repo repository.Repository, provider llm.Provider, sessions *session.Registry) *GenerationService {
	return &GenerationService{repo: repo, provider: provider, sessions: sessions}
}

// Generate starts a generation for a new user message on a branch. It
// resolves the provider chain, registers the session (rejecting a branch
// that already has one), creates the user/assistant record pair in one
// transaction, and returns as soon as the detached streaming task is
// launched. Updates arrive on the sender; the caller is never blocked on
// the provider.
func (s *GenerationService) Generate(ctx context.Context, branchID, messageText string, sender session.Sender) (*model.MessagePair, error) {
	if branchID == "" || strings.TrimSpace(messageText) == "" {
		return nil, fmt.Errorf("%w: branch id and message text are required", app_errors.ErrValidation)
	}

	genCtx, err := s.repo.GetGenerationContext(ctx, branchID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	mapper, err := llm.NewResponseMapper(genCtx.Compatibility)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Create(branchID, sender); err != nil {
		return nil, err
	}

	pair, err := s.repo.CreateChatPair(ctx, branchID, messageText, genCtx.ModelID)
	if err != nil {
		s.sessions.Remove(branchID)
		return nil, mapRepositoryError(err)
	}

	// History strictly before the empty assistant turn: everything on the
	// branch including the user message just stored.
	body, err := s.buildRequestBody(ctx, genCtx, genCtx.ModelName, pair.AssistantNodeID)
	if err != nil {
		s.sessions.Remove(branchID)
		return nil, err
	}

	s.detachStream(genCtx, mapper, body, pair.AssistantMessageID)
	return pair, nil
}

// Regenerate creates the next version for an existing assistant node,
// optionally under an overridden model, and streams into it. History is
// scoped strictly before the regenerated node.
func (s *GenerationService) Regenerate(ctx context.Context, nodeID string, overrideModelID *string, sender session.Sender) (*model.MessageVersion, error) {
	if nodeID == "" {
		return nil, fmt.Errorf("%w: node id is required", app_errors.ErrValidation)
	}

	node, err := s.repo.GetNode(ctx, nodeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if node.Type != model.NodeTypeMessage || node.Role != model.NodeRoleAssistant {
		return nil, fmt.Errorf("%w: only assistant message nodes can be regenerated", app_errors.ErrValidation)
	}

	genCtx, err := s.repo.GetGenerationContext(ctx, node.BranchID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	mapper, err := llm.NewResponseMapper(genCtx.Compatibility)
	if err != nil {
		return nil, err
	}

	modelID := genCtx.ModelID
	modelName := genCtx.ModelName
	if overrideModelID != nil && *overrideModelID != "" && *overrideModelID != genCtx.ModelID {
		ref, err := s.repo.GetModel(ctx, *overrideModelID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		modelID = ref.ID
		modelName = ref.Name
	}

	if err := s.sessions.Create(node.BranchID, sender); err != nil {
		return nil, err
	}

	version, err := s.repo.CreateRegenVersion(ctx, nodeID, modelID)
	if err != nil {
		s.sessions.Remove(node.BranchID)
		return nil, mapRepositoryError(err)
	}

	body, err := s.buildRequestBody(ctx, genCtx, modelName, nodeID)
	if err != nil {
		s.sessions.Remove(node.BranchID)
		return nil, err
	}

	s.detachStream(genCtx, mapper, body, version.ID)
	return version, nil
}

// Reconnect attaches a new sender to a live session. The accumulated
// transcript is not replayed; the subscriber resumes with the next event.
func (s *GenerationService) Reconnect(branchID string, sender session.Sender) error {
	return s.sessions.Attach(branchID, sender)
}

// Unregister removes the branch's session, if any, and cancels its
// in-flight upstream request. Always succeeds.
func (s *GenerationService) Unregister(branchID string) {
	s.sessions.Remove(branchID)
}

// detachStream launches the background streaming task. Its context is
// detached from the caller's request and cancelled only through the
// session registry (Remove / Unregister).
func (s *GenerationService) detachStream(genCtx *model.GenerationContext, mapper *llm.ResponseMapper, body []byte, messageID string) {
	streamCtx, cancel := context.WithCancel(context.Background())
	s.sessions.SetCancel(genCtx.BranchID, cancel)
	go s.runStream(streamCtx, genCtx, mapper, body, messageID)
}

// runStream drives demultiplexer -> normalizer -> registry for one
// generation and persists the outcome. Errors in here never reach the
// original caller: they are logged, the session ends, and the message
// version stays in whatever state it last reached.
func (s *GenerationService) runStream(ctx context.Context, genCtx *model.GenerationContext, mapper *llm.ResponseMapper, body []byte, messageID string) {
	branchID := genCtx.BranchID
	log := slog.With("branch_id", branchID, "message_id", messageID)
	defer s.sessions.Remove(branchID)

	s.sessions.SetStatus(branchID, session.StatusProcessing)

	frames, err := s.provider.ChatStream(ctx, genCtx, body)
	if err != nil {
		log.Error("Provider request failed", "error", err)
		s.sessions.SetStatus(branchID, session.StatusFailed)
		return
	}

	var content strings.Builder
	for frame := range frames {
		// Cancellation flag, checked between frames.
		if ctx.Err() != nil {
			log.Info("Generation cancelled, abandoning stream")
			s.sessions.SetStatus(branchID, session.StatusCancelled)
			return
		}

		if frame.Err != nil {
			if errors.Is(frame.Err, app_errors.ErrMalformedFrame) {
				// Recoverable decode failure on one chunk; the sequence
				// continues.
				log.Warn("Dropping undecodable stream chunk", "error", frame.Err)
				continue
			}
			log.Error("Provider stream failed mid-generation", "error", frame.Err)
			s.sessions.SetStatus(branchID, session.StatusFailed)
			return
		}

		resp, err := mapper.Parse(frame.Text)
		if err != nil {
			log.Error("Unparseable provider frame, stopping stream", "error", err)
			s.sessions.SetStatus(branchID, session.StatusFailed)
			return
		}

		switch resp.Kind {
		case llm.KindContentDelta:
			s.pushDelta(genCtx, messageID, &content, *resp.Content, log)
		case llm.KindFinal:
			if resp.Content != nil && *resp.Content != "" {
				s.pushDelta(genCtx, messageID, &content, *resp.Content, log)
			}
		case llm.KindToolCall:
			// Detected but not executed: surface a placeholder so the
			// conversation state stays inspectable.
			s.pushDelta(genCtx, messageID, &content, describeToolCalls(resp.ToolCalls), log)
		case llm.KindUsage:
			s.sendEvent(model.StreamEvent{
				Event:    model.EventUsage,
				ChatID:   genCtx.ChatID,
				BranchID: branchID,
				Usage:    resp.Usage,
			}, log)
		case llm.KindError:
			log.Warn("Provider reported an error frame", "message", resp.Message)
		}
	}

	if ctx.Err() != nil {
		log.Info("Generation cancelled after stream end")
		s.sessions.SetStatus(branchID, session.StatusCancelled)
		return
	}

	// Final persistence failures are logged only: the caller is long gone
	// and the version can be retried by regenerating.
	if err := s.repo.UpdateMessageContent(ctx, messageID, content.String()); err != nil {
		log.Error("Failed to persist final message content", "error", err)
	}
	if err := s.repo.UpdateMessageStatus(ctx, messageID, model.MessageStatusDone); err != nil {
		log.Error("Failed to finalize message status", "error", err)
	}

	s.sendEvent(model.StreamEvent{
		Event:          model.EventDone,
		ChatID:         genCtx.ChatID,
		BranchID:       branchID,
		MessageID:      messageID,
		MessageContent: content.String(),
	}, log)
	s.sessions.SetStatus(branchID, session.StatusCompleted)
}

// pushDelta accumulates one piece of assistant content and forwards it as a
// chunk event carrying both the delta and the content so far.
func (s *GenerationService) pushDelta(genCtx *model.GenerationContext, messageID string, content *strings.Builder, delta string, log *slog.Logger) {
	content.WriteString(delta)
	s.sessions.AppendTranscript(genCtx.BranchID, delta)
	s.sendEvent(model.StreamEvent{
		Event:          model.EventChunk,
		ChatID:         genCtx.ChatID,
		BranchID:       genCtx.BranchID,
		MessageID:      messageID,
		MessageContent: content.String(),
		Delta:          delta,
	}, log)
}

// sendEvent is best-effort: a disconnected or stalled subscriber is logged
// and the generation keeps accumulating and persisting.
func (s *GenerationService) sendEvent(event model.StreamEvent, log *slog.Logger) {
	if err := s.sessions.Send(event.BranchID, event); err != nil {
		log.Debug("Dropped stream event", "event", event.Event, "error", err)
	}
}

// buildRequestBody renders the provider request from the resolved context:
// inherited system context first, then the branch history up to (but not
// including) the node being generated into.
func (s *GenerationService) buildRequestBody(ctx context.Context, genCtx *model.GenerationContext, modelName, beforeNodeID string) ([]byte, error) {
	var messages []llm.ChatMessage

	if genCtx.InheritanceMode != model.InheritNone {
		item, err := s.repo.ResolveInheritedContext(ctx, genCtx.ChatID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		if item.Context != nil && *item.Context != "" {
			messages = append(messages, llm.ChatMessage{Role: "system", Content: *item.Context})
		}
	}

	history, err := s.repo.GetBranchHistory(ctx, genCtx.BranchID, beforeNodeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	for _, msg := range history {
		messages = append(messages, llm.ChatMessage{Role: string(msg.Role), Content: msg.Content})
	}

	tools, err := s.repo.ListActiveTools(ctx, genCtx.ChatID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	var toolDefs []llm.ToolDefinition
	for _, tool := range tools {
		toolDefs = append(toolDefs, llm.ToolDefinition{
			Type: "function",
			Function: llm.ToolFunction{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  json.RawMessage(tool.InputSchema),
			},
		})
	}

	return llm.BuildChatRequest(modelName, messages, toolDefs)
}

// describeToolCalls renders the placeholder text for tool calls the model
// requested. Execution is out of scope; the calls are only surfaced.
func describeToolCalls(calls []model.ToolCallInfo) string {
	names := make([]string, 0, len(calls))
	for _, call := range calls {
		names = append(names, fmt.Sprintf("%s(%s)", call.Name, call.Arguments))
	}
	return fmt.Sprintf("[tool call requested: %s]", strings.Join(names, ", "))
}

// mapRepositoryError translates repository sentinels into the domain error
// taxonomy the API layer maps to HTTP statuses.
func mapRepositoryError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %v", app_errors.ErrNotFound, err)
	}
	return fmt.Errorf("%w: %v", app_errors.ErrPersistence, err)
}
