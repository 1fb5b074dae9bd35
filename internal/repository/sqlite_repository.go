package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"loomchat/backend/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

const generationContextQuery = `
	SELECT
		branches.id,
		chats.id,
		chats.context,
		chats.context_inheritance_mode,
		models.id,
		models.name,
		models.request_template,
		providers.base_url,
		provider_endpoints.path,
		provider_endpoints.method,
		provider_endpoints.compatibility,
		provider_endpoints.request_template,
		provider_endpoints.streaming
	FROM branches
	JOIN chats ON branches.chat_id = chats.id
	JOIN models ON branches.model_id = models.id
	JOIN model_endpoint_configurations AS mec ON models.id = mec.model_id
	JOIN provider_endpoints
		ON mec.endpoint_id = provider_endpoints.id
		AND provider_endpoints.type = ?
	JOIN providers ON provider_endpoints.provider_id = providers.id
	WHERE branches.id = ?
`

func (r *sqliteRepository) GetGenerationContext(ctx context.Context, branchID string) (*model.GenerationContext, error) {
	row := r.db.QueryRowContext(ctx, generationContextQuery, "chat_stream", branchID)

	var genCtx model.GenerationContext
	var chatContext, modelTemplate, endpointTemplate sql.NullString
	err := row.Scan(
		&genCtx.BranchID,
		&genCtx.ChatID,
		&chatContext,
		&genCtx.InheritanceMode,
		&genCtx.ModelID,
		&genCtx.ModelName,
		&modelTemplate,
		&genCtx.ProviderBaseURL,
		&genCtx.EndpointPath,
		&genCtx.EndpointMethod,
		&genCtx.Compatibility,
		&endpointTemplate,
		&genCtx.Streaming,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: generation context for branch %s", ErrNotFound, branchID)
		}
		return nil, err
	}

	if chatContext.Valid {
		genCtx.ChatContext = &chatContext.String
	}
	if modelTemplate.Valid {
		genCtx.ModelRequestTemplate = &modelTemplate.String
	}
	if endpointTemplate.Valid {
		genCtx.EndpointTemplate = &endpointTemplate.String
	}
	return &genCtx, nil
}

func (r *sqliteRepository) GetNode(ctx context.Context, nodeID string) (*model.Node, error) {
	query := "SELECT id, type, role, branch_id, active_message_id, updated_at FROM nodes WHERE id = ?"
	row := r.db.QueryRowContext(ctx, query, nodeID)

	var node model.Node
	var activeMessageID sql.NullString
	err := row.Scan(&node.ID, &node.Type, &node.Role, &node.BranchID, &activeMessageID, &node.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: node %s", ErrNotFound, nodeID)
		}
		return nil, err
	}
	if activeMessageID.Valid {
		node.ActiveMessageID = &activeMessageID.String
	}
	return &node, nil
}

func (r *sqliteRepository) GetModel(ctx context.Context, modelID string) (*model.ModelRef, error) {
	query := "SELECT id, name, request_template FROM models WHERE id = ?"
	row := r.db.QueryRowContext(ctx, query, modelID)

	var ref model.ModelRef
	var template sql.NullString
	if err := row.Scan(&ref.ID, &ref.Name, &template); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: model %s", ErrNotFound, modelID)
		}
		return nil, err
	}
	if template.Valid {
		ref.RequestTemplate = &template.String
	}
	return &ref, nil
}

// CreateChatPair inserts both turns inside one transaction so a failure on
// the assistant side never leaves a dangling user turn.
func (r *sqliteRepository) CreateChatPair(ctx context.Context, branchID, userContent, modelID string) (*model.MessagePair, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	// Ensure transaction is rolled back on error
	defer tx.Rollback()

	now := time.Now().UTC()
	pair := &model.MessagePair{
		UserNodeID:         uuid.NewString(),
		UserMessageID:      uuid.NewString(),
		AssistantNodeID:    uuid.NewString(),
		AssistantMessageID: uuid.NewString(),
	}

	if err := insertTurn(ctx, tx, turn{
		nodeID:    pair.UserNodeID,
		messageID: pair.UserMessageID,
		branchID:  branchID,
		role:      model.NodeRoleUser,
		content:   userContent,
		status:    model.MessageStatusDone,
		now:       now,
	}); err != nil {
		return nil, err
	}

	if err := insertTurn(ctx, tx, turn{
		nodeID:    pair.AssistantNodeID,
		messageID: pair.AssistantMessageID,
		branchID:  branchID,
		role:      model.NodeRoleAssistant,
		content:   "",
		status:    model.MessageStatusGenerating,
		modelID:   modelID,
		now:       now,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit chat pair: %w", err)
	}
	return pair, nil
}

type turn struct {
	nodeID    string
	messageID string
	branchID  string
	role      model.NodeRole
	content   string
	status    model.MessageStatus
	modelID   string
	now       time.Time
}

func insertTurn(ctx context.Context, tx *sql.Tx, t turn) error {
	insertNode := `
		INSERT INTO nodes (id, type, role, branch_id, active_message_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, NULL, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, insertNode, t.nodeID, model.NodeTypeMessage, t.role, t.branchID, t.now, t.now); err != nil {
		return fmt.Errorf("could not insert %s node: %w", t.role, err)
	}

	var modelID sql.NullString
	if t.modelID != "" {
		modelID = sql.NullString{String: t.modelID, Valid: true}
	}
	insertMessage := `
		INSERT INTO node_messages (id, node_id, content, status, version_number, model_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, ?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, insertMessage, t.messageID, t.nodeID, t.content, t.status, modelID, t.now, t.now); err != nil {
		return fmt.Errorf("could not insert %s message version: %w", t.role, err)
	}

	updateNode := "UPDATE nodes SET active_message_id = ? WHERE id = ?"
	if _, err := tx.ExecContext(ctx, updateNode, t.messageID, t.nodeID); err != nil {
		return fmt.Errorf("could not set active message for %s node: %w", t.role, err)
	}
	return nil
}

// CreateRegenVersion allocates the next version number and repoints the
// node inside one transaction, keeping version numbers strictly increasing
// per node even under concurrent callers.
func (r *sqliteRepository) CreateRegenVersion(ctx context.Context, nodeID, modelID string) (*model.MessageVersion, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	var nextVersion int64
	versionQuery := "SELECT COALESCE(MAX(version_number) + 1, 0) FROM node_messages WHERE node_id = ?"
	if err := tx.QueryRowContext(ctx, versionQuery, nodeID).Scan(&nextVersion); err != nil {
		return nil, fmt.Errorf("could not allocate version number: %w", err)
	}

	now := time.Now().UTC()
	version := &model.MessageVersion{
		ID:            uuid.NewString(),
		NodeID:        nodeID,
		Content:       "",
		Status:        model.MessageStatusGenerating,
		VersionNumber: nextVersion,
		ModelID:       modelID,
		UpdatedAt:     now,
	}

	insertMessage := `
		INSERT INTO node_messages (id, node_id, content, status, version_number, model_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, insertMessage, version.ID, nodeID, version.Content, version.Status, version.VersionNumber, modelID, now, now); err != nil {
		return nil, fmt.Errorf("could not insert message version: %w", err)
	}

	updateNode := "UPDATE nodes SET active_message_id = ?, updated_at = ? WHERE id = ?"
	res, err := tx.ExecContext(ctx, updateNode, version.ID, now, nodeID)
	if err != nil {
		return nil, fmt.Errorf("could not update node active version: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, fmt.Errorf("%w: node %s", ErrNotFound, nodeID)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit regenerated version: %w", err)
	}
	return version, nil
}

func (r *sqliteRepository) UpdateMessageContent(ctx context.Context, messageID, content string) error {
	query := "UPDATE node_messages SET content = ?, updated_at = ? WHERE id = ?"
	_, err := r.db.ExecContext(ctx, query, content, time.Now().UTC(), messageID)
	return err
}

func (r *sqliteRepository) UpdateMessageStatus(ctx context.Context, messageID string, status model.MessageStatus) error {
	query := "UPDATE node_messages SET status = ?, updated_at = ? WHERE id = ?"
	_, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), messageID)
	return err
}

func (r *sqliteRepository) GetBranchHistory(ctx context.Context, branchID, beforeNodeID string) ([]model.HistoryMessage, error) {
	query := `
		SELECT nodes.id, nodes.role, node_messages.content
		FROM nodes
		JOIN node_messages ON nodes.active_message_id = node_messages.id
		WHERE nodes.branch_id = ? AND nodes.type = 'message'
	`
	args := []interface{}{branchID}
	if beforeNodeID != "" {
		// Strictly preceding the regenerated node, in insertion order.
		query += `
		AND (nodes.created_at, nodes.rowid) <
			(SELECT n.created_at, n.rowid FROM nodes n WHERE n.id = ?)
		`
		args = append(args, beforeNodeID)
	}
	query += " ORDER BY nodes.created_at ASC, nodes.rowid ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []model.HistoryMessage
	for rows.Next() {
		var msg model.HistoryMessage
		if err := rows.Scan(&msg.NodeID, &msg.Role, &msg.Content); err != nil {
			return nil, err
		}
		history = append(history, msg)
	}
	return history, rows.Err()
}

func (r *sqliteRepository) ResolveInheritedContext(ctx context.Context, chatID string) (*model.ItemContext, error) {
	query := `
		SELECT chats.context_inheritance_mode, chats.context, chats.workspace_id, workspaces.context
		FROM chats
		LEFT JOIN workspaces ON chats.workspace_id = workspaces.id
		WHERE chats.id = ?
	`
	row := r.db.QueryRowContext(ctx, query, chatID)

	var mode model.ContextInheritanceMode
	var chatContext, workspaceID, workspaceContext sql.NullString
	if err := row.Scan(&mode, &chatContext, &workspaceID, &workspaceContext); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: chat %s", ErrNotFound, chatID)
		}
		return nil, err
	}

	switch mode {
	case model.InheritParent:
		item := &model.ItemContext{ItemType: "chat", ItemID: chatID}
		if chatContext.Valid {
			item.Context = &chatContext.String
		} else if workspaceContext.Valid {
			item.Context = &workspaceContext.String
		}
		return item, nil
	case model.InheritWorkspace:
		item := &model.ItemContext{ItemType: "workspace", ItemID: workspaceID.String}
		if workspaceContext.Valid {
			item.Context = &workspaceContext.String
		}
		return item, nil
	default:
		return &model.ItemContext{ItemType: "chat", ItemID: chatID}, nil
	}
}

func (r *sqliteRepository) ListActiveTools(ctx context.Context, chatID string) ([]model.Tool, error) {
	query := `
		SELECT tools.name, COALESCE(tools.description, ''), tools.input_schema
		FROM tools
		JOIN chat_tools ON chat_tools.tool_id = tools.id
		WHERE chat_tools.chat_id = ? AND chat_tools.active = TRUE
		ORDER BY tools.name ASC
	`
	rows, err := r.db.QueryContext(ctx, query, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tools []model.Tool
	for rows.Next() {
		var tool model.Tool
		if err := rows.Scan(&tool.Name, &tool.Description, &tool.InputSchema); err != nil {
			return nil, err
		}
		tools = append(tools, tool)
	}
	return tools, rows.Err()
}
