package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loomchat/backend/internal/model"
	"loomchat/backend/internal/repository"
)

func setupMockDB(t *testing.T) (repository.Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return repository.NewSQLiteRepository(db), mock
}

func generationContextRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"branch_id", "chat_id", "chat_context", "context_inheritance_mode",
		"model_id", "model_name", "model_request_template",
		"base_url", "path", "method", "compatibility", "request_template", "streaming",
	}).AddRow(
		"branch-1", "chat-1", nil, "none",
		"model-1", "test-model", nil,
		"http://provider.local", "/v1/chat/completions", "POST", "openai", nil, true,
	)
}

func TestGetGenerationContext(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT(.|\n)+FROM branches").
		WithArgs("chat_stream", "branch-1").
		WillReturnRows(generationContextRow())

	genCtx, err := repo.GetGenerationContext(context.Background(), "branch-1")
	require.NoError(t, err)

	assert.Equal(t, "branch-1", genCtx.BranchID)
	assert.Equal(t, "chat-1", genCtx.ChatID)
	assert.Equal(t, model.InheritNone, genCtx.InheritanceMode)
	assert.Equal(t, "test-model", genCtx.ModelName)
	assert.Equal(t, model.CompatibilityOpenAI, genCtx.Compatibility)
	assert.True(t, genCtx.Streaming)
	assert.Nil(t, genCtx.ChatContext)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetGenerationContext_IncompleteChainIsNotFound(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT(.|\n)+FROM branches").
		WithArgs("chat_stream", "branch-x").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetGenerationContext(context.Background(), "branch-x")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateChatPair_IsOneTransaction(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectBegin()
	// User turn: node, version, active pointer.
	mock.ExpectExec("INSERT INTO nodes").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO node_messages").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE nodes SET active_message_id").WillReturnResult(sqlmock.NewResult(0, 1))
	// Assistant turn.
	mock.ExpectExec("INSERT INTO nodes").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO node_messages").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE nodes SET active_message_id").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	pair, err := repo.CreateChatPair(context.Background(), "branch-1", "Hello", "model-1")
	require.NoError(t, err)

	assert.NotEmpty(t, pair.UserNodeID)
	assert.NotEmpty(t, pair.UserMessageID)
	assert.NotEmpty(t, pair.AssistantNodeID)
	assert.NotEmpty(t, pair.AssistantMessageID)
	assert.NotEqual(t, pair.UserMessageID, pair.AssistantMessageID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateChatPair_RollsBackOnFailure(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO nodes").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO node_messages").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := repo.CreateChatPair(context.Background(), "branch-1", "Hello", "model-1")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRegenVersion_AllocatesTheNextVersionNumber(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(version_number\)`).
		WithArgs("node-1").
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(4))
	mock.ExpectExec("INSERT INTO node_messages").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE nodes SET active_message_id").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	version, err := repo.CreateRegenVersion(context.Background(), "node-1", "model-2")
	require.NoError(t, err)

	assert.Equal(t, int64(4), version.VersionNumber)
	assert.Equal(t, model.MessageStatusGenerating, version.Status)
	assert.Equal(t, "model-2", version.ModelID)
	assert.Equal(t, "node-1", version.NodeID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRegenVersion_MissingNodeIsNotFound(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(version_number\)`).
		WithArgs("node-x").
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(0))
	mock.ExpectExec("INSERT INTO node_messages").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE nodes SET active_message_id").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.CreateRegenVersion(context.Background(), "node-x", "model-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBranchHistory_ScopesStrictlyBeforeANode(t *testing.T) {
	repo, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "role", "content"}).
		AddRow("node-1", "user", "Hello").
		AddRow("node-2", "assistant", "Hi there")
	mock.ExpectQuery("SELECT nodes.id, nodes.role, node_messages.content").
		WithArgs("branch-1", "node-3").
		WillReturnRows(rows)

	history, err := repo.GetBranchHistory(context.Background(), "branch-1", "node-3")
	require.NoError(t, err)

	require.Len(t, history, 2)
	assert.Equal(t, model.NodeRoleUser, history[0].Role)
	assert.Equal(t, "Hello", history[0].Content)
	assert.Equal(t, "Hi there", history[1].Content)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveInheritedContext(t *testing.T) {
	columns := []string{"context_inheritance_mode", "context", "workspace_id", "workspace_context"}

	t.Run("none yields no context", func(t *testing.T) {
		repo, mock := setupMockDB(t)
		mock.ExpectQuery("SELECT chats.context_inheritance_mode").
			WithArgs("chat-1").
			WillReturnRows(sqlmock.NewRows(columns).AddRow("none", "chat ctx", "ws-1", "ws ctx"))

		item, err := repo.ResolveInheritedContext(context.Background(), "chat-1")
		require.NoError(t, err)
		assert.Nil(t, item.Context)
	})

	t.Run("parent prefers the chat's own context", func(t *testing.T) {
		repo, mock := setupMockDB(t)
		mock.ExpectQuery("SELECT chats.context_inheritance_mode").
			WithArgs("chat-1").
			WillReturnRows(sqlmock.NewRows(columns).AddRow("parent", "chat ctx", "ws-1", "ws ctx"))

		item, err := repo.ResolveInheritedContext(context.Background(), "chat-1")
		require.NoError(t, err)
		require.NotNil(t, item.Context)
		assert.Equal(t, "chat ctx", *item.Context)
	})

	t.Run("parent falls back to the workspace", func(t *testing.T) {
		repo, mock := setupMockDB(t)
		mock.ExpectQuery("SELECT chats.context_inheritance_mode").
			WithArgs("chat-1").
			WillReturnRows(sqlmock.NewRows(columns).AddRow("parent", nil, "ws-1", "ws ctx"))

		item, err := repo.ResolveInheritedContext(context.Background(), "chat-1")
		require.NoError(t, err)
		require.NotNil(t, item.Context)
		assert.Equal(t, "ws ctx", *item.Context)
	})

	t.Run("workspace uses the workspace context", func(t *testing.T) {
		repo, mock := setupMockDB(t)
		mock.ExpectQuery("SELECT chats.context_inheritance_mode").
			WithArgs("chat-1").
			WillReturnRows(sqlmock.NewRows(columns).AddRow("workspace", "chat ctx", "ws-1", "ws ctx"))

		item, err := repo.ResolveInheritedContext(context.Background(), "chat-1")
		require.NoError(t, err)
		assert.Equal(t, "workspace", item.ItemType)
		assert.Equal(t, "ws-1", item.ItemID)
		require.NotNil(t, item.Context)
		assert.Equal(t, "ws ctx", *item.Context)
	})

	t.Run("missing chat is not found", func(t *testing.T) {
		repo, mock := setupMockDB(t)
		mock.ExpectQuery("SELECT chats.context_inheritance_mode").
			WithArgs("chat-x").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.ResolveInheritedContext(context.Background(), "chat-x")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestListActiveTools(t *testing.T) {
	repo, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"name", "description", "input_schema"}).
		AddRow("get_weather", "weather lookup", `{"type":"object"}`)
	mock.ExpectQuery("SELECT tools.name").
		WithArgs("chat-1").
		WillReturnRows(rows)

	tools, err := repo.ListActiveTools(context.Background(), "chat-1")
	require.NoError(t, err)

	require.Len(t, tools, 1)
	assert.Equal(t, "get_weather", tools[0].Name)
	assert.Equal(t, `{"type":"object"}`, tools[0].InputSchema)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMessageContentAndStatus(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectExec("UPDATE node_messages SET content").
		WithArgs("Hi there", sqlmock.AnyArg(), "msg-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE node_messages SET status").
		WithArgs("done", sqlmock.AnyArg(), "msg-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateMessageContent(context.Background(), "msg-1", "Hi there"))
	require.NoError(t, repo.UpdateMessageStatus(context.Background(), "msg-1", model.MessageStatusDone))

	assert.NoError(t, mock.ExpectationsWereMet())
}
