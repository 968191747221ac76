package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"youtrack_mcp/internal/logger"
	"youtrack_mcp/internal/youtrack"
)

// toolHandler carries the YouTrack client into the tool handlers
type toolHandler struct {
	client *youtrack.Client
}

// registerYouTrackTools registers all YouTrack-related tools with the
// server and returns the listing used by the mcp://tools/list resource.
func registerYouTrackTools(s *server.MCPServer, client *youtrack.Client) ([]ToolInfo, error) {
	h := &toolHandler{client: client}

	// Search issues tool
	searchTool := mcp.NewTool("youtrack_search_issues",
		mcp.WithDescription("Search for issues in YouTrack using a query"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The search query string (YouTrack query syntax)"),
		),
		mcp.WithString("fields",
			mcp.Description("Comma-separated list of fields to return for each issue"),
			mcp.DefaultString(youtrack.DefaultSearchFields),
		),
		mcp.WithString("custom_fields",
			mcp.Description("Additional comma-separated list of custom fields to include"),
		),
		mcp.WithNumber("top",
			mcp.Description("The maximum number of issues to return"),
			mcp.DefaultNumber(youtrack.DefaultTop),
		),
		mcp.WithNumber("skip",
			mcp.Description("The number of issues to skip from the beginning of the results"),
			mcp.DefaultNumber(youtrack.DefaultSkip),
		),
	)

	// Get issue tool
	getTool := mcp.NewTool("youtrack_get_issue",
		mcp.WithDescription("Get details for a specific YouTrack issue by its ID"),
		mcp.WithString("issue_id",
			mcp.Required(),
			mcp.Description("The ID of the issue (e.g., 'PROJ-123')"),
		),
		mcp.WithString("fields",
			mcp.Description("Comma-separated list of fields to return for the issue"),
			mcp.DefaultString(youtrack.DefaultIssueFields),
		),
		mcp.WithString("custom_fields",
			mcp.Description("Additional comma-separated list of custom fields to include"),
		),
	)

	// Update issue tool
	updateTool := mcp.NewTool("youtrack_update_issue",
		mcp.WithDescription("Update an existing YouTrack issue by its ID"),
		mcp.WithString("issue_id",
			mcp.Required(),
			mcp.Description("The ID of the issue to update (e.g., 'PROJ-123')"),
		),
		mcp.WithObject("data",
			mcp.Required(),
			mcp.Description("The fields to update and their new values. For custom fields use the field name as the key and a typed value, e.g. {\"Custom Field Name\": {\"name\": \"New Value\"}} for enum types or {\"Custom User Field\": {\"login\": \"user.login\"}} for user types"),
		),
		mcp.WithString("fields",
			mcp.Description("Comma-separated list of fields to return for the updated issue"),
			mcp.DefaultString(youtrack.DefaultUpdateFields),
		),
	)

	// Add comment tool
	commentTool := mcp.NewTool("youtrack_add_comment",
		mcp.WithDescription("Add a comment to a YouTrack issue"),
		mcp.WithString("issue_id",
			mcp.Required(),
			mcp.Description("The ID of the issue to comment on (e.g., 'PROJ-123')"),
		),
		mcp.WithString("comment_text",
			mcp.Required(),
			mcp.Description("The text content of the comment"),
		),
		mcp.WithString("fields",
			mcp.Description("Comma-separated list of fields to return for the created comment"),
			mcp.DefaultString(youtrack.DefaultCommentFields),
		),
	)

	// Register tools with handlers
	s.AddTool(searchTool, h.handleSearchIssues)
	s.AddTool(getTool, h.handleGetIssue)
	s.AddTool(updateTool, h.handleUpdateIssue)
	s.AddTool(commentTool, h.handleAddComment)

	tools := []ToolInfo{
		{Name: searchTool.Name, Description: searchTool.Description},
		{Name: getTool.Name, Description: getTool.Description},
		{Name: updateTool.Name, Description: updateTool.Description},
		{Name: commentTool.Name, Description: commentTool.Description},
	}

	return tools, nil
}

func (h *toolHandler) handleSearchIssues(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, ok := request.Params.Arguments["query"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid query parameter")
	}

	fields := ""
	if f, ok := request.Params.Arguments["fields"].(string); ok {
		fields = f
	}
	customFields := ""
	if cf, ok := request.Params.Arguments["custom_fields"].(string); ok {
		customFields = cf
	}
	top := youtrack.DefaultTop
	if v, ok := request.Params.Arguments["top"].(float64); ok {
		top = int(v)
	}
	skip := youtrack.DefaultSkip
	if v, ok := request.Params.Arguments["skip"].(float64); ok {
		skip = int(v)
	}

	logger.GetLogger().Info("searching youtrack issues", zap.String("query", query))
	return toolResult(h.client.SearchIssues(ctx, query, fields, customFields, top, skip))
}

func (h *toolHandler) handleGetIssue(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	issueID, ok := request.Params.Arguments["issue_id"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid issue_id parameter")
	}

	fields := ""
	if f, ok := request.Params.Arguments["fields"].(string); ok {
		fields = f
	}
	customFields := ""
	if cf, ok := request.Params.Arguments["custom_fields"].(string); ok {
		customFields = cf
	}

	logger.GetLogger().Info("getting youtrack issue", zap.String("issue_id", issueID))
	return toolResult(h.client.GetIssue(ctx, issueID, fields, customFields))
}

func (h *toolHandler) handleUpdateIssue(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	issueID, ok := request.Params.Arguments["issue_id"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid issue_id parameter")
	}
	data, ok := request.Params.Arguments["data"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid data parameter")
	}

	fields := ""
	if f, ok := request.Params.Arguments["fields"].(string); ok {
		fields = f
	}

	logger.GetLogger().Info("updating youtrack issue", zap.String("issue_id", issueID))
	return toolResult(h.client.UpdateIssue(ctx, issueID, data, fields))
}

func (h *toolHandler) handleAddComment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	issueID, ok := request.Params.Arguments["issue_id"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid issue_id parameter")
	}
	commentText, ok := request.Params.Arguments["comment_text"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid comment_text parameter")
	}

	fields := ""
	if f, ok := request.Params.Arguments["fields"].(string); ok {
		fields = f
	}

	logger.GetLogger().Info("adding comment to youtrack issue", zap.String("issue_id", issueID))
	return toolResult(h.client.AddComment(ctx, issueID, commentText, fields))
}

// toolResult serializes an operation result (the decoded body or the
// {"error": ...} mapping) into the MCP text result shape.
func toolResult(result any) (*mcp.CallToolResult, error) {
	jsonResult, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %v", err)
	}
	return mcp.NewToolResultText(string(jsonResult)), nil
}
