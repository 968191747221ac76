package youtrack

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Default field projections, matching the YouTrack REST API convention
// of nested field selection.
const (
	DefaultSearchFields  = "idReadable,summary,project(shortName)"
	DefaultIssueFields   = "idReadable,summary,description,project(shortName),customFields(projectCustomField(field(name)),value(name,login,fullName,text))"
	DefaultUpdateFields  = "idReadable,summary"
	DefaultCommentFields = "id,text,author(login)"
)

// Default pagination for SearchIssues.
const (
	DefaultTop  = 100
	DefaultSkip = 0
)

// joinFields appends customFields to a projection with a single comma.
// An empty addition returns the projection unchanged: no duplicated
// separator, no leading or trailing comma.
func joinFields(fields, customFields string) string {
	if customFields == "" {
		return fields
	}
	if fields == "" {
		return customFields
	}
	return fields + "," + customFields
}

// SearchIssues searches for issues using YouTrack query syntax. An empty
// fields argument selects DefaultSearchFields. top and skip are passed
// through to the backend's $top/$skip parameters unmodified; bounds
// checking is the backend's responsibility.
func (c *Client) SearchIssues(ctx context.Context, query, fields, customFields string, top, skip int) any {
	if fields == "" {
		fields = DefaultSearchFields
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("fields", joinFields(fields, customFields))
	params.Set("$top", strconv.Itoa(top))
	params.Set("$skip", strconv.Itoa(skip))
	return c.Execute(ctx, http.MethodGet, "issues", params, nil)
}

// GetIssue fetches one issue by its readable ID (e.g. "PROJ-123"). An
// empty fields argument selects the broad DefaultIssueFields projection.
func (c *Client) GetIssue(ctx context.Context, issueID, fields, customFields string) any {
	if fields == "" {
		fields = DefaultIssueFields
	}
	params := url.Values{}
	params.Set("fields", joinFields(fields, customFields))
	return c.Execute(ctx, http.MethodGet, "issues/"+issueID, params, nil)
}

// UpdateIssue updates an issue, sending data verbatim as the JSON body.
// The caller shapes custom-field payloads, e.g.
// {"Field Name": {"name": "Value"}} for enum fields or
// {"Field Name": {"login": "user"}} for user fields; no validation or
// transformation happens here. Rejected before any network call when the
// client is read-only.
func (c *Client) UpdateIssue(ctx context.Context, issueID string, data map[string]any, fields string) any {
	if c.readOnly {
		return readOnlyError("update_issue").Result()
	}
	if fields == "" {
		fields = DefaultUpdateFields
	}
	params := url.Values{}
	params.Set("fields", fields)
	return c.Execute(ctx, http.MethodPost, "issues/"+issueID, params, data)
}

// AddComment adds a comment to an issue. fields governs what is returned
// about the created comment. Rejected before any network call when the
// client is read-only.
func (c *Client) AddComment(ctx context.Context, issueID, commentText, fields string) any {
	if c.readOnly {
		return readOnlyError("add_comment").Result()
	}
	if fields == "" {
		fields = DefaultCommentFields
	}
	params := url.Values{}
	params.Set("fields", fields)
	body := map[string]any{"text": commentText}
	return c.Execute(ctx, http.MethodPost, "issues/"+issueID+"/comments", params, body)
}
