package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"youtrack_mcp/internal/model"
	"youtrack_mcp/internal/youtrack"
)

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return text.Text
}

func TestHandleGetIssue(t *testing.T) {
	var captured *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(r.Context())
		json.NewEncoder(w).Encode(model.Issue{
			IDReadable: "DEMO-1",
			Summary:    "Broken login button",
			Project:    model.Project{ShortName: "DEMO"},
		})
	}))
	defer srv.Close()

	h := &toolHandler{client: youtrack.New(youtrack.Settings{BaseURL: srv.URL, Token: "t"})}
	res, err := h.handleGetIssue(context.Background(), callRequest("youtrack_get_issue", map[string]any{
		"issue_id": "DEMO-1",
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	if captured.URL.Path != "/api/issues/DEMO-1" {
		t.Errorf("unexpected path: %s", captured.URL.Path)
	}
	if got := captured.URL.Query().Get("fields"); got != youtrack.DefaultIssueFields {
		t.Errorf("unexpected default projection: %s", got)
	}

	var issue model.Issue
	if err := json.Unmarshal([]byte(resultText(t, res)), &issue); err != nil {
		t.Fatalf("result is not valid JSON: %v", err)
	}
	if issue.IDReadable != "DEMO-1" || issue.Project.ShortName != "DEMO" {
		t.Errorf("unexpected issue payload: %+v", issue)
	}
}

func TestHandleGetIssueMissingID(t *testing.T) {
	h := &toolHandler{client: youtrack.New(youtrack.Settings{BaseURL: "http://localhost:0", Token: "t"})}
	if _, err := h.handleGetIssue(context.Background(), callRequest("youtrack_get_issue", map[string]any{})); err == nil {
		t.Fatal("expected error for missing issue_id")
	}
}

func TestHandleSearchIssuesDefaults(t *testing.T) {
	var captured *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(r.Context())
		json.NewEncoder(w).Encode([]model.Issue{})
	}))
	defer srv.Close()

	h := &toolHandler{client: youtrack.New(youtrack.Settings{BaseURL: srv.URL, Token: "t"})}
	_, err := h.handleSearchIssues(context.Background(), callRequest("youtrack_search_issues", map[string]any{
		"query": "project: DEMO",
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	q := captured.URL.Query()
	if got := q.Get("$top"); got != "100" {
		t.Errorf("omitted top should default to 100, got %s", got)
	}
	if got := q.Get("$skip"); got != "0" {
		t.Errorf("omitted skip should default to 0, got %s", got)
	}
	if got := q.Get("fields"); got != youtrack.DefaultSearchFields {
		t.Errorf("unexpected default projection: %s", got)
	}
}

func TestHandleSearchIssuesExplicitArguments(t *testing.T) {
	var captured *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(r.Context())
		json.NewEncoder(w).Encode([]model.Issue{{IDReadable: "DEMO-7"}})
	}))
	defer srv.Close()

	h := &toolHandler{client: youtrack.New(youtrack.Settings{BaseURL: srv.URL, Token: "t"})}
	// JSON numbers arrive as float64 through the protocol layer
	_, err := h.handleSearchIssues(context.Background(), callRequest("youtrack_search_issues", map[string]any{
		"query":         "state: Open",
		"fields":        "idReadable",
		"custom_fields": "Priority",
		"top":           float64(5),
		"skip":          float64(10),
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	q := captured.URL.Query()
	if got := q.Get("fields"); got != "idReadable,Priority" {
		t.Errorf("unexpected projection: %s", got)
	}
	if q.Get("$top") != "5" || q.Get("$skip") != "10" {
		t.Errorf("unexpected pagination: $top=%s $skip=%s", q.Get("$top"), q.Get("$skip"))
	}
}

func TestHandleUpdateIssue(t *testing.T) {
	var captured *http.Request
	var capturedBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(r.Context())
		capturedBody, _ = io.ReadAll(r.Body)
		json.NewEncoder(w).Encode(model.Issue{IDReadable: "DEMO-1", Summary: "x"})
	}))
	defer srv.Close()

	h := &toolHandler{client: youtrack.New(youtrack.Settings{BaseURL: srv.URL, Token: "t"})}
	res, err := h.handleUpdateIssue(context.Background(), callRequest("youtrack_update_issue", map[string]any{
		"issue_id": "DEMO-1",
		"data":     map[string]any{"summary": "x"},
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	if captured.Method != http.MethodPost || captured.URL.Path != "/api/issues/DEMO-1" {
		t.Errorf("unexpected request: %s %s", captured.Method, captured.URL.Path)
	}
	var body map[string]any
	if err := json.Unmarshal(capturedBody, &body); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if body["summary"] != "x" {
		t.Errorf("data should be sent verbatim, got %v", body)
	}
	if !strings.Contains(resultText(t, res), "DEMO-1") {
		t.Errorf("result should echo the updated issue: %s", resultText(t, res))
	}
}

func TestHandleUpdateIssueMissingData(t *testing.T) {
	h := &toolHandler{client: youtrack.New(youtrack.Settings{BaseURL: "http://localhost:0", Token: "t"})}
	if _, err := h.handleUpdateIssue(context.Background(), callRequest("youtrack_update_issue", map[string]any{
		"issue_id": "DEMO-1",
	})); err == nil {
		t.Fatal("expected error for missing data")
	}
}

func TestHandleAddComment(t *testing.T) {
	var captured *http.Request
	var capturedBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(r.Context())
		capturedBody, _ = io.ReadAll(r.Body)
		json.NewEncoder(w).Encode(model.Comment{ID: "c1", Text: "hello", Author: model.Author{Login: "jane"}})
	}))
	defer srv.Close()

	h := &toolHandler{client: youtrack.New(youtrack.Settings{BaseURL: srv.URL, Token: "t"})}
	res, err := h.handleAddComment(context.Background(), callRequest("youtrack_add_comment", map[string]any{
		"issue_id":     "DEMO-1",
		"comment_text": "hello",
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	if captured.Method != http.MethodPost || captured.URL.Path != "/api/issues/DEMO-1/comments" {
		t.Errorf("unexpected request: %s %s", captured.Method, captured.URL.Path)
	}
	var body map[string]any
	if err := json.Unmarshal(capturedBody, &body); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if body["text"] != "hello" {
		t.Errorf("comment text should be wrapped as {\"text\": ...}, got %v", body)
	}

	var comment model.Comment
	if err := json.Unmarshal([]byte(resultText(t, res)), &comment); err != nil {
		t.Fatalf("result is not valid JSON: %v", err)
	}
	if comment.Author.Login != "jane" {
		t.Errorf("unexpected comment payload: %+v", comment)
	}
}

func TestMutatingToolsInReadOnlyMode(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	h := &toolHandler{client: youtrack.New(youtrack.Settings{BaseURL: srv.URL, Token: "t", ReadOnly: true})}

	res, err := h.handleUpdateIssue(context.Background(), callRequest("youtrack_update_issue", map[string]any{
		"issue_id": "DEMO-1",
		"data":     map[string]any{"summary": "x"},
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if !strings.Contains(resultText(t, res), "read-only mode") {
		t.Errorf("update should report the read-only rejection: %s", resultText(t, res))
	}

	res, err = h.handleAddComment(context.Background(), callRequest("youtrack_add_comment", map[string]any{
		"issue_id":     "DEMO-1",
		"comment_text": "hello",
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if !strings.Contains(resultText(t, res), "read-only mode") {
		t.Errorf("comment should report the read-only rejection: %s", resultText(t, res))
	}

	if requests != 0 {
		t.Errorf("read-only rejection must not reach the backend, saw %d requests", requests)
	}
}

func TestBackendErrorFlattensIntoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Issue not found"}`))
	}))
	defer srv.Close()

	h := &toolHandler{client: youtrack.New(youtrack.Settings{BaseURL: srv.URL, Token: "t"})}
	res, err := h.handleGetIssue(context.Background(), callRequest("youtrack_get_issue", map[string]any{
		"issue_id": "NOPE-1",
	}))
	if err != nil {
		t.Fatalf("backend errors must not become handler errors: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(resultText(t, res)), &payload); err != nil {
		t.Fatalf("result is not valid JSON: %v", err)
	}
	if _, ok := payload["error"]; !ok {
		t.Errorf("expected a flattened error mapping, got %v", payload)
	}
}
