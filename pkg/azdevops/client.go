// Package azdevops provides a minimal Azure DevOps Git REST client for the
// pull request operations prflight needs: create, comment, read, and patch.
//
// Each operation is expressed as a request builder so the dry-run previews
// print exactly the payload a real call would send.
package azdevops

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	pferrors "github.com/prflight/prflight/pkg/errors"
)

const apiVersion = "7.1-preview.1"

// DescriptionSentinel marks a PR description that already carries generated
// content. UpdateDescriptionIfAbsent never patches past it.
const DescriptionSentinel = "AI Suggested Description"

// Client is an Azure DevOps Git API client scoped to one repository.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the given organization, project and
// repository. The token is sent as a bearer credential on every request.
func NewClient(orgURL, project, repoID, token string, logger *slog.Logger) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), ts)

	base := fmt.Sprintf("%s/%s/_apis/git/repositories/%s",
		strings.TrimRight(orgURL, "/"),
		url.PathEscape(project),
		url.PathEscape(repoID))

	return &Client{
		baseURL:    base,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Request describes one API call. Builders produce it and both the real
// execution path and the dry-run preview consume it, so the two can never
// drift apart.
type Request struct {
	Method string
	URL    string
	Body   any
}

// Dump renders the request for a dry-run preview.
func (r Request) Dump() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", r.Method, r.URL)
	if r.Body != nil {
		payload, err := json.MarshalIndent(r.Body, "", "  ")
		if err == nil {
			b.Write(payload)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// NewCreatePRRequest builds the pull request creation call.
func (c *Client) NewCreatePRRequest(source, target, title, description string) Request {
	return Request{
		Method: http.MethodPost,
		URL:    fmt.Sprintf("%s/pullrequests?api-version=%s", c.baseURL, apiVersion),
		Body: createPRRequest{
			SourceRefName: ToRef(source),
			TargetRefName: ToRef(target),
			Title:         title,
			Description:   description,
		},
	}
}

// NewCommentRequest builds the comment thread call.
func (c *Client) NewCommentRequest(prID int, content string) Request {
	return Request{
		Method: http.MethodPost,
		URL:    fmt.Sprintf("%s/pullRequests/%d/threads?api-version=%s", c.baseURL, prID, apiVersion),
		Body: threadRequest{
			Comments: []threadComment{{
				ParentCommentID: 0,
				Content:         content,
				CommentType:     1,
			}},
			Status: 1,
		},
	}
}

// NewGetPRRequest builds the pull request read call.
func (c *Client) NewGetPRRequest(prID int) Request {
	return Request{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/pullRequests/%d?api-version=%s", c.baseURL, prID, apiVersion),
	}
}

// NewUpdateDescriptionRequest builds the description patch call.
func (c *Client) NewUpdateDescriptionRequest(prID int, description string) Request {
	return Request{
		Method: http.MethodPatch,
		URL:    fmt.Sprintf("%s/pullRequests/%d?api-version=%s", c.baseURL, prID, apiVersion),
		Body:   updateDescriptionRequest{Description: description},
	}
}

// CreatePR creates a pull request and returns the created resource.
func (c *Client) CreatePR(ctx context.Context, source, target, title, description string) (*PRInfo, error) {
	var pr PRInfo
	req := c.NewCreatePRRequest(source, target, title, description)
	if err := c.do(ctx, "CreatePR", req, &pr); err != nil {
		return nil, err
	}
	return &pr, nil
}

// PostComment posts a new active comment thread on a pull request.
func (c *Client) PostComment(ctx context.Context, prID int, content string) error {
	return c.do(ctx, "PostComment", c.NewCommentRequest(prID, content), nil)
}

// GetPR fetches a pull request.
func (c *Client) GetPR(ctx context.Context, prID int) (*PRInfo, error) {
	var pr PRInfo
	if err := c.do(ctx, "GetPR", c.NewGetPRRequest(prID), &pr); err != nil {
		return nil, err
	}
	return &pr, nil
}

// UpdateDescription replaces the pull request description.
func (c *Client) UpdateDescription(ctx context.Context, prID int, description string) error {
	return c.do(ctx, "UpdateDescription", c.NewUpdateDescriptionRequest(prID, description), nil)
}

// UpdateDescriptionIfAbsent appends generated content to the PR description
// unless the sentinel marker is already present. It reports whether the
// update was skipped.
func (c *Client) UpdateDescriptionIfAbsent(ctx context.Context, prID int, generated string) (bool, error) {
	pr, err := c.GetPR(ctx, prID)
	if err != nil {
		return false, err
	}

	if strings.Contains(pr.Description, DescriptionSentinel) {
		c.logDebug("description already carries generated content", "pr_id", prID)
		return true, nil
	}

	updated := MergeDescription(pr.Description, generated)
	if err := c.UpdateDescription(ctx, prID, updated); err != nil {
		return false, err
	}
	return false, nil
}

// MergeDescription appends generated content to an existing description
// under the sentinel marker.
func MergeDescription(current, generated string) string {
	merged := current + "\n\n---\n" + DescriptionSentinel + "\n\n" + generated
	return strings.TrimSpace(merged)
}

// do executes a request and decodes the response into out when non-nil.
func (c *Client) do(ctx context.Context, operation string, req Request, out any) error {
	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return pferrors.NewDevOpsErrorWithCause(operation, "failed to marshal request", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return pferrors.NewDevOpsErrorWithCause(operation, "failed to create request", err)
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	c.logDebug("api request", "operation", operation, "method", req.Method, "url", req.URL)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pferrors.NewDevOpsErrorWithCause(operation, "request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return pferrors.NewDevOpsErrorWithCause(operation, "failed to read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := strings.TrimSpace(string(respBody))
		if detail == "" {
			detail = http.StatusText(resp.StatusCode)
		}
		return pferrors.NewDevOpsErrorWithStatus(operation, resp.StatusCode, detail)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return pferrors.NewDevOpsErrorWithCause(operation, "failed to parse response", err)
		}
	}
	return nil
}

// logDebug logs a debug message if verbose logging is enabled.
func (c *Client) logDebug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
