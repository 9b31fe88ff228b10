package jira

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrTicketNotFound is returned when the tracker has no issue with the
// requested key, or the token cannot see it.
var ErrTicketNotFound = errors.New("ticket not found")

// Client fetches issues from a JIRA REST API (v2).
type Client struct {
	BaseURL  string
	APIToken string
	client   *http.Client
}

// NewClient creates a new JIRA client.
func NewClient(baseURL, apiToken string) *Client {
	return &Client{
		BaseURL:  baseURL,
		APIToken: apiToken,
		client:   http.DefaultClient,
	}
}

type namedField struct {
	Name           string `json:"name"`
	StatusCategory *struct {
		Name string `json:"name"`
	} `json:"statusCategory"`
}

type issueResponse struct {
	Key    string `json:"key"`
	Fields struct {
		Summary        string          `json:"summary"`
		Description    string          `json:"description"`
		Status         *namedField     `json:"status"`
		Resolution     *namedField     `json:"resolution"`
		Priority       *namedField     `json:"priority"`
		Created        string          `json:"created"`
		Updated        string          `json:"updated"`
		ResolutionDate string          `json:"resolutiondate"`
		Versions       []namedField    `json:"versions"`
		FixVersions    []namedField    `json:"fixVersions"`
		Severity       json.RawMessage `json:"customfield_10014"`
		Origins        json.RawMessage `json:"customfield_11401"`
		Comment        struct {
			Comments []struct {
				Body   string `json:"body"`
				Author struct {
					DisplayName string `json:"displayName"`
				} `json:"author"`
				Created string `json:"created"`
			} `json:"comments"`
		} `json:"comment"`
		IssueLinks []struct {
			Type struct {
				Name string `json:"name"`
			} `json:"type"`
			OutwardIssue *linkedIssue `json:"outwardIssue"`
			InwardIssue  *linkedIssue `json:"inwardIssue"`
		} `json:"issuelinks"`
	} `json:"fields"`
}

type linkedIssue struct {
	Key    string `json:"key"`
	Fields struct {
		Summary string `json:"summary"`
	} `json:"fields"`
}

// FetchTicket fetches one issue by key and normalizes its fields.
func (c *Client) FetchTicket(ctx context.Context, key string) (*Ticket, error) {
	url := fmt.Sprintf("%s/rest/api/2/issue/%s?expand=changelog,renderedFields", c.BaseURL, key)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIToken))
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrTicketNotFound, key)
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("authentication failed for %s: status %d", key, resp.StatusCode)
	default:
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var issue issueResponse
	if err := json.NewDecoder(resp.Body).Decode(&issue); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return ticketFromIssue(&issue), nil
}

func ticketFromIssue(issue *issueResponse) *Ticket {
	fields := &issue.Fields

	t := &Ticket{
		Key:         issue.Key,
		Summary:     fields.Summary,
		Description: fields.Description,
		Created:     fields.Created,
		Updated:     fields.Updated,
		Resolved:    fields.ResolutionDate,
		Severity:    normalizeValueField(fields.Severity),
		Origins:     normalizeValueList(fields.Origins),
	}

	if fields.Status != nil {
		t.Status = fields.Status.Name
		if fields.Status.StatusCategory != nil {
			t.StatusCategory = fields.Status.StatusCategory.Name
		}
	}
	if fields.Resolution != nil {
		t.Resolution = fields.Resolution.Name
	}
	if fields.Priority != nil {
		t.Priority = fields.Priority.Name
	}

	for _, v := range fields.Versions {
		t.AffectsVersions = append(t.AffectsVersions, v.Name)
	}
	for _, v := range fields.FixVersions {
		t.FixVersions = append(t.FixVersions, v.Name)
	}

	for _, c := range fields.Comment.Comments {
		author := c.Author.DisplayName
		if author == "" {
			author = "Unknown"
		}
		t.Comments = append(t.Comments, Comment{
			Author:  author,
			Created: c.Created,
			Body:    c.Body,
		})
	}

	for _, link := range fields.IssueLinks {
		if link.OutwardIssue != nil {
			t.Links = append(t.Links, IssueLink{
				Type:      link.Type.Name,
				Direction: "outward",
				Key:       link.OutwardIssue.Key,
				Summary:   link.OutwardIssue.Fields.Summary,
			})
		}
		if link.InwardIssue != nil {
			t.Links = append(t.Links, IssueLink{
				Type:      link.Type.Name,
				Direction: "inward",
				Key:       link.InwardIssue.Key,
				Summary:   link.InwardIssue.Fields.Summary,
			})
		}
	}

	return t
}

// normalizeValueField flattens a custom field that may arrive as a bare
// string, a number, or an object with a "value" key.
func normalizeValueField(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var obj struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Value != "" {
		return obj.Value
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return json.Number(raw).String()
	}

	return string(raw)
}

// normalizeValueList flattens a custom field that may arrive as a list of
// strings or objects, a single object, or a scalar.
func normalizeValueList(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err == nil {
		values := make([]string, 0, len(items))
		for _, item := range items {
			if v := normalizeValueField(item); v != "" {
				values = append(values, v)
			}
		}
		return values
	}

	if v := normalizeValueField(raw); v != "" {
		return []string{v}
	}
	return nil
}
