package jira

// Ticket is a fully fetched issue with its fields normalized to plain
// strings and slices. Custom fields arrive from the API in several shapes
// (scalar, object, list of objects); normalization happens at decode time
// so the rest of the system never sees raw JSON.
type Ticket struct {
	Key             string
	Summary         string
	Description     string
	Status          string
	StatusCategory  string
	Resolution      string
	Priority        string
	Severity        string
	Origins         []string
	AffectsVersions []string
	FixVersions     []string
	Created         string
	Updated         string
	Resolved        string
	Comments        []Comment
	Links           []IssueLink
	ImageNotes      []ImageNote
}

// Comment is one comment on a ticket.
type Comment struct {
	Author  string
	Created string
	Body    string
}

// IssueLink records a relation to another issue.
type IssueLink struct {
	Type      string
	Direction string
	Key       string
	Summary   string
}

// ImageNote is extracted content for one image attachment: OCR text or a
// model-generated caption, produced by a separate enrichment step.
type ImageNote struct {
	Filename string
	Caption  string
	Text     string
}
