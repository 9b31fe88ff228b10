package jira

import (
	"fmt"
	"strings"

	"dupfinder-ai/internal/ticket"
)

const (
	heavyRule = "================================================================================"
	lightRule = "--------------------------------------------------------------------------------"
	shortRule = "----------------------------------------"
)

// ConsolidatedText builds the single text document that gets embedded for
// a ticket. The layout is deliberately weighted: the summary is repeated
// under several labels and the description appears twice, so the fields
// that matter most for duplicate detection dominate the embedding.
func ConsolidatedText(t *Ticket) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line(heavyRule)
	line("PRIMARY ISSUE SUMMARY")
	line(heavyRule)

	summary := orNA(t.Summary)
	line("PROBLEM: %s", summary)
	line("ISSUE: %s", summary)
	line("SUMMARY: %s", summary)
	line("")

	line("SEVERITY: %s", orNA(t.Severity))
	line("PRIORITY: %s", orNA(t.Priority))
	line("CATEGORY: %s", joinOrNA(t.Origins))
	line("")

	if len(t.AffectsVersions) > 0 {
		affects := strings.Join(t.AffectsVersions, ", ")
		line(heavyRule)
		line("AFFECTED SOFTWARE VERSIONS (CRITICAL)")
		line(heavyRule)
		line("VERSION: %s", affects)
		line("AFFECTS VERSION: %s", affects)
		line("SOFTWARE VERSION: %s", affects)
		line("")
		line(heavyRule)
		line("")
	}

	description := t.Description
	if description == "" {
		description = "No description available"
	}
	line(heavyRule)
	line("PROBLEM DESCRIPTION (PRIMARY)")
	line(heavyRule)
	line("%s", description)
	line("")
	line(heavyRule)
	line("")

	if len(t.Comments) > 0 {
		line(heavyRule)
		line("KEY DISCUSSION AND ANALYSIS (%d comments)", len(t.Comments))
		line(heavyRule)
		for i, comment := range t.Comments {
			line("")
			line("Comment #%d by %s on %s:", i+1, comment.Author, comment.Created)
			line("%s", comment.Body)
			line(shortRule)
		}
		line("")
		line(heavyRule)
		line("")
	}

	line(heavyRule)
	line("COMPLETE TICKET METADATA")
	line(heavyRule)
	line("")
	line("TICKET ID: %s", orNA(t.Key))
	line("STATUS: %s", orNA(t.Status))
	line("STATUS CATEGORY: %s", orNA(t.StatusCategory))
	line("RESOLUTION: %s", orNA(t.Resolution))
	line("AFFECTS VERSIONS: %s", joinOrNA(t.AffectsVersions))
	line("FIX VERSIONS: %s", joinOrNA(t.FixVersions))
	line("CREATED: %s", orNA(t.Created))
	line("UPDATED: %s", orNA(t.Updated))
	line("RESOLVED: %s", orNA(t.Resolved))
	line("")
	line(heavyRule)
	line("")

	line("FULL DESCRIPTION:")
	line(lightRule)
	line("%s", description)
	line("")
	line(heavyRule)
	line("")

	if len(t.ImageNotes) > 0 {
		line("ATTACHED IMAGES (%d):", len(t.ImageNotes))
		line(lightRule)
		for i, img := range t.ImageNotes {
			line("")
			line("Image %d: %s", i+1, img.Filename)
			line("Caption: %s", img.Caption)
			if img.Text != "" {
				line("Visible Text: %s", img.Text)
			}
			line(shortRule)
		}
		line("")
		line(heavyRule)
		line("")
	}

	if len(t.Links) > 0 {
		line("ISSUE LINKS:")
		line(lightRule)
		for _, link := range t.Links {
			line("  [%s] %s: %s - %s", link.Direction, link.Type, link.Key, link.Summary)
		}
		line("")
	}

	return b.String()
}

// Metadata flattens the ticket fields that travel with every stored chunk.
// Values are always present, defaulting to "N/A", so chunks of one ticket
// carry byte-identical metadata regardless of which fields were set.
func Metadata(t *Ticket) map[string]string {
	return map[string]string{
		ticket.MetaSummary:    orNA(t.Summary),
		ticket.MetaStatus:     orNA(t.Status),
		ticket.MetaResolution: orNA(t.Resolution),
		ticket.MetaPriority:   orNA(t.Priority),
		"severity":            orNA(t.Severity),
		"origins":             joinOrNA(t.Origins),
		"affects_versions":    joinOrNA(t.AffectsVersions),
		"fix_versions":        joinOrNA(t.FixVersions),
		"created":             orNA(t.Created),
		"updated":             orNA(t.Updated),
	}
}

// Document packages the ticket for indexing.
func Document(t *Ticket) ticket.Document {
	return ticket.Document{
		ID:       t.Key,
		Text:     ConsolidatedText(t),
		Metadata: Metadata(t),
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func joinOrNA(values []string) string {
	if len(values) == 0 {
		return "N/A"
	}
	return strings.Join(values, ", ")
}
