package analysis

import (
	"fmt"
	"strings"

	"dupfinder-ai/internal/jira"
	"dupfinder-ai/internal/similarity"
	"dupfinder-ai/internal/ticket"
)

const systemPrompt = "You are an expert AI Support Analyst. Your job is to provide a concise, " +
	"insightful summary for new engineering tickets by analyzing historical data."

const maxCommentBytes = 500

// BuildPrompt assembles the analysis prompt: the new ticket's full context
// followed by the reassembled content of the most similar historical
// tickets and the task instructions.
func BuildPrompt(t *jira.Ticket, similar []similarity.RankedTicket) string {
	var b strings.Builder

	b.WriteString(`You will be given the full context of a new JIRA ticket and the complete content from the most similar historical tickets. Some historical tickets may have been split into multiple chunks for storage - you will receive ALL chunks for each ticket.

Your task is to synthesize this information and generate a clear, actionable summary to be posted as a single comment on the new ticket.

---

## CONTEXT

### 1. New Ticket Information:

`)
	fmt.Fprintf(&b, "* **ID:** %s\n", orNA(t.Key))
	fmt.Fprintf(&b, "* **Summary:** %s\n", orNA(t.Summary))
	fmt.Fprintf(&b, "* **Status:** %s (%s)\n", orNA(t.Status), orNA(t.StatusCategory))
	fmt.Fprintf(&b, "* **Priority:** %s\n", orNA(t.Priority))
	fmt.Fprintf(&b, "* **Severity:** %s\n", orNA(t.Severity))
	fmt.Fprintf(&b, "* **Origins:** %s\n", joinOrNA(t.Origins))
	fmt.Fprintf(&b, "* **Affects Versions:** %s\n", joinOrNA(t.AffectsVersions))
	fmt.Fprintf(&b, "* **Fix Versions:** %s\n", joinOrNA(t.FixVersions))
	fmt.Fprintf(&b, "* **Created:** %s\n", orNA(t.Created))
	fmt.Fprintf(&b, "* **Resolution:** %s\n", orNA(t.Resolution))

	description := t.Description
	if description == "" {
		description = "No description available"
	}
	fmt.Fprintf(&b, "\n**Description:**\n```\n%s\n```\n", description)

	fmt.Fprintf(&b, "\n**Analysis of Attached Images:**\n%s\n", formatImageNotes(t.ImageNotes))
	fmt.Fprintf(&b, "\n**Comments:**\n%s\n", formatComments(t.Comments))
	fmt.Fprintf(&b, "\n**Issue Links:**\n%s\n", formatLinks(t.Links))

	b.WriteString("\n### 2. Historical Context from Similar Tickets:\n\n")
	b.WriteString(FormatHistoricalTickets(similar))

	b.WriteString(`
---

## YOUR ANALYSIS TASK

Based on all the provided context, perform the following analysis. Structure your response using the markdown format provided below.

1. **Summarize the New Problem:** In one sentence, what is the core issue reported in the new ticket?
2. **Identify Common Themes:** Analyze all the historical tickets (including all chunks). What are the recurring themes, keywords, or resolution categories?
3. **Pinpoint the Best Match:** Identify the single most relevant historical **JIRA ID**. Briefly explain *why* it is the strongest match to the new ticket, referencing specific details from both tickets.
4. **Root Cause Patterns:** If you can identify common root causes from the historical tickets, mention them.
5. **Provide a Final Recommendation:** Conclude with a brief, actionable summary suggesting a potential starting point for the assigned engineer. Include specific suggestions based on what worked in similar tickets.

---

## OUTPUT FORMAT

**Initial Problem Assessment:**
{Your one-sentence summary of the new problem goes here.}

**Analysis of Similar Historical Tickets:**
* **Common Themes:** {List the recurring themes you identified.}
* **Resolution Patterns:** {Describe common resolution approaches from historical tickets.}
* **Most Relevant Past Ticket:** **{JIRA_ID of the best match}**. This ticket is the strongest match because {Your justification goes here}.

**Root Cause Analysis:**
{If applicable, describe common root causes identified in similar tickets.}

**Recommendation:**
Based on the historical context, the engineer should start by investigating {Your final recommendation goes here}. Specifically:
* {Specific action item 1}
* {Specific action item 2}
* {Specific action item 3 if applicable}

**Confidence Level:** {High/Medium/Low} - {Brief explanation of confidence}

---

Please provide your analysis now.
`)

	return b.String()
}

// FormatHistoricalTickets renders ranked tickets for the prompt, each with
// its similarity percentage, key metadata, and full reassembled content.
func FormatHistoricalTickets(similar []similarity.RankedTicket) string {
	if len(similar) == 0 {
		return "No similar historical tickets were found.\n"
	}

	var b strings.Builder
	for i, rt := range similar {
		chunkInfo := ""
		if rt.ChunkCount > 1 {
			chunkInfo = fmt.Sprintf(" [Document was split into %d chunks for storage]", rt.ChunkCount)
		}
		fmt.Fprintf(&b, "### Historical Ticket %d: %s%s\n", i+1, rt.TicketID, chunkInfo)
		fmt.Fprintf(&b, "**Similarity Score:** %.2f%%\n", rt.Similarity*100)
		fmt.Fprintf(&b, "**Resolution:** %s\n", metaOrNA(rt.Metadata, ticket.MetaResolution))
		fmt.Fprintf(&b, "**Status:** %s\n", metaOrNA(rt.Metadata, ticket.MetaStatus))
		fmt.Fprintf(&b, "**Priority:** %s\n", metaOrNA(rt.Metadata, ticket.MetaPriority))
		b.WriteString("\n**Full Content:**\n```\n")
		b.WriteString(rt.CombinedContent)
		b.WriteString("\n```\n\n---\n\n")
	}

	return b.String()
}

func formatImageNotes(notes []jira.ImageNote) string {
	if len(notes) == 0 {
		return "* No images attached to this ticket."
	}

	var lines []string
	for i, img := range notes {
		lines = append(lines, fmt.Sprintf("* **Image %d: %s**", i+1, img.Filename))
		lines = append(lines, fmt.Sprintf("  * Caption: %s", img.Caption))
		if img.Text != "" {
			lines = append(lines, fmt.Sprintf("  * Visible Text (OCR): %s", img.Text))
		}
	}

	return strings.Join(lines, "\n")
}

func formatComments(comments []jira.Comment) string {
	if len(comments) == 0 {
		return "  * No comments on this ticket."
	}

	var lines []string
	for i, c := range comments {
		body := c.Body
		if len(body) > maxCommentBytes {
			body = strings.ToValidUTF8(body[:maxCommentBytes], "") + "..."
		}
		lines = append(lines, fmt.Sprintf("  * **Comment %d** (by %s on %s):", i+1, c.Author, c.Created))
		lines = append(lines, fmt.Sprintf("    %s", body))
	}

	return strings.Join(lines, "\n")
}

func formatLinks(links []jira.IssueLink) string {
	if len(links) == 0 {
		return "  * No linked issues."
	}

	var lines []string
	for _, link := range links {
		lines = append(lines, fmt.Sprintf("  * [%s] %s: %s - %s", link.Direction, link.Type, link.Key, link.Summary))
	}

	return strings.Join(lines, "\n")
}

func metaOrNA(meta map[string]string, key string) string {
	if v := meta[key]; v != "" {
		return v
	}
	return "N/A"
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
