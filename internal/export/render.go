package export

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"joplin/console/internal/db"
)

// Format selects the rendering style for exported notes.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "md":
		return FormatMarkdown, nil
	case "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown export format %q (want md or txt)", s)
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	if f == FormatText {
		return "txt"
	}
	return "md"
}

// unsafeChars cannot appear in exported file or directory names.
const unsafeChars = `\/:*?"<>|`

// sanitizeTitle replaces characters that are unsafe in file names with
// underscores. The result is always a single path segment.
func sanitizeTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		if strings.ContainsRune(unsafeChars, r) {
			b.WriteByte('_')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// attachmentRef is one entry in a rendered attachments section.
type attachmentRef struct {
	Title string
	Ref   string
}

func renderNote(note *db.Note, format Format, tags []string, attachments []attachmentRef, withMeta bool) []byte {
	if format == FormatText {
		return renderText(note, tags, attachments, withMeta)
	}
	return renderMarkdown(note, tags, attachments, withMeta)
}

func renderMarkdown(note *db.Note, tags []string, attachments []attachmentRef, withMeta bool) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# %s\n\n", note.Title)
	if withMeta {
		fmt.Fprintf(&b, "*Created:* %s\n", db.FormatTime(note.CreatedTime))
		fmt.Fprintf(&b, "*Updated:* %s\n", db.FormatTime(note.UpdatedTime))
		if len(tags) > 0 {
			fmt.Fprintf(&b, "*Tags:* %s\n", strings.Join(tags, ", "))
		}
		b.WriteString("\n---\n\n")
	}
	b.WriteString(note.Body)
	b.WriteString("\n")
	if withMeta && len(attachments) > 0 {
		b.WriteString("\n## Attachments\n")
		for _, a := range attachments {
			fmt.Fprintf(&b, "- [%s](%s)\n", a.Title, a.Ref)
		}
	}
	return b.Bytes()
}

func renderText(note *db.Note, tags []string, attachments []attachmentRef, withMeta bool) []byte {
	var b bytes.Buffer
	b.WriteString(note.Title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", utf8.RuneCountInString(note.Title)))
	b.WriteString("\n\n")
	if withMeta {
		fmt.Fprintf(&b, "Created: %s\n", db.FormatTime(note.CreatedTime))
		fmt.Fprintf(&b, "Updated: %s\n", db.FormatTime(note.UpdatedTime))
		if len(tags) > 0 {
			fmt.Fprintf(&b, "Tags: %s\n", strings.Join(tags, ", "))
		}
		b.WriteString("\n" + strings.Repeat("-", 40) + "\n\n")
	}
	b.WriteString(note.Body)
	b.WriteString("\n")
	if withMeta && len(attachments) > 0 {
		b.WriteString("\n\nAttachments:\n")
		for _, a := range attachments {
			fmt.Fprintf(&b, "- %s (%s)\n", a.Title, a.Ref)
		}
	}
	return b.Bytes()
}

// attachmentFilename picks a disk name for a resource. It prefers the
// stored filename, then the title, then a truncated id, and derives an
// extension from the MIME type when the name has none.
func attachmentFilename(r db.Resource) string {
	name := r.Filename
	if name == "" {
		name = r.Title
	}
	if name == "" {
		name = "resource_" + shortID(r.ID)
	}
	name = sanitizeTitle(name)
	if strings.Contains(name, ".") {
		return name
	}
	switch {
	case strings.HasPrefix(r.Mime, "image/"):
		if sub := strings.TrimPrefix(r.Mime, "image/"); sub != "" {
			name += "." + sub
		}
	case r.Mime == "application/pdf":
		name += ".pdf"
	case strings.HasPrefix(r.Mime, "text/"):
		sub := strings.TrimPrefix(r.Mime, "text/")
		if sub == "" {
			sub = "txt"
		}
		name += "." + sub
	}
	return name
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
