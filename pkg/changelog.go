package arcrelease

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the date format used in entry headings.
const DateLayout = "2006-01-02"

const (
	documentTitle = "# Changelog"
	entryMarker   = "\n## "
	headingMarker = "\n## ["
)

// Section is one category block of a changelog entry.
type Section struct {
	Category Category
	Items    []string
}

// Entry is the dated changelog block for a single version.
type Entry struct {
	Version  Version
	Date     time.Time
	Sections []Section
}

// Render groups the display text of the messages by category. Sections are
// ordered canonically and items keep the order of the input messages. The
// boolean is false when the curated policy leaves nothing to document.
func Render(v Version, date time.Time, messages []string, policy Policy) (Entry, bool) {
	grouped := make(map[Category][]string)
	for _, msg := range messages {
		c := ParseCommit(msg)
		cat, ok := Classify(c, policy)
		if !ok {
			continue
		}
		grouped[cat] = append(grouped[cat], c.Display())
	}

	entry := Entry{Version: v, Date: date}
	if len(grouped) == 0 && policy == Curated {
		return entry, false
	}

	for cat := CategoryBreaking; cat <= CategoryOther; cat++ {
		if items := grouped[cat]; len(items) > 0 {
			entry.Sections = append(entry.Sections, Section{Category: cat, Items: items})
		}
	}
	return entry, true
}

// Heading is the "## [x.y.z] - YYYY-MM-DD" line without a trailing newline.
func (e Entry) Heading() string {
	return fmt.Sprintf("## [%s] - %s", e.Version, e.Date.Format(DateLayout))
}

// String renders the entry as markdown. The result ends in a blank line so
// it can be spliced directly above an older entry.
func (e Entry) String() string {
	var b strings.Builder
	b.WriteString(e.Heading())
	b.WriteString("\n\n")
	for _, s := range e.Sections {
		fmt.Fprintf(&b, "### %s\n\n", s.Category)
		for _, item := range s.Items {
			fmt.Fprintf(&b, "- %s\n", item)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// DefaultHeader is the title and preamble written to a changelog that has none.
func DefaultHeader(project string) string {
	if project == "" {
		project = "project"
	}
	return documentTitle + "\n\n" +
		"All notable changes to the " + project + " will be documented in this file.\n\n" +
		"The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.1.0/),\n" +
		"and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).\n\n"
}

// Splice inserts entry text above the newest existing entry of doc. A
// document without the "# Changelog" title gets the default header first;
// any text it already had is kept below the header.
func Splice(doc, entry, project string) string {
	if !strings.Contains(doc, documentTitle) {
		doc = DefaultHeader(project) + doc
	}

	if i := strings.Index(doc, entryMarker); i != -1 {
		return separate(doc[:i+1]) + entry + doc[i+1:]
	}
	return separate(doc) + entry
}

// separate pads non-empty text so that whatever follows it starts after a
// blank line.
func separate(s string) string {
	switch {
	case s == "", strings.HasSuffix(s, "\n\n"):
		return s
	case strings.HasSuffix(s, "\n"):
		return s + "\n"
	}
	return s + "\n\n"
}

// SectionBody returns the trimmed body of the "## [version]" entry in doc, up to
// the next "## [" heading or the end of the document.
func SectionBody(doc string, v Version) (string, bool) {
	heading := "## [" + v.String() + "]"

	start := -1
	if strings.HasPrefix(doc, heading) {
		start = 0
	} else if i := strings.Index(doc, "\n"+heading); i != -1 {
		start = i + 1
	}
	if start == -1 {
		return "", false
	}

	body := doc[start+len(heading):]
	nl := strings.IndexByte(body, '\n')
	if nl == -1 {
		return "", true
	}
	body = body[nl+1:]
	if end := strings.Index(body, headingMarker); end != -1 {
		body = body[:end]
	}
	return strings.TrimSpace(body), true
}
