package docdex

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Section represents a heading in a markdown document.
type Section struct {
	Level  int    `json:"level"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

var (
	headingRe = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	linkRe    = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	inlineRe  = regexp.MustCompile("`([^`]*)`")
)

// ExtractSections parses markdown and returns all headings (H1-H6).
// Headings inside fenced code blocks are ignored. Anchors are URL-safe
// and duplicates get numeric suffixes.
func ExtractSections(markdown string) []Section {
	var sections []Section
	anchorCounts := make(map[string]int)

	inFence := false
	scanner := bufio.NewScanner(strings.NewReader(markdown))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		m := headingRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		title := strings.TrimSpace(m[2])
		anchor := generateAnchor(title)
		if count, exists := anchorCounts[anchor]; exists {
			anchorCounts[anchor] = count + 1
			anchor = anchor + "-" + strconv.Itoa(count)
		} else {
			anchorCounts[anchor] = 1
		}

		sections = append(sections, Section{
			Level:  len(m[1]),
			Title:  title,
			Anchor: anchor,
		})
	}

	return sections
}

// ExtractTitle returns the document title: the first H1, or the first
// heading of any level if no H1 exists. Returns "" for headingless
// documents.
func ExtractTitle(markdown string) string {
	sections := ExtractSections(markdown)
	for _, s := range sections {
		if s.Level == 1 {
			return s.Title
		}
	}
	if len(sections) > 0 {
		return sections[0].Title
	}
	return ""
}

// StripMarkdown flattens markdown to plain text for term analysis:
// heading markers, emphasis, inline code ticks, and link targets are
// removed while the visible text (including code block contents) is kept.
func StripMarkdown(markdown string) string {
	var b strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(markdown))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			continue
		}
		line = strings.TrimLeft(line, "#> ")
		line = linkRe.ReplaceAllString(line, "$1")
		line = inlineRe.ReplaceAllString(line, "$1")
		line = strings.ReplaceAll(line, "**", "")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// generateAnchor creates a URL-safe anchor from a title.
// Converts to lowercase, replaces spaces with hyphens, removes special chars.
func generateAnchor(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}
