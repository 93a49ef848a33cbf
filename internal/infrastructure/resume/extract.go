package resume

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"skill-hire/internal/domain/skill"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var ErrUnsupportedType = errors.New("unsupported resume type")

// ExtractText returns the plain text of a PDF or DOCX resume.
func ExtractText(mime string, data []byte) (string, error) {
	switch mime {
	case MimePDF:
		return extractPDF(data)
	case MimeDOCX:
		return extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mime)
	}
}

func extractPDF(data []byte) (text string, err error) {
	// the parser panics on some malformed documents
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("read pdf: %v", rec)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return normalizeSpace(b.String()), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()

	// Editable content is raw WordprocessingML.
	return normalizeSpace(stripTags(doc.Editable().GetContent())), nil
}

var (
	tagPattern   = regexp.MustCompile(`<[^>]+>`)
	spacePattern = regexp.MustCompile(`[ \t\r\f\v]+`)
)

func stripTags(s string) string {
	s = strings.ReplaceAll(s, "</w:p>", "\n")
	return tagPattern.ReplaceAllString(s, " ")
}

func normalizeSpace(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, l := range lines {
		l = strings.TrimSpace(spacePattern.ReplaceAllString(l, " "))
		if l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

// SuggestSkills returns catalogue skills whose names appear in text as whole
// words, excluding ids in owned. Results are ordered by name.
func SuggestSkills(text string, catalogue []skill.Skill, owned []int64) []skill.Skill {
	if strings.TrimSpace(text) == "" || len(catalogue) == 0 {
		return []skill.Skill{}
	}

	have := make(map[int64]struct{}, len(owned))
	for _, id := range owned {
		have[id] = struct{}{}
	}

	haystack := " " + tokenize(text) + " "
	out := make([]skill.Skill, 0)
	for _, s := range catalogue {
		if _, ok := have[s.ID]; ok {
			continue
		}
		needle := tokenize(s.Name)
		if needle == "" {
			continue
		}
		if strings.Contains(haystack, " "+needle+" ") {
			out = append(out, s)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// tokenize lower-cases s and collapses everything except letters, digits
// and the symbols common in tech names (c++, c#, node.js) into single spaces.
func tokenize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := true
	for _, r := range strings.ToLower(s) {
		keep := unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.'
		if keep {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	out := strings.TrimSpace(b.String())
	// trailing sentence dots ("Go.") should not glue to the word
	fields := strings.Fields(out)
	for i, f := range fields {
		fields[i] = strings.TrimRight(f, ".")
	}
	return strings.Join(fields, " ")
}
