package planner

import (
	"errors"
	"strings"
)

// PromptKind identifies which prompt template produced a generated response.
// The two templates frame their care schedule with different anchor phrases,
// so the extractor needs to know which pair to look for.
type PromptKind int

const (
	KindInitial PromptKind = iota
	KindUpdate
)

// Anchor phrases emitted by the prompt templates in prompt.go. The model is
// instructed to answer inside this frame, so the schedule table sits strictly
// between the start and end anchor.
const (
	initialSectionStart = "•3. Giám sát và chăm sóc"
	initialSectionEnd   = "•4. Cập nhật từ bạn"
	updateSectionStart  = "+ Kế hoạch cho những ngày sau:"
	updateSectionEnd    = "•Lưu ý:"
)

// ErrAnchorNotFound reports that a generated response does not contain the
// expected section frame. Callers treat it as an empty section, not a failure.
var ErrAnchorNotFound = errors.New("schedule section anchor not found")

// ExtractSection returns the substring of fullText strictly between the
// anchor pair for the given prompt kind.
//
// Anchors are matched by first occurrence only. If the start anchor is
// missing, or no end anchor follows it, the section is empty and
// ErrAnchorNotFound is returned. Repeated anchor phrases inside prose are not
// handled; the templates do not produce them.
func ExtractSection(fullText string, kind PromptKind) (string, error) {
	start, end := initialSectionStart, initialSectionEnd
	if kind == KindUpdate {
		start, end = updateSectionStart, updateSectionEnd
	}

	i := strings.Index(fullText, start)
	if i < 0 {
		return "", ErrAnchorNotFound
	}
	rest := fullText[i+len(start):]

	j := strings.Index(rest, end)
	if j < 0 {
		return "", ErrAnchorNotFound
	}
	return rest[:j], nil
}
