package triage

import (
	"regexp"
	"strings"

	"mediassist/internal/model"
)

// Severity scores paired with each triage level. Heuristic buckets on a
// 0-10 scale, not clinical triage; kept for compatibility with stored
// conversations.
const (
	SeverityEmergency = 9
	SeverityUrgent    = 7
	SeverityRoutine   = 3
)

// Label patterns for best-effort list extraction. They match the phrasing
// baked into the local templates; on free-form AI output they may simply
// not match, which is fine.
var (
	symptomPattern = regexp.MustCompile(`(?i)symptoms?:?\s*([^.]+)`)
	actionPattern  = regexp.MustCompile(`(?i)recommended actions?:?\s*([^.]+)`)
)

// ExtractMetadata derives structured signals from a response body. Pure
// and best-effort: it never fails, list fields are omitted when no label
// matches. Triage level and severity are always derived, together:
// "emergency" anywhere in the text wins over "urgent", which wins over the
// routine default.
//
// Run this on the response body before the disclaimer is appended; the
// disclaimer's emergency-services line would otherwise match the ladder.
func ExtractMetadata(responseText string) *model.MessageMetadata {
	meta := &model.MessageMetadata{}

	lower := strings.ToLower(responseText)
	switch {
	case strings.Contains(lower, "emergency"):
		meta.TriageLevel = model.TriageEmergency
		meta.Severity = SeverityEmergency
	case strings.Contains(lower, "urgent"):
		meta.TriageLevel = model.TriageUrgent
		meta.Severity = SeverityUrgent
	default:
		meta.TriageLevel = model.TriageRoutine
		meta.Severity = SeverityRoutine
	}

	if m := symptomPattern.FindStringSubmatch(responseText); m != nil {
		meta.Symptoms = splitList(m[1])
	}
	if m := actionPattern.FindStringSubmatch(responseText); m != nil {
		meta.SuggestedActions = splitList(m[1])
	}

	return meta
}

// splitList splits a captured label phrase on commas and trims each
// piece. Empty pieces are kept, matching stored metadata produced by
// earlier revisions of this extractor.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}
