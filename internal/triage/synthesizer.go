package triage

import "fmt"

// TemplateBody renders the canned response body for a category, without
// the disclaimer. The general category interpolates the verbatim query
// into its heading; unknown categories fall back to general.
func TemplateBody(category Category, query string) string {
	if body, ok := templates[category]; ok {
		return body
	}
	return fmt.Sprintf(generalTemplate, query)
}

// WithDisclaimer appends the mandatory disclaimer. Single call site for
// the invariant that every outgoing response ends with it.
func WithDisclaimer(body string) string {
	return body + Disclaimer
}

// Synthesize renders the full response for a category: template body plus
// disclaimer. Pure with respect to category, modulo query interpolation in
// the general template.
func Synthesize(category Category, query string) string {
	return WithDisclaimer(TemplateBody(category, query))
}
