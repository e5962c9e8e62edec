package triage

import "strings"

// Category is the symptom bucket free-text input is classified into
type Category string

const (
	CategoryFever            Category = "fever"
	CategoryCough            Category = "cough"
	CategoryHeadache         Category = "headache"
	CategoryGastrointestinal Category = "gastrointestinal"
	CategoryGeneral          Category = "general"
)

// rule pairs trigger keywords with a category
type rule struct {
	keywords []string
	category Category
}

// classificationRules are evaluated in order, first keyword hit wins: a
// message mentioning both fever and cough classifies as fever. The order
// is part of the behavioral contract; do not reorder.
var classificationRules = []rule{
	{keywords: []string{"fever", "temperature"}, category: CategoryFever},
	{keywords: []string{"cough"}, category: CategoryCough},
	{keywords: []string{"headache", "head pain"}, category: CategoryHeadache},
	{keywords: []string{"stomach", "nausea", "vomit"}, category: CategoryGastrointestinal},
}

// Classify maps free text to a symptom category. Pure and total:
// case-insensitive substring matching, anything unmatched (including the
// empty string) falls through to CategoryGeneral.
func Classify(text string) Category {
	lower := strings.ToLower(text)
	for _, r := range classificationRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.category
			}
		}
	}
	return CategoryGeneral
}
