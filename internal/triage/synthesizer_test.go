package triage

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSynthesize(t *testing.T) {
	Convey("Synthesize renders a templated response", t, func() {
		Convey("every category ends with the exact disclaimer", func() {
			categories := []Category{
				CategoryFever, CategoryCough, CategoryHeadache,
				CategoryGastrointestinal, CategoryGeneral,
			}
			for _, cat := range categories {
				So(strings.HasSuffix(Synthesize(cat, "anything"), Disclaimer), ShouldBeTrue)
			}
		})

		Convey("unknown categories fall back to the general template, with disclaimer", func() {
			resp := Synthesize(Category("bogus"), "q")
			So(resp, ShouldContainSubstring, "Health Assessment: General Inquiry")
			So(strings.HasSuffix(resp, Disclaimer), ShouldBeTrue)
		})

		Convey("non-general templates carry the four labeled sections in order", func() {
			for _, cat := range []Category{CategoryFever, CategoryCough, CategoryHeadache, CategoryGastrointestinal} {
				resp := Synthesize(cat, "")
				iConditions := strings.Index(resp, "Possible Conditions")
				iCauses := strings.Index(resp, "Likely Causes")
				iCare := strings.Index(resp, "Basic Care Guidelines")
				iSeek := strings.Index(resp, "Seek Medical Attention If")
				So(iConditions, ShouldBeGreaterThanOrEqualTo, 0)
				So(iCauses, ShouldBeGreaterThan, iConditions)
				So(iCare, ShouldBeGreaterThan, iCauses)
				So(iSeek, ShouldBeGreaterThan, iCare)
			}
		})

		Convey("the fever template carries dosage text", func() {
			So(Synthesize(CategoryFever, ""), ShouldContainSubstring, "Acetaminophen")
		})

		Convey("the general template interpolates the verbatim query", func() {
			So(Synthesize(CategoryGeneral, "my knee hurts"), ShouldContainSubstring, "my knee hurts")
		})

		Convey("same category always yields the same text", func() {
			So(Synthesize(CategoryCough, "a"), ShouldEqual, Synthesize(CategoryCough, "b"))
		})

		Convey("no template body triggers the severity ladder", func() {
			for _, cat := range []Category{CategoryFever, CategoryCough, CategoryHeadache, CategoryGastrointestinal, CategoryGeneral} {
				body := strings.ToLower(TemplateBody(cat, "some question"))
				So(body, ShouldNotContainSubstring, "emergency")
				So(body, ShouldNotContainSubstring, "urgent")
			}
		})
	})
}

func TestWithDisclaimer(t *testing.T) {
	Convey("WithDisclaimer appends the constant disclaimer to any body", t, func() {
		out := WithDisclaimer("AI generated guidance")
		So(out, ShouldStartWith, "AI generated guidance")
		So(strings.HasSuffix(out, Disclaimer), ShouldBeTrue)
		So(Disclaimer, ShouldContainSubstring, "educational purposes only")
		So(Disclaimer, ShouldContainSubstring, "drug allergies and interactions")
	})
}
