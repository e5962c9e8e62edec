package triage

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"mediassist/internal/model"
)

func TestExtractMetadata(t *testing.T) {
	Convey("ExtractMetadata derives triage level and severity together", t, func() {
		Convey("emergency outranks urgent", func() {
			meta := ExtractMetadata("This is an emergency and also urgent")
			So(meta.TriageLevel, ShouldEqual, model.TriageEmergency)
			So(meta.Severity, ShouldEqual, 9)
		})

		Convey("urgent is the middle bucket", func() {
			meta := ExtractMetadata("This needs urgent attention")
			So(meta.TriageLevel, ShouldEqual, model.TriageUrgent)
			So(meta.Severity, ShouldEqual, 7)
		})

		Convey("no keyword defaults to routine", func() {
			meta := ExtractMetadata("Take some rest and drink water")
			So(meta.TriageLevel, ShouldEqual, model.TriageRoutine)
			So(meta.Severity, ShouldEqual, 3)
		})

		Convey("matching is case-insensitive", func() {
			meta := ExtractMetadata("EMERGENCY: go to the hospital")
			So(meta.TriageLevel, ShouldEqual, model.TriageEmergency)
			So(meta.Severity, ShouldEqual, 9)
		})
	})

	Convey("ExtractMetadata pulls labeled lists best-effort", t, func() {
		Convey("symptoms split on commas and trimmed", func() {
			meta := ExtractMetadata("Symptoms: fever, sore throat , fatigue. Rest at home")
			So(meta.Symptoms, ShouldResemble, []string{"fever", "sore throat", "fatigue"})
		})

		Convey("doubled commas keep an empty entry", func() {
			meta := ExtractMetadata("Symptoms: fever,, chills. Rest at home")
			So(meta.Symptoms, ShouldResemble, []string{"fever", "", "chills"})
		})

		Convey("singular label also matches", func() {
			meta := ExtractMetadata("Main symptom: persistent dry and itchy throat")
			So(len(meta.Symptoms), ShouldEqual, 1)
		})

		Convey("recommended actions extracted the same way", func() {
			meta := ExtractMetadata("Recommended actions: drink fluids, monitor temperature. Call if worse")
			So(meta.SuggestedActions, ShouldResemble, []string{"drink fluids", "monitor temperature"})
		})

		Convey("missing labels leave the fields absent", func() {
			meta := ExtractMetadata("Plenty of rest should do")
			So(meta.Symptoms, ShouldBeNil)
			So(meta.SuggestedActions, ShouldBeNil)
			// the ladder still fires
			So(meta.TriageLevel, ShouldEqual, model.TriageRoutine)
		})
	})

	Convey("ExtractMetadata over the local templates", t, func() {
		Convey("the fever template is routine", func() {
			meta := ExtractMetadata(TemplateBody(CategoryFever, ""))
			So(meta.TriageLevel, ShouldEqual, model.TriageRoutine)
			So(meta.Severity, ShouldEqual, 3)
		})
	})
}
