package triage

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestClassify(t *testing.T) {
	Convey("Classify maps free text to a symptom category", t, func() {
		Convey("matches each category by keyword", func() {
			So(Classify("I have a fever"), ShouldEqual, CategoryFever)
			So(Classify("my temperature is 101"), ShouldEqual, CategoryFever)
			So(Classify("a dry cough at night"), ShouldEqual, CategoryCough)
			So(Classify("bad headache since morning"), ShouldEqual, CategoryHeadache)
			So(Classify("sharp head pain behind the eyes"), ShouldEqual, CategoryHeadache)
			So(Classify("my stomach hurts"), ShouldEqual, CategoryGastrointestinal)
			So(Classify("nausea after eating"), ShouldEqual, CategoryGastrointestinal)
			So(Classify("I vomited twice"), ShouldEqual, CategoryGastrointestinal)
		})

		Convey("is case-insensitive", func() {
			So(Classify("I HAVE A FEVER"), ShouldEqual, CategoryFever)
			So(Classify("Severe HeadAche"), ShouldEqual, CategoryHeadache)
		})

		Convey("first matching rule wins when several keywords appear", func() {
			So(Classify("I have a fever and a cough"), ShouldEqual, CategoryFever)
			So(Classify("cough and headache"), ShouldEqual, CategoryCough)
			So(Classify("headache with nausea"), ShouldEqual, CategoryHeadache)
		})

		Convey("anything unmatched falls through to general", func() {
			So(Classify(""), ShouldEqual, CategoryGeneral)
			So(Classify("my knee hurts"), ShouldEqual, CategoryGeneral)
			So(Classify("1234 !@#$"), ShouldEqual, CategoryGeneral)
			So(Classify("頭が痛い"), ShouldEqual, CategoryGeneral)
		})

		Convey("is deterministic", func() {
			input := "I think I might have a Fever"
			So(Classify(input), ShouldEqual, Classify(input))
		})
	})
}
