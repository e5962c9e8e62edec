package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	"mediassist/internal/model"
	"mediassist/internal/service"
)

func newRecordRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	recordHdl := NewMedicalRecordHandler(service.NewMedicalRecordService(nil))
	labHdl := NewLabResultHandler(service.NewLabResultService(nil))

	group := engine.Group("/api/v1")
	group.POST("/medical-records", recordHdl.Create)
	group.GET("/medical-records", recordHdl.List)
	group.POST("/lab-results", labHdl.Create)
	group.GET("/lab-results", labHdl.List)

	return engine
}

func TestMedicalRecordEndpointValidation(t *testing.T) {
	Convey("Given the medical record endpoints", t, func() {
		engine := newRecordRouter()

		Convey("A record without a patient id fails binding", func() {
			w := postJSON(engine, "/api/v1/medical-records", gin.H{
				"type": "observation",
				"code": gin.H{"coding": []gin.H{{"system": "loinc", "code": "8310-5", "display": "Body temperature"}}},
			})
			So(w.Code, ShouldEqual, http.StatusBadRequest)

			var errResp model.ErrorResponse
			So(json.Unmarshal(w.Body.Bytes(), &errResp), ShouldBeNil)
			So(errResp.Code, ShouldEqual, 40001)
		})

		Convey("An unknown record type is a 400", func() {
			w := postJSON(engine, "/api/v1/medical-records", gin.H{
				"patient_id": "patient-1",
				"type":       "horoscope",
				"code":       gin.H{"coding": []gin.H{{"system": "loinc", "code": "8310-5", "display": "Body temperature"}}},
			})
			So(w.Code, ShouldEqual, http.StatusBadRequest)

			var errResp model.ErrorResponse
			So(json.Unmarshal(w.Body.Bytes(), &errResp), ShouldBeNil)
			So(errResp.Message, ShouldContainSubstring, "record type")
		})

		Convey("Listing without patient_id or encounter_id is a 400", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/medical-records", nil)
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)

			var errResp model.ErrorResponse
			So(json.Unmarshal(rec.Body.Bytes(), &errResp), ShouldBeNil)
			So(errResp.Code, ShouldEqual, 40002)
		})

		Convey("A malformed time window bound is a 400", func() {
			req := httptest.NewRequest(http.MethodGet,
				"/api/v1/medical-records?patient_id=patient-1&start_date=yesterday", nil)
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})

	Convey("Given the lab result endpoints", t, func() {
		engine := newRecordRouter()

		Convey("An unknown lifecycle status is a 400", func() {
			w := postJSON(engine, "/api/v1/lab-results", gin.H{
				"patient_id": "patient-1",
				"status":     "draft",
				"code":       gin.H{"coding": []gin.H{{"system": "loinc", "code": "718-7", "display": "Hemoglobin"}}},
			})
			So(w.Code, ShouldEqual, http.StatusBadRequest)

			var errResp model.ErrorResponse
			So(json.Unmarshal(w.Body.Bytes(), &errResp), ShouldBeNil)
			So(errResp.Message, ShouldContainSubstring, "lab result status")
		})

		Convey("Listing without patient_id is a 400", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/lab-results?status=final", nil)
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}
