package service

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"mediassist/internal/model"
	"mediassist/internal/repository"
)

func TestMedicalRecordValidation(t *testing.T) {
	Convey("Given the medical record service", t, func() {
		svc := NewMedicalRecordService(nil)
		ctx := context.Background()

		Convey("An unknown record type is rejected before persistence", func() {
			err := svc.Create(ctx, &model.MedicalRecord{
				PatientID: "patient-1",
				Type:      model.RecordType("horoscope"),
			})
			So(err, ShouldEqual, ErrInvalidRecordType)
		})

		Convey("An unknown record status is rejected before persistence", func() {
			err := svc.Create(ctx, &model.MedicalRecord{
				PatientID: "patient-1",
				Type:      model.RecordObservation,
				Status:    model.RecordStatus("pending"),
			})
			So(err, ShouldEqual, ErrInvalidRecordStatus)
		})

		Convey("Listing with an unknown type filter is rejected", func() {
			_, _, err := svc.ListByPatient(ctx, "patient-1", repository.MedicalRecordFilter{
				Type: model.RecordType("horoscope"),
			}, 10, 0)
			So(err, ShouldEqual, ErrInvalidRecordType)
		})

		Convey("Listing with an unknown status filter is rejected", func() {
			_, _, err := svc.ListByPatient(ctx, "patient-1", repository.MedicalRecordFilter{
				Status: model.RecordStatus("pending"),
			}, 10, 0)
			So(err, ShouldEqual, ErrInvalidRecordStatus)
		})
	})

	Convey("Record type and status enums match the chart vocabulary", t, func() {
		for _, typ := range []model.RecordType{
			model.RecordEncounter, model.RecordCondition, model.RecordProcedure,
			model.RecordObservation, model.RecordImmunization, model.RecordAllergy,
		} {
			So(typ.IsValid(), ShouldBeTrue)
		}
		So(model.RecordType("").IsValid(), ShouldBeFalse)

		for _, status := range []model.RecordStatus{
			model.RecordActive, model.RecordInactive, model.RecordResolved, model.RecordError,
		} {
			So(status.IsValid(), ShouldBeTrue)
		}
		So(model.RecordStatus("").IsValid(), ShouldBeFalse)
	})
}

func TestLabResultValidation(t *testing.T) {
	Convey("Given the lab result service", t, func() {
		svc := NewLabResultService(nil)
		ctx := context.Background()

		Convey("An unknown status is rejected before persistence", func() {
			err := svc.Create(ctx, &model.LabResult{
				PatientID: "patient-1",
				Status:    model.LabResultStatus("draft"),
			})
			So(err, ShouldEqual, ErrInvalidLabResultStatus)
		})

		Convey("A status transition to an unknown value is rejected", func() {
			err := svc.UpdateStatus(ctx, "lab-1", model.LabResultStatus("draft"))
			So(err, ShouldEqual, ErrInvalidLabResultStatus)
		})

		Convey("Listing with an unknown status filter is rejected", func() {
			_, err := svc.ListByPatient(ctx, "patient-1", model.LabResultStatus("draft"), 10, 0)
			So(err, ShouldEqual, ErrInvalidLabResultStatus)
		})
	})
}

func TestAppointmentValidation(t *testing.T) {
	Convey("Given the appointment service", t, func() {
		svc := NewAppointmentService(nil)
		ctx := context.Background()

		Convey("An inverted time window is rejected before persistence", func() {
			start := time.Now()
			err := svc.Create(ctx, &model.Appointment{
				PatientID:  "patient-1",
				ProviderID: "provider-1",
				StartTime:  start,
				EndTime:    start.Add(-30 * time.Minute),
			})
			So(err, ShouldEqual, ErrAppointmentWindow)
		})

		Convey("An unknown status transition is rejected", func() {
			err := svc.UpdateStatus(ctx, "appt-1", model.AppointmentStatus("rescheduled"), "")
			So(err, ShouldEqual, ErrInvalidAppointmentStatus)
		})
	})

	Convey("Given the medication service", t, func() {
		svc := NewMedicationService(nil)
		ctx := context.Background()

		Convey("An unknown status transition is rejected", func() {
			err := svc.UpdateStatus(ctx, "med-1", model.MedicationStatus("paused"))
			So(err, ShouldEqual, ErrInvalidMedicationStatus)
		})
	})
}
