package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"mediassist/internal/model"
	"mediassist/internal/pkg/id"
	"mediassist/internal/repository"
)

var (
	ErrInvalidAppointmentStatus = errors.New("invalid appointment status")
	ErrInvalidMedicationStatus  = errors.New("invalid medication status")
	ErrAppointmentWindow        = errors.New("appointment end time must be after start time")
	ErrInvalidRecordType        = errors.New("invalid medical record type")
	ErrInvalidRecordStatus      = errors.New("invalid medical record status")
	ErrInvalidLabResultStatus   = errors.New("invalid lab result status")
)

// PatientService patient record CRUD
type PatientService struct {
	repo *repository.PatientRepo
}

// NewPatientService creates the patient service
func NewPatientService(repo *repository.PatientRepo) *PatientService {
	return &PatientService{repo: repo}
}

// Create registers a patient record, assigning a fresh id
func (s *PatientService) Create(ctx context.Context, patient *model.Patient) error {
	if patient.ID == "" {
		patient.ID = id.New()
	}
	return s.repo.Create(ctx, patient)
}

// Get fetches a patient by id
func (s *PatientService) Get(ctx context.Context, patientID string) (*model.Patient, error) {
	return s.repo.FindByID(ctx, patientID)
}

// List returns patients with pagination
func (s *PatientService) List(ctx context.Context, limit, offset int64) ([]*model.Patient, int64, error) {
	return s.repo.List(ctx, bson.M{}, limit, offset)
}

// Update applies field updates to a patient
func (s *PatientService) Update(ctx context.Context, patientID string, fields bson.M) error {
	return s.repo.Update(ctx, patientID, bson.M{"$set": fields})
}

// Delete removes a patient record
func (s *PatientService) Delete(ctx context.Context, patientID string) error {
	return s.repo.Delete(ctx, patientID)
}

// ProviderService provider record CRUD
type ProviderService struct {
	repo *repository.ProviderRepo
}

// NewProviderService creates the provider service
func NewProviderService(repo *repository.ProviderRepo) *ProviderService {
	return &ProviderService{repo: repo}
}

// Create registers a provider record, assigning a fresh id
func (s *ProviderService) Create(ctx context.Context, provider *model.Provider) error {
	if provider.ID == "" {
		provider.ID = id.New()
	}
	return s.repo.Create(ctx, provider)
}

// Get fetches a provider by id
func (s *ProviderService) Get(ctx context.Context, providerID string) (*model.Provider, error) {
	return s.repo.FindByID(ctx, providerID)
}

// List returns providers, optionally filtered by specialty
func (s *ProviderService) List(ctx context.Context, specialty string, limit, offset int64) ([]*model.Provider, error) {
	return s.repo.List(ctx, specialty, limit, offset)
}

// Update applies field updates to a provider
func (s *ProviderService) Update(ctx context.Context, providerID string, fields bson.M) error {
	return s.repo.Update(ctx, providerID, bson.M{"$set": fields})
}

// Delete removes a provider record
func (s *ProviderService) Delete(ctx context.Context, providerID string) error {
	return s.repo.Delete(ctx, providerID)
}

// AppointmentService appointment scheduling
type AppointmentService struct {
	repo *repository.AppointmentRepo
}

// NewAppointmentService creates the appointment service
func NewAppointmentService(repo *repository.AppointmentRepo) *AppointmentService {
	return &AppointmentService{repo: repo}
}

// Create books an appointment after checking the time window
func (s *AppointmentService) Create(ctx context.Context, appt *model.Appointment) error {
	if !appt.EndTime.After(appt.StartTime) {
		return ErrAppointmentWindow
	}
	if appt.ID == "" {
		appt.ID = id.New()
	}
	return s.repo.Create(ctx, appt)
}

// Get fetches an appointment by id
func (s *AppointmentService) Get(ctx context.Context, apptID string) (*model.Appointment, error) {
	return s.repo.FindByID(ctx, apptID)
}

// ListByPatient lists a patient's appointments
func (s *AppointmentService) ListByPatient(ctx context.Context, patientID string, limit, offset int64) ([]*model.Appointment, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

// ListByProvider lists a provider's appointments
func (s *AppointmentService) ListByProvider(ctx context.Context, providerID string, limit, offset int64) ([]*model.Appointment, error) {
	return s.repo.ListByProvider(ctx, providerID, limit, offset)
}

// UpdateStatus transitions an appointment's status
func (s *AppointmentService) UpdateStatus(ctx context.Context, apptID string, status model.AppointmentStatus, cancellationReason string) error {
	if !status.IsValid() {
		return ErrInvalidAppointmentStatus
	}
	return s.repo.UpdateStatus(ctx, apptID, status, cancellationReason)
}

// Delete removes an appointment
func (s *AppointmentService) Delete(ctx context.Context, apptID string) error {
	return s.repo.Delete(ctx, apptID)
}

// MedicationService medication record CRUD
type MedicationService struct {
	repo *repository.MedicationRepo
}

// NewMedicationService creates the medication service
func NewMedicationService(repo *repository.MedicationRepo) *MedicationService {
	return &MedicationService{repo: repo}
}

// Create records a prescription, assigning a fresh id
func (s *MedicationService) Create(ctx context.Context, med *model.Medication) error {
	if med.Status != "" && !med.Status.IsValid() {
		return ErrInvalidMedicationStatus
	}
	if med.ID == "" {
		med.ID = id.New()
	}
	return s.repo.Create(ctx, med)
}

// Get fetches a medication by id
func (s *MedicationService) Get(ctx context.Context, medID string) (*model.Medication, error) {
	return s.repo.FindByID(ctx, medID)
}

// ListByPatient lists a patient's medications, optionally by status
func (s *MedicationService) ListByPatient(ctx context.Context, patientID string, status model.MedicationStatus, limit, offset int64) ([]*model.Medication, error) {
	if status != "" && !status.IsValid() {
		return nil, ErrInvalidMedicationStatus
	}
	return s.repo.ListByPatient(ctx, patientID, status, limit, offset)
}

// UpdateStatus transitions a medication's status
func (s *MedicationService) UpdateStatus(ctx context.Context, medID string, status model.MedicationStatus) error {
	if !status.IsValid() {
		return ErrInvalidMedicationStatus
	}
	return s.repo.Update(ctx, medID, bson.M{"$set": bson.M{"status": status}})
}

// Delete removes a medication record
func (s *MedicationService) Delete(ctx context.Context, medID string) error {
	return s.repo.Delete(ctx, medID)
}

// MedicalRecordService clinical chart CRUD
type MedicalRecordService struct {
	repo *repository.MedicalRecordRepo
}

// NewMedicalRecordService creates the medical record service
func NewMedicalRecordService(repo *repository.MedicalRecordRepo) *MedicalRecordService {
	return &MedicalRecordService{repo: repo}
}

// Create files a chart entry, assigning a fresh id
func (s *MedicalRecordService) Create(ctx context.Context, record *model.MedicalRecord) error {
	if !record.Type.IsValid() {
		return ErrInvalidRecordType
	}
	if record.Status != "" && !record.Status.IsValid() {
		return ErrInvalidRecordStatus
	}
	if record.ID == "" {
		record.ID = id.New()
	}
	return s.repo.Create(ctx, record)
}

// Get fetches a chart entry by id
func (s *MedicalRecordService) Get(ctx context.Context, recordID string) (*model.MedicalRecord, error) {
	return s.repo.FindByID(ctx, recordID)
}

// ListByPatient lists a patient's chart entries with optional narrowing
func (s *MedicalRecordService) ListByPatient(ctx context.Context, patientID string, filter repository.MedicalRecordFilter, limit, offset int64) ([]*model.MedicalRecord, int64, error) {
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, 0, ErrInvalidRecordType
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, ErrInvalidRecordStatus
	}
	return s.repo.ListByPatient(ctx, patientID, filter, limit, offset)
}

// ListByEncounter lists the chart entries recorded during an encounter
func (s *MedicalRecordService) ListByEncounter(ctx context.Context, encounterID string, limit, offset int64) ([]*model.MedicalRecord, int64, error) {
	return s.repo.ListByEncounter(ctx, encounterID, limit, offset)
}

// ListRelated lists the chart entries that reference a record
func (s *MedicalRecordService) ListRelated(ctx context.Context, recordID string) ([]*model.MedicalRecord, error) {
	return s.repo.ListRelated(ctx, recordID)
}

// Update applies field updates to a chart entry
func (s *MedicalRecordService) Update(ctx context.Context, recordID string, fields bson.M) error {
	if status, ok := fields["status"].(model.RecordStatus); ok && !status.IsValid() {
		return ErrInvalidRecordStatus
	}
	return s.repo.Update(ctx, recordID, bson.M{"$set": fields})
}

// Delete removes a chart entry
func (s *MedicalRecordService) Delete(ctx context.Context, recordID string) error {
	return s.repo.Delete(ctx, recordID)
}

// LabResultService laboratory result CRUD
type LabResultService struct {
	repo *repository.LabResultRepo
}

// NewLabResultService creates the lab result service
func NewLabResultService(repo *repository.LabResultRepo) *LabResultService {
	return &LabResultService{repo: repo}
}

// Create files a lab result, assigning a fresh id
func (s *LabResultService) Create(ctx context.Context, result *model.LabResult) error {
	if result.Status != "" && !result.Status.IsValid() {
		return ErrInvalidLabResultStatus
	}
	if result.ID == "" {
		result.ID = id.New()
	}
	return s.repo.Create(ctx, result)
}

// Get fetches a lab result by id
func (s *LabResultService) Get(ctx context.Context, resultID string) (*model.LabResult, error) {
	return s.repo.FindByID(ctx, resultID)
}

// ListByPatient lists a patient's lab results, optionally by status
func (s *LabResultService) ListByPatient(ctx context.Context, patientID string, status model.LabResultStatus, limit, offset int64) ([]*model.LabResult, error) {
	if status != "" && !status.IsValid() {
		return nil, ErrInvalidLabResultStatus
	}
	return s.repo.ListByPatient(ctx, patientID, status, limit, offset)
}

// UpdateStatus transitions a lab result's status
func (s *LabResultService) UpdateStatus(ctx context.Context, resultID string, status model.LabResultStatus) error {
	if !status.IsValid() {
		return ErrInvalidLabResultStatus
	}
	return s.repo.Update(ctx, resultID, bson.M{"$set": bson.M{"status": status}})
}

// Delete removes a lab result
func (s *LabResultService) Delete(ctx context.Context, resultID string) error {
	return s.repo.Delete(ctx, resultID)
}
