// Package accounts implements patient registration, login and profile
// management, including the doctor assignment a patient books against.
package accounts

import (
	"context"
	"fmt"
	"strings"

	"github.com/clinicdesk/booking/internal/validation"
	"github.com/clinicdesk/booking/pkg/interfaces"
	"github.com/clinicdesk/booking/pkg/logger"
	"github.com/clinicdesk/booking/pkg/monitoring"
	"github.com/clinicdesk/booking/pkg/timefmt"
	"github.com/clinicdesk/booking/pkg/types"
)

// Service implements the AccountsService interface
type Service struct {
	logger    *logger.Logger
	repo      interfaces.AccountsRepository
	validator *validation.Validator
	passwords *PasswordManager
	tokens    *TokenManager
}

// NewService creates a new accounts service
func NewService(repo interfaces.AccountsRepository, tokens *TokenManager, log *logger.Logger) *Service {
	return &Service{
		logger:    log,
		repo:      repo,
		validator: validation.New(),
		passwords: NewPasswordManager(),
		tokens:    tokens,
	}
}

// Register validates a registration form and creates the patient account.
// All violated field rules are reported together in one failure. On success
// the patient receives a welcome notification and an audit log entry.
func (s *Service) Register(ctx context.Context, req *types.RegistrationRequest) (*types.Patient, error) {
	firstName := timefmt.Capitalize(req.FirstName)
	middleName := timefmt.Capitalize(req.MiddleName)
	lastName := timefmt.Capitalize(req.LastName)
	email := strings.ToLower(req.Email)
	confirmEmail := strings.ToLower(req.ConfirmEmail)

	doctorCode := validation.NoError
	if req.DoctorID == "" {
		doctorCode = types.CodeDoctorNotChosen
	}

	codes := validation.Collect(
		s.validator.VerifyFirstName(firstName),
		s.validator.VerifyMiddleName(middleName),
		s.validator.VerifyLastName(lastName),
		s.validator.VerifyDate(req.DateOfBirth),
		s.validator.VerifyGender(req.Gender),
		s.validator.VerifyPhoneNo(req.PhoneNo),
		s.validator.VerifyEmail(email),
		s.validator.VerifyPassword(req.Password),
		s.validator.VerifyMatchingEmails(email, confirmEmail),
		s.validator.VerifyMatchingPasswords(req.Password, req.ConfirmPassword),
		doctorCode,
	)
	if len(codes) > 0 {
		return nil, types.NewValidationError("invalid form details", codes)
	}

	dateOfBirth, err := s.validator.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, types.NewValidationError("invalid date", []types.ErrorCode{types.CodeWrongDate})
	}

	if _, err := s.repo.GetDoctorByID(ctx, req.DoctorID); err != nil {
		return nil, err
	}

	passHash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, types.NewInternalError("failed to hash password", err)
	}

	patient, err := s.repo.RegisterPatient(ctx, &types.Patient{
		DoctorID:    req.DoctorID,
		Email:       email,
		PassHash:    passHash,
		FirstName:   firstName,
		MiddleName:  middleName,
		LastName:    lastName,
		DateOfBirth: dateOfBirth,
		Gender:      req.Gender,
		PhoneNo:     req.PhoneNo,
	})
	if err != nil {
		return nil, err
	}

	s.recordRegistration(ctx, patient)

	s.logger.WithPatientID(patient.ID).Infof("Registered new patient %s", patient.Email)
	return patient, nil
}

// recordRegistration persists the welcome notification and audit log entry
// for a new account. The account commit is authoritative; failures here are
// logged and not propagated.
func (s *Service) recordRegistration(ctx context.Context, patient *types.Patient) {
	if _, err := s.repo.CreateNotification(ctx, patient,
		"Welcome to the GP, "+patient.FirstName,
		"Your patient account has been created."); err != nil {
		s.logger.WithPatientID(patient.ID).WithError(err).Error("Failed to create welcome notification")
	}

	doctor, err := s.repo.GetDoctorForPatient(ctx, patient)
	if err != nil {
		s.logger.WithPatientID(patient.ID).WithError(err).Error("Failed to resolve doctor for registration log")
		return
	}

	if _, err := s.repo.CreateLog(ctx, patient,
		fmt.Sprintf("Patient %s has successfully registered with Dr. %s", patient.FullName(), doctor.LastName)); err != nil {
		s.logger.WithPatientID(patient.ID).WithError(err).Error("Failed to create registration log entry")
	}

	monitoring.RecordNotification("Welcome to the GP")
}

// Login verifies the credential formats, checks the password against the
// stored hash and issues a bearer token for the patient.
func (s *Service) Login(ctx context.Context, email, password string) (*types.Patient, string, error) {
	email = strings.ToLower(email)

	codes := validation.Collect(
		s.validator.VerifyEmail(email),
		s.validator.VerifyPassword(password),
	)
	if len(codes) > 0 {
		monitoring.RecordAuthAttempt("login", "rejected")
		return nil, "", types.NewAuthError("invalid email or password format", codes...)
	}

	patient, err := s.repo.GetPatientByEmail(ctx, email)
	if err != nil {
		monitoring.RecordAuthAttempt("login", "unknown_user")
		return nil, "", err
	}

	match, err := s.passwords.VerifyPassword(patient.PassHash, password)
	if err != nil {
		return nil, "", types.NewInternalError("failed to verify password", err)
	}
	if !match {
		monitoring.RecordAuthAttempt("login", "wrong_password")
		return nil, "", types.NewAuthError("invalid password", types.CodeWrongPassword)
	}

	if _, err := s.repo.CreateLog(ctx, patient,
		fmt.Sprintf("Patient %s manually logged in, successfully", patient.FullName())); err != nil {
		s.logger.WithPatientID(patient.ID).WithError(err).Error("Failed to create login log entry")
	}

	token, err := s.tokens.Issue(patient.ID)
	if err != nil {
		return nil, "", types.NewInternalError("failed to issue token", err)
	}

	monitoring.RecordAuthAttempt("login", "success")
	s.logger.WithPatientID(patient.ID).Info("Patient logged in")
	return patient, token, nil
}

// Logout records the logout in the patient's activity log. Tokens are not
// tracked server side; clients discard theirs.
func (s *Service) Logout(ctx context.Context, patientID string) error {
	patient, err := s.repo.GetPatientByID(ctx, patientID)
	if err != nil {
		return err
	}

	if _, err := s.repo.CreateLog(ctx, patient,
		fmt.Sprintf("Patient %s has logged out", patient.FullName())); err != nil {
		s.logger.WithPatientID(patient.ID).WithError(err).Error("Failed to create logout log entry")
	}

	return nil
}

// GetPatient retrieves a patient's profile by ID
func (s *Service) GetPatient(ctx context.Context, patientID string) (*types.Patient, error) {
	return s.repo.GetPatientByID(ctx, patientID)
}

// UpdateProfile applies the editable profile fields after running the same
// field rules registration uses. Email and password are not editable here.
func (s *Service) UpdateProfile(ctx context.Context, patientID string, req *types.ProfileUpdateRequest) (*types.Patient, error) {
	firstName := timefmt.Capitalize(req.FirstName)
	middleName := timefmt.Capitalize(req.MiddleName)
	lastName := timefmt.Capitalize(req.LastName)

	codes := validation.Collect(
		s.validator.VerifyFirstName(firstName),
		s.validator.VerifyMiddleName(middleName),
		s.validator.VerifyLastName(lastName),
		s.validator.VerifyDate(req.DateOfBirth),
		s.validator.VerifyGender(req.Gender),
		s.validator.VerifyPhoneNo(req.PhoneNo),
	)
	if len(codes) > 0 {
		return nil, types.NewValidationError("invalid form details", codes)
	}

	dateOfBirth, err := s.validator.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, types.NewValidationError("invalid date", []types.ErrorCode{types.CodeWrongDate})
	}

	patient, err := s.repo.GetPatientByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	patient.FirstName = firstName
	patient.MiddleName = middleName
	patient.LastName = lastName
	patient.DateOfBirth = dateOfBirth
	patient.Gender = req.Gender
	patient.PhoneNo = req.PhoneNo

	updated, err := s.repo.UpdatePatient(ctx, patient)
	if err != nil {
		return nil, err
	}

	s.logger.WithPatientID(patientID).Info("Updated patient profile")
	return updated, nil
}

// ChangeDoctor reassigns the patient to a new doctor. Switching to the
// currently assigned doctor is rejected.
func (s *Service) ChangeDoctor(ctx context.Context, patientID, newDoctorID string) error {
	patient, err := s.repo.GetPatientByID(ctx, patientID)
	if err != nil {
		return err
	}

	oldDoctor, err := s.repo.GetDoctorForPatient(ctx, patient)
	if err != nil {
		return err
	}

	newDoctor, err := s.repo.GetDoctorByID(ctx, newDoctorID)
	if err != nil {
		return err
	}

	if oldDoctor.ID == newDoctor.ID {
		return types.NewConflictError(types.CodeSameDoctor, "already registered with that doctor")
	}

	if err := s.repo.ChangeDoctor(ctx, patient, newDoctor); err != nil {
		return err
	}

	if _, err := s.repo.CreateNotification(ctx, patient, "Doctor Changed",
		fmt.Sprintf("You changed your doctor from %s to %s", oldDoctor.FullName(), newDoctor.FullName())); err != nil {
		s.logger.WithPatientID(patient.ID).WithError(err).Error("Failed to create doctor change notification")
	}
	if _, err := s.repo.CreateLog(ctx, patient,
		fmt.Sprintf("Patient %s has changed their doctor from Dr. %s to Dr. %s",
			patient.FullName(), oldDoctor.LastName, newDoctor.LastName)); err != nil {
		s.logger.WithPatientID(patient.ID).WithError(err).Error("Failed to create doctor change log entry")
	}

	s.logger.Audit(patient.ID, "change_doctor", newDoctor.ID, true, nil)
	return nil
}

// ListDoctors returns all doctors patients can register with
func (s *Service) ListDoctors(ctx context.Context) ([]*types.Doctor, error) {
	return s.repo.GetDoctors(ctx)
}
