package interfaces

import (
	"context"

	"github.com/clinicdesk/booking/pkg/types"
)

// AccountsService defines the interface for patient account management
type AccountsService interface {
	Register(ctx context.Context, req *types.RegistrationRequest) (*types.Patient, error)
	Login(ctx context.Context, email, password string) (*types.Patient, string, error)
	Logout(ctx context.Context, patientID string) error

	GetPatient(ctx context.Context, patientID string) (*types.Patient, error)
	UpdateProfile(ctx context.Context, patientID string, req *types.ProfileUpdateRequest) (*types.Patient, error)
	ChangeDoctor(ctx context.Context, patientID, newDoctorID string) error
	ListDoctors(ctx context.Context) ([]*types.Doctor, error)
}

// AccountsRepository defines the persistence capability for patient and
// doctor records. Implementations assign record identity at creation time.
type AccountsRepository interface {
	RegisterPatient(ctx context.Context, patient *types.Patient) (*types.Patient, error)
	GetPatientByID(ctx context.Context, id string) (*types.Patient, error)
	GetPatientByEmail(ctx context.Context, email string) (*types.Patient, error)
	UpdatePatient(ctx context.Context, patient *types.Patient) (*types.Patient, error)
	ChangeDoctor(ctx context.Context, patient *types.Patient, doctor *types.Doctor) error
	DeletePatient(ctx context.Context, id string) error

	GetDoctorByID(ctx context.Context, id string) (*types.Doctor, error)
	GetDoctorForPatient(ctx context.Context, patient *types.Patient) (*types.Doctor, error)
	GetDoctors(ctx context.Context) ([]*types.Doctor, error)

	CreateNotification(ctx context.Context, patient *types.Patient, header, message string) (*types.Notification, error)
	CreateLog(ctx context.Context, patient *types.Patient, message string) (*types.LogEntry, error)
}
