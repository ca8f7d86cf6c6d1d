package doctor

import (
	"context"
	"fmt"

	"nemoris-api/feature/clinic"

	"go.uber.org/zap"
)

// ChangeAvailabilityRequest is the body of POST /change-availability.
type ChangeAvailabilityRequest struct {
	DoctorID uint `json:"doctorId"`
}

// Service handles doctor directory operations.
type Service struct {
	handles clinic.Handles
	logger  *zap.Logger
}

// NewService creates a new doctor service.
func NewService(handles clinic.Handles, logger *zap.Logger) *Service {
	return &Service{handles: handles, logger: logger}
}

// List returns every doctor.
func (s *Service) List(ctx context.Context) ([]clinic.Doctor, error) {
	dir, err := clinic.OpenDirectory(s.handles)
	if err != nil {
		return nil, err
	}
	return dir.ListDoctors(ctx, false)
}

// Profile returns a single doctor.
func (s *Service) Profile(ctx context.Context, id uint) (*clinic.Doctor, error) {
	dir, err := clinic.OpenDirectory(s.handles)
	if err != nil {
		return nil, err
	}
	return dir.GetDoctor(ctx, id)
}

// ChangeAvailability toggles whether the doctor accepts appointments.
func (s *Service) ChangeAvailability(ctx context.Context, req ChangeAvailabilityRequest) (*clinic.Doctor, error) {
	if req.DoctorID == 0 {
		return nil, fmt.Errorf("%w: doctorId is required", clinic.ErrInvalid)
	}
	dir, err := clinic.OpenDirectory(s.handles)
	if err != nil {
		return nil, err
	}
	return dir.ToggleAvailability(ctx, req.DoctorID)
}
