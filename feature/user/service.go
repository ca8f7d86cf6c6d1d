package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nemoris-api/feature/clinic"

	"go.uber.org/zap"
)

// UpdateProfileRequest is the body of PUT /profile/:id. Omitted fields are left unchanged.
type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Gender  *string `json:"gender"`
	DOB     *string `json:"dob"`
}

// Validate checks the fields that are present.
func (r UpdateProfileRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", clinic.ErrInvalid)
	}
	if r.DOB != nil && *r.DOB != "" {
		if _, err := time.Parse(time.DateOnly, *r.DOB); err != nil {
			return fmt.Errorf("%w: dob must be formatted as YYYY-MM-DD", clinic.ErrInvalid)
		}
	}
	return nil
}

// Service handles patient-facing operations.
type Service struct {
	handles clinic.Handles
	logger  *zap.Logger
}

// NewService creates a new user service.
func NewService(handles clinic.Handles, logger *zap.Logger) *Service {
	return &Service{handles: handles, logger: logger}
}

// ListDoctors returns the doctors currently accepting appointments.
func (s *Service) ListDoctors(ctx context.Context) ([]clinic.Doctor, error) {
	dir, err := clinic.OpenDirectory(s.handles)
	if err != nil {
		return nil, err
	}
	return dir.ListDoctors(ctx, true)
}

// GetProfile returns a patient's profile.
func (s *Service) GetProfile(ctx context.Context, id uint) (*clinic.Patient, error) {
	dir, err := clinic.OpenDirectory(s.handles)
	if err != nil {
		return nil, err
	}
	return dir.GetPatient(ctx, id)
}

// UpdateProfile validates and applies a profile change.
func (s *Service) UpdateProfile(ctx context.Context, id uint, req UpdateProfileRequest) (*clinic.Patient, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	dir, err := clinic.OpenDirectory(s.handles)
	if err != nil {
		return nil, err
	}
	return dir.UpdatePatient(ctx, id, clinic.PatientUpdate{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Gender:  req.Gender,
		DOB:     req.DOB,
	})
}
