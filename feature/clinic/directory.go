package clinic

import (
	"context"
	"errors"
	"fmt"

	"nemoris-api/core/storage"

	"gorm.io/gorm"
)

// Handles supplies the process dependencies to the route groups. It is satisfied by
// *bootstrap.Dependencies; handles may be unavailable on any call.
type Handles interface {
	DB() (*gorm.DB, error)
	Storage() (storage.Client, error)
}

// Directory is the gorm-backed repository shared by the route groups.
type Directory struct {
	db *gorm.DB
}

// NewDirectory wraps an open database handle.
func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

// OpenDirectory resolves the database handle from h.
func OpenDirectory(h Handles) (*Directory, error) {
	db, err := h.DB()
	if err != nil {
		return nil, err
	}
	return NewDirectory(db), nil
}

// ListDoctors returns doctors ordered by id, optionally only the available ones.
func (d *Directory) ListDoctors(ctx context.Context, onlyAvailable bool) ([]Doctor, error) {
	var doctors []Doctor
	q := d.db.WithContext(ctx).Order("id")
	if onlyAvailable {
		q = q.Where("available = ?", true)
	}
	if err := q.Find(&doctors).Error; err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

// LatestDoctors returns the most recently added doctors.
func (d *Directory) LatestDoctors(ctx context.Context, limit int) ([]Doctor, error) {
	var doctors []Doctor
	if err := d.db.WithContext(ctx).Order("id desc").Limit(limit).Find(&doctors).Error; err != nil {
		return nil, fmt.Errorf("failed to list latest doctors: %w", err)
	}
	return doctors, nil
}

// GetDoctor returns a doctor by id.
func (d *Directory) GetDoctor(ctx context.Context, id uint) (*Doctor, error) {
	var doctor Doctor
	err := d.db.WithContext(ctx).First(&doctor, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("doctor %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor %d: %w", id, err)
	}
	return &doctor, nil
}

// CreateDoctor inserts a doctor, rejecting duplicate emails.
func (d *Directory) CreateDoctor(ctx context.Context, doctor *Doctor) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&Doctor{}).Where("email = ?", doctor.Email).Count(&n).Error; err != nil {
			return fmt.Errorf("failed to check doctor email: %w", err)
		}
		if n > 0 {
			return fmt.Errorf("doctor %s: %w", doctor.Email, ErrConflict)
		}
		if err := tx.Create(doctor).Error; err != nil {
			return fmt.Errorf("failed to create doctor: %w", err)
		}
		return nil
	})
}

// ToggleAvailability flips a doctor's availability and returns the updated record.
func (d *Directory) ToggleAvailability(ctx context.Context, id uint) (*Doctor, error) {
	var doctor Doctor
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&doctor, id).Error; err != nil {
			return err
		}
		doctor.Available = !doctor.Available
		return tx.Model(&doctor).Update("available", doctor.Available).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("doctor %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to change availability of doctor %d: %w", id, err)
	}
	return &doctor, nil
}

// GetPatient returns a patient by id.
func (d *Directory) GetPatient(ctx context.Context, id uint) (*Patient, error) {
	var patient Patient
	err := d.db.WithContext(ctx).First(&patient, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("patient %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient %d: %w", id, err)
	}
	return &patient, nil
}

// PatientUpdate lists the profile fields a patient may change; nil fields are kept.
type PatientUpdate struct {
	Name    *string
	Phone   *string
	Address *string
	Gender  *string
	DOB     *string
}

func (u PatientUpdate) columns() map[string]any {
	cols := make(map[string]any)
	set := func(col string, v *string) {
		if v != nil {
			cols[col] = *v
		}
	}
	set("name", u.Name)
	set("phone", u.Phone)
	set("address", u.Address)
	set("gender", u.Gender)
	set("dob", u.DOB)
	return cols
}

// UpdatePatient applies u to the patient and returns the stored record.
func (d *Directory) UpdatePatient(ctx context.Context, id uint, u PatientUpdate) (*Patient, error) {
	patient, err := d.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}

	cols := u.columns()
	if len(cols) == 0 {
		return patient, nil
	}
	if err := d.db.WithContext(ctx).Model(patient).Updates(cols).Error; err != nil {
		return nil, fmt.Errorf("failed to update patient %d: %w", id, err)
	}
	return d.GetPatient(ctx, id)
}

// Counts returns the number of doctors and patients.
func (d *Directory) Counts(ctx context.Context) (doctors, patients int64, err error) {
	if err = d.db.WithContext(ctx).Model(&Doctor{}).Count(&doctors).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count doctors: %w", err)
	}
	if err = d.db.WithContext(ctx).Model(&Patient{}).Count(&patients).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count patients: %w", err)
	}
	return doctors, patients, nil
}
