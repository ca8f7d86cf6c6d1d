package clinic_test

import (
	"context"
	"testing"

	"nemoris-api/feature/clinic"
	"nemoris-api/feature/clinic/clinictest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDoctors(t *testing.T, dir *clinic.Directory) {
	t.Helper()
	ctx := context.Background()
	for _, d := range []clinic.Doctor{
		{Name: "Dr. Grey", Email: "grey@example.com", Speciality: "General physician", Available: true},
		{Name: "Dr. House", Email: "house@example.com", Speciality: "Neurologist", Available: false},
		{Name: "Dr. Quinn", Email: "quinn@example.com", Speciality: "Pediatrician", Available: true},
	} {
		doc := d
		require.NoError(t, dir.CreateDoctor(ctx, &doc))
	}
}

func TestDirectory_Doctors(t *testing.T) {
	ctx := context.Background()
	dir := clinic.NewDirectory(clinictest.NewDB(t))
	seedDoctors(t, dir)

	t.Run("ListAll", func(t *testing.T) {
		doctors, err := dir.ListDoctors(ctx, false)
		require.NoError(t, err)
		assert.Len(t, doctors, 3)
		assert.Equal(t, "Dr. Grey", doctors[0].Name)
	})

	t.Run("ListAvailable", func(t *testing.T) {
		doctors, err := dir.ListDoctors(ctx, true)
		require.NoError(t, err)
		require.Len(t, doctors, 2)
		for _, d := range doctors {
			assert.True(t, d.Available)
		}
	})

	t.Run("Latest", func(t *testing.T) {
		doctors, err := dir.LatestDoctors(ctx, 2)
		require.NoError(t, err)
		require.Len(t, doctors, 2)
		assert.Equal(t, "Dr. Quinn", doctors[0].Name)
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, err := dir.GetDoctor(ctx, 999)
		assert.ErrorIs(t, err, clinic.ErrNotFound)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		err := dir.CreateDoctor(ctx, &clinic.Doctor{Name: "Copy", Email: "grey@example.com"})
		assert.ErrorIs(t, err, clinic.ErrConflict)
	})

	t.Run("ToggleAvailability", func(t *testing.T) {
		d, err := dir.ToggleAvailability(ctx, 2)
		require.NoError(t, err)
		assert.True(t, d.Available)

		stored, err := dir.GetDoctor(ctx, 2)
		require.NoError(t, err)
		assert.True(t, stored.Available)

		d, err = dir.ToggleAvailability(ctx, 2)
		require.NoError(t, err)
		assert.False(t, d.Available)
	})

	t.Run("ToggleMissing", func(t *testing.T) {
		_, err := dir.ToggleAvailability(ctx, 999)
		assert.ErrorIs(t, err, clinic.ErrNotFound)
	})
}

func TestDirectory_Patients(t *testing.T) {
	ctx := context.Background()
	db := clinictest.NewDB(t)
	dir := clinic.NewDirectory(db)

	require.NoError(t, db.Create(&clinic.Patient{Name: "Ada", Email: "ada@example.com", Phone: "111"}).Error)

	t.Run("Get", func(t *testing.T) {
		p, err := dir.GetPatient(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Ada", p.Name)
	})

	t.Run("UpdatePartial", func(t *testing.T) {
		phone := "222"
		empty := ""
		p, err := dir.UpdatePatient(ctx, 1, clinic.PatientUpdate{Phone: &phone, Address: &empty})
		require.NoError(t, err)
		assert.Equal(t, "Ada", p.Name)
		assert.Equal(t, "222", p.Phone)
		assert.Equal(t, "", p.Address)
	})

	t.Run("UpdateNothing", func(t *testing.T) {
		p, err := dir.UpdatePatient(ctx, 1, clinic.PatientUpdate{})
		require.NoError(t, err)
		assert.Equal(t, "222", p.Phone)
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		name := "Nobody"
		_, err := dir.UpdatePatient(ctx, 42, clinic.PatientUpdate{Name: &name})
		assert.ErrorIs(t, err, clinic.ErrNotFound)
	})

	t.Run("Counts", func(t *testing.T) {
		require.NoError(t, dir.CreateDoctor(ctx, &clinic.Doctor{Name: "Dr. Who", Email: "who@example.com"}))
		doctors, patients, err := dir.Counts(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, doctors)
		assert.EqualValues(t, 1, patients)
	})
}
