// Package user implements the patient-facing route group, mounted under /api/user.
//
// # HTTP Endpoints
//
//   - GET /api/user/doctors      : doctors currently accepting appointments.
//   - GET /api/user/profile/:id  : a patient's profile.
//   - PUT /api/user/profile/:id  : partial profile update (name, phone, address, gender, dob).
package user
