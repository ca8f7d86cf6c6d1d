// Package doctor implements the doctor route group, mounted under /api/doctor.
//
// # HTTP Endpoints
//
//   - GET  /api/doctor/list                : all doctors.
//   - GET  /api/doctor/profile/:id         : a single doctor.
//   - POST /api/doctor/change-availability : toggles availability, body {"doctorId": n}.
package doctor
