// Package admin implements the administrative route group, mounted under /api/admin.
//
// It is the only route group using both process dependencies: the database for the
// doctor directory and the media storage bucket for image listings.
//
// # HTTP Endpoints
//
//   - POST /api/admin/add-doctor  : create a doctor.
//   - GET  /api/admin/all-doctors : every doctor.
//   - GET  /api/admin/dashboard   : doctor/patient counts, media count, latest doctors.
//   - GET  /api/admin/media       : stored media with presigned URLs (supports ?prefix=).
//   - GET  /api/admin/media/audit : image references vs stored objects (?prefix=, ?purge=).
//   - POST /api/admin/media/reconcile : delete orphaned objects and clear broken
//     references; requires {"confirm": true}.
//
// # Media reconciliation
//
// Doctor and patient images hold bucket keys. External URLs are ignored. The audit
// runs on core/reconcile with a short-lived cached index; a reconcile always plans against
// fresh sources.
package admin
