package admin

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"nemoris-api/core/reconcile"
	"nemoris-api/core/storage"
	"nemoris-api/feature/clinic"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// maxMediaObjects caps a single media listing.
const maxMediaObjects = 1000

// latestDoctorsOnDashboard is how many recent doctors the dashboard shows.
const latestDoctorsOnDashboard = 5

// AddDoctorRequest is the body of POST /add-doctor.
type AddDoctorRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Image      string `json:"image"`
	Speciality string `json:"speciality"`
	Degree     string `json:"degree"`
	Experience string `json:"experience"`
	About      string `json:"about"`
	Fees       int    `json:"fees"`
}

// Validate checks the required fields.
func (r AddDoctorRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", clinic.ErrInvalid)
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("%w: a valid email is required", clinic.ErrInvalid)
	}
	if r.Fees < 0 {
		return fmt.Errorf("%w: fees must not be negative", clinic.ErrInvalid)
	}
	return nil
}

// Dashboard summarises the directory for administrators.
type Dashboard struct {
	Doctors       int64           `json:"doctors"`
	Patients      int64           `json:"patients"`
	MediaObjects  *int            `json:"mediaObjects,omitempty"`
	LatestDoctors []clinic.Doctor `json:"latestDoctors"`
}

// MediaObject describes a stored media file.
type MediaObject struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"contentType,omitempty"`
	LastModified time.Time `json:"lastModified"`
	URL          string    `json:"url"`
}

// MediaListing is one page of stored media. Truncated is set when the listing hit its cap.
type MediaListing struct {
	Media     []MediaObject `json:"media"`
	Truncated bool          `json:"truncated"`
}

// Service handles administrative operations.
type Service struct {
	handles   clinic.Handles
	bucket    string
	urlExpiry time.Duration
	audits    *reconcile.Cache
	logger    *zap.Logger
}

// NewService creates a new admin service.
func NewService(handles clinic.Handles, bucket string, urlExpiry time.Duration, logger *zap.Logger) *Service {
	return &Service{
		handles:   handles,
		bucket:    bucket,
		urlExpiry: urlExpiry,
		audits:    reconcile.NewCache(),
		logger:    logger,
	}
}

// AddDoctor validates and stores a new doctor. New doctors start available.
func (s *Service) AddDoctor(ctx context.Context, req AddDoctorRequest) (*clinic.Doctor, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	dir, err := clinic.OpenDirectory(s.handles)
	if err != nil {
		return nil, err
	}

	doc := &clinic.Doctor{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Image:      req.Image,
		Speciality: req.Speciality,
		Degree:     req.Degree,
		Experience: req.Experience,
		About:      req.About,
		Fees:       req.Fees,
		Available:  true,
	}
	if err := dir.CreateDoctor(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// AllDoctors returns every doctor.
func (s *Service) AllDoctors(ctx context.Context) ([]clinic.Doctor, error) {
	dir, err := clinic.OpenDirectory(s.handles)
	if err != nil {
		return nil, err
	}
	return dir.ListDoctors(ctx, false)
}

// Dashboard gathers directory counts. The media count is omitted, not failed, when
// storage is unavailable.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	dir, err := clinic.OpenDirectory(s.handles)
	if err != nil {
		return nil, err
	}

	doctors, patients, err := dir.Counts(ctx)
	if err != nil {
		return nil, err
	}
	latest, err := dir.LatestDoctors(ctx, latestDoctorsOnDashboard)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{Doctors: doctors, Patients: patients, LatestDoctors: latest}

	if n, err := s.countMedia(ctx); err != nil {
		s.logger.Warn("Media count unavailable for dashboard", zap.Error(err))
	} else {
		d.MediaObjects = &n
	}
	return d, nil
}

func (s *Service) countMedia(ctx context.Context) (int, error) {
	store, err := s.handles.Storage()
	if err != nil {
		return 0, err
	}
	keys, err := reconcile.ListStorageSet(ctx, store, s.bucket, "")
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

// ListMedia lists stored media under prefix with presigned download URLs.
func (s *Service) ListMedia(ctx context.Context, prefix string) (*MediaListing, error) {
	store, err := s.handles.Storage()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	listing := &MediaListing{Media: make([]MediaObject, 0)}
	for obj := range store.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list media: %w", obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		if len(listing.Media) == maxMediaObjects {
			listing.Truncated = true
			break
		}

		u, err := presign(ctx, store, s.bucket, obj.Key, s.urlExpiry)
		if err != nil {
			return nil, err
		}
		listing.Media = append(listing.Media, MediaObject{
			Key:          obj.Key,
			Size:         obj.Size,
			ContentType:  obj.ContentType,
			LastModified: obj.LastModified,
			URL:          u,
		})
	}
	return listing, nil
}

func presign(ctx context.Context, store storage.Client, bucket, key string, expiry time.Duration) (string, error) {
	u, err := store.PresignedGetObject(ctx, bucket, key, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", key, err)
	}
	return u.String(), nil
}
