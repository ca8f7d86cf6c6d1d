package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nemoris-api/core/reconcile"
	"nemoris-api/core/storage"
	"nemoris-api/feature/clinic"

	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"
)

// mediaAuditTTL is how long an audit index is reused between requests.
const mediaAuditTTL = time.Minute

// ReconcileMediaRequest is the body of POST /media/reconcile.
type ReconcileMediaRequest struct {
	Prefix  string `json:"prefix"`
	Confirm bool   `json:"confirm"`
	DryRun  bool   `json:"dryRun"`
}

// ReconcileMediaResult reports a reconcile run.
type ReconcileMediaResult struct {
	Plan     *reconcile.Plan `json:"plan"`
	Executed int             `json:"executed"`
}

// MediaKey extracts the bucket key from a stored image value. External URLs are not
// bucket objects and report false.
func MediaKey(image string) (string, bool) {
	image = strings.TrimSpace(image)
	if image == "" || strings.Contains(image, "://") {
		return "", false
	}
	key := strings.TrimLeft(image, "/")
	return key, key != ""
}

// mediaAdapter reconciles doctor and patient images with the media bucket.
type mediaAdapter struct {
	db     *gorm.DB
	client storage.Client
	bucket string
}

type imageRow struct {
	ID    uint
	Image string
}

func (a *mediaAdapter) Name() string {
	return "media"
}

func (a *mediaAdapter) LoadReferences(ctx context.Context, db *gorm.DB) (map[string][]string, error) {
	sources := []struct {
		owner string
		model any
	}{
		{"doctor", &clinic.Doctor{}},
		{"patient", &clinic.Patient{}},
	}

	refs := make(map[string][]string)
	for _, src := range sources {
		var rows []imageRow
		err := db.WithContext(ctx).Model(src.model).
			Select("id", "image").
			Where("image <> ?", "").
			Find(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load %s images: %w", src.owner, err)
		}
		for _, r := range rows {
			if key, ok := MediaKey(r.Image); ok {
				refs[key] = append(refs[key], fmt.Sprintf("%s:%d", src.owner, r.ID))
			}
		}
	}
	return refs, nil
}

func (a *mediaAdapter) LoadStorageSet(ctx context.Context, client storage.Client, bucket, prefix string) (map[string]struct{}, error) {
	return reconcile.ListStorageSet(ctx, client, bucket, prefix)
}

func (a *mediaAdapter) ClearReferences(ctx context.Context, key string) error {
	values := []string{key, "/" + key}
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&clinic.Doctor{}).Where("image IN ?", values).Update("image", "").Error; err != nil {
			return err
		}
		return tx.Model(&clinic.Patient{}).Where("image IN ?", values).Update("image", "").Error
	})
}

func (a *mediaAdapter) DeleteStorage(ctx context.Context, key string) error {
	return a.client.RemoveObject(ctx, a.bucket, key, minio.RemoveObjectOptions{})
}

// mediaSpec resolves both dependencies and describes an audit of prefix.
func (s *Service) mediaSpec(prefix string) (*reconcile.Spec, *gorm.DB, storage.Client, error) {
	db, err := s.handles.DB()
	if err != nil {
		return nil, nil, nil, err
	}
	store, err := s.handles.Storage()
	if err != nil {
		return nil, nil, nil, err
	}

	spec := &reconcile.Spec{
		Adapter:       &mediaAdapter{db: db, client: store, bucket: s.bucket},
		Bucket:        s.bucket,
		StoragePrefix: prefix,
		CacheTTL:      mediaAuditTTL,
	}
	return spec, db, store, nil
}

// AuditMedia compares image references with stored objects. With purge set the plan
// lists the repairs ReconcileMedia would perform.
func (s *Service) AuditMedia(ctx context.Context, prefix string, purge bool) (*reconcile.Plan, error) {
	spec, db, store, err := s.mediaSpec(prefix)
	if err != nil {
		return nil, err
	}
	return reconcile.ReconcileWithPlan(ctx, spec, s.audits, db, store, reconcile.Options{DoPurge: purge})
}

// ReconcileMedia deletes orphaned objects and clears broken image references.
func (s *Service) ReconcileMedia(ctx context.Context, req ReconcileMediaRequest) (*ReconcileMediaResult, error) {
	if !req.Confirm {
		return nil, fmt.Errorf("%w: confirm must be true", clinic.ErrInvalid)
	}

	spec, db, store, err := s.mediaSpec(req.Prefix)
	if err != nil {
		return nil, err
	}

	// Always plan against fresh sources before mutating.
	s.audits.Invalidate(spec)

	opts := reconcile.Options{DoPurge: true, Confirmed: req.Confirm, DryRun: req.DryRun}
	plan, executed, err := reconcile.ReconcileAndApply(ctx, spec, s.audits, db, store, opts)
	if err != nil {
		return nil, err
	}
	return &ReconcileMediaResult{Plan: plan, Executed: executed}, nil
}
