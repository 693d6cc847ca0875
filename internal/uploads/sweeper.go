package uploads

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// RefLister reports every image reference currently held by a project
// row. Implemented by the projects repository.
type RefLister interface {
	ImageRefs(ctx context.Context) ([]string, error)
}

// Sweeper reconciles the upload store against the database. An upload
// whose file write succeeded but whose row insert never landed is
// invisible to the application; the sweep removes such orphans once
// they are older than the grace period. The grace period keeps it from
// racing an in-flight create between file write and row insert.
type Sweeper struct {
	store Store
	refs  RefLister
	grace time.Duration
	log   *logrus.Logger
}

func NewSweeper(store Store, refs RefLister, log *logrus.Logger) *Sweeper {
	if log == nil {
		log = logrus.New()
	}
	return &Sweeper{
		store: store,
		refs:  refs,
		grace: time.Hour,
		log:   log,
	}
}

// Sweep removes unreferenced uploads older than the grace period and
// returns how many were removed.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	refs, err := s.refs.ImageRefs(ctx)
	if err != nil {
		return 0, err
	}
	referenced := make(map[string]struct{}, len(refs))
	for _, r := range refs {
		referenced[r] = struct{}{}
	}

	files, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-s.grace)
	removed := 0
	for _, f := range files {
		if _, ok := referenced[f.Ref]; ok {
			continue
		}
		if f.ModTime.After(cutoff) {
			continue
		}
		if err := s.store.Remove(ctx, f.Ref); err != nil {
			s.log.WithError(err).WithField("ref", f.Ref).Warn("failed to remove orphaned upload")
			continue
		}
		removed++
	}

	if removed > 0 {
		s.log.WithField("removed", removed).Info("orphaned upload sweep finished")
	}
	return removed, nil
}

// Schedule runs the sweep on the given cron spec and returns the
// started scheduler so the caller can stop it on shutdown.
func (s *Sweeper) Schedule(spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if _, err := s.Sweep(ctx); err != nil {
			s.log.WithError(err).Error("orphaned upload sweep failed")
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
