package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hperssn/meditate/internal/domain"
	"github.com/hperssn/meditate/internal/storage"
)

// Opener connects to the catalog database. Connection failures are part of
// Load and fall back like any other failure.
type Opener func(ctx context.Context) (storage.Repository, error)

// Recorder receives the outcome of a load. metrics.Metrics satisfies it.
type Recorder interface {
	CatalogLoaded(sessions int, usingFallback bool)
}

type Provider struct {
	open     Opener
	timeout  time.Duration
	log      *logrus.Entry
	recorder Recorder
}

func NewProvider(open Opener, timeout time.Duration, log *logrus.Entry, recorder Recorder) *Provider {
	return &Provider{
		open:     open,
		timeout:  timeout,
		log:      log,
		recorder: recorder,
	}
}

// Load queries the database once. Any error yields the fallback catalog; Load
// itself never fails.
func (p *Provider) Load(ctx context.Context) *domain.Catalog {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	var cat *domain.Catalog
	sessions, err := p.query(ctx)
	if err != nil {
		p.log.WithError(err).Warn("Catalog database unavailable, using demo data")
		cat = domain.NewCatalog(FallbackSessions(), true)
	} else {
		p.log.WithField("count", len(sessions)).Info("Successfully loaded sessions from database")
		cat = domain.NewCatalog(sessions, false)
	}

	if p.recorder != nil {
		p.recorder.CatalogLoaded(cat.Len(), cat.UsingFallback())
	}
	return cat
}

func (p *Provider) query(ctx context.Context) ([]domain.SessionRecord, error) {
	if p.open == nil {
		return nil, fmt.Errorf("no catalog database configured")
	}

	repo, err := p.open(ctx)
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	rows, err := repo.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}

	sessions := make([]domain.SessionRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.ToDomain()
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, rec)
	}

	return sessions, nil
}
