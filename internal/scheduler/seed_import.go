package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/toolhub/toolhub/internal/catalog"
	"github.com/toolhub/toolhub/internal/domain"
	"github.com/toolhub/toolhub/internal/logger"
	"github.com/toolhub/toolhub/internal/sources/seedfile"
)

// SeedImporter handles periodic import of curated tools from the seed file
type SeedImporter struct {
	loader        *seedfile.Loader
	mapper        *seedfile.Mapper
	catalog       *catalog.Store
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewSeedImporter creates a new seed importer
func NewSeedImporter(
	seedFile string,
	cat *catalog.Store,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *SeedImporter {
	return &SeedImporter{
		loader:        seedfile.NewLoader(seedFile),
		mapper:        seedfile.NewMapper(),
		catalog:       cat,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic import process
func (si *SeedImporter) Start(ctx context.Context) error {
	// Import immediately on start
	if err := si.Import(ctx); err != nil {
		return fmt.Errorf("initial seed import failed: %w", err)
	}

	ticker := time.NewTicker(si.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := si.Import(ctx); err != nil {
					si.logger.Error("failed to import seed tools",
						logger.Error(err))
				}
			case <-si.manualTrigger:
				si.logger.Info("manual seed import triggered")
				if err := si.Import(ctx); err != nil {
					si.logger.Error("failed to import seed tools",
						logger.Error(err))
				}
			case <-si.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the importer
func (si *SeedImporter) Stop() {
	close(si.stopCh)
}

// Import loads the seed file and appends any tools whose ids are not
// yet in the catalog. Existing tools are never modified: admin edits
// win over seed content.
func (si *SeedImporter) Import(ctx context.Context) error {
	si.logger.Info("importing tools from seed file")

	config, err := si.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load seed file: %w", err)
	}

	seedTools, err := si.mapper.MapTools(config)
	if err != nil {
		return fmt.Errorf("failed to map seed tools: %w", err)
	}

	si.logger.Info("loaded tools from seed file",
		logger.Int("count", len(seedTools)))

	// The id check and the append run atomically against other catalog
	// writers, so an admin save landing mid-import is never lost.
	added := 0
	si.catalog.Update(ctx, func(current []domain.Tool) []domain.Tool {
		known := make(map[string]bool, len(current))
		for _, t := range current {
			known[t.ID] = true
		}

		var fresh []domain.Tool
		for _, t := range seedTools {
			if known[t.ID] {
				continue
			}
			fresh = append(fresh, t)
		}
		if len(fresh) == 0 {
			return nil
		}
		added = len(fresh)
		return append(current, fresh...)
	})

	if added == 0 {
		si.logger.Debug("no new seed tools to import")
		return nil
	}

	si.logger.Info("seed import completed",
		logger.Int("added", added))
	return nil
}
