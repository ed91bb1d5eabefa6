// Package history maintains the optional incident index: past bug reports
// embedded into Qdrant so new reports can be enriched with similar prior
// incidents.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/bugsurgeon/gh-surgeon/internal/config"
	"github.com/bugsurgeon/gh-surgeon/internal/embedding"
	"github.com/bugsurgeon/gh-surgeon/internal/github"
	"github.com/bugsurgeon/gh-surgeon/internal/vectordb"
	"github.com/bugsurgeon/gh-surgeon/pkg/models"
)

// Store ties the embedder and the vector index together
type Store struct {
	cfg      *config.Config
	embedder *embedding.FallbackProvider
	vdb      *vectordb.Client
	dryRun   bool
}

// NewStore creates an incident store from config. Call only when
// cfg.History.Enabled is true.
func NewStore(cfg *config.Config, dryRun bool) (*Store, error) {
	embedder, err := embedding.NewFallbackProvider(&cfg.History.Embedding)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	vdb, err := vectordb.NewClient(&cfg.History.Qdrant)
	if err != nil {
		return nil, fmt.Errorf("failed to create vector DB client: %w", err)
	}

	return &Store{
		cfg:      cfg,
		embedder: embedder,
		vdb:      vdb,
		dryRun:   dryRun,
	}, nil
}

// Close releases resources
func (s *Store) Close() error {
	s.embedder.Close()
	return s.vdb.Close()
}

// FindSimilar returns past incidents similar to a report. When the report is
// bound to an issue, that issue is excluded from the results.
func (s *Store) FindSimilar(ctx context.Context, report *models.BugReport) ([]models.SimilarIncident, error) {
	text := embedding.PrepareIncidentText(report.Title, report.Text)
	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	org := report.Org
	if org == "" {
		org = s.cfg.Repository.Org
	}
	if org == "" {
		return nil, nil // nothing indexed without an org
	}

	collection := vectordb.CollectionName(org)
	threshold := s.cfg.History.SimilarityThreshold
	limit := s.cfg.History.MaxSimilar
	closedWeight := s.cfg.History.ClosedWeight

	if report.FromIssue() {
		return s.vdb.SearchExcluding(ctx, collection, vector, limit, threshold, closedWeight,
			report.Org, report.Repo, report.Number)
	}
	return s.vdb.Search(ctx, collection, vector, limit, threshold, closedWeight)
}

// FindSimilarByText searches the index for a free-text query
func (s *Store) FindSimilarByText(ctx context.Context, text, org string, limit int) ([]models.SimilarIncident, error) {
	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	collection := vectordb.CollectionName(org)
	return s.vdb.Search(ctx, collection, vector, limit,
		s.cfg.History.SimilarityThreshold, s.cfg.History.ClosedWeight)
}

// Record stores an analyzed incident in the index
func (s *Store) Record(ctx context.Context, inc *models.Incident) error {
	if s.dryRun {
		return nil
	}

	collection := vectordb.CollectionName(inc.Org)
	if err := s.vdb.EnsureCollection(ctx, collection); err != nil {
		return err
	}

	text := embedding.PrepareIncidentText(inc.Title, inc.Body)
	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to generate embedding: %w", err)
	}

	return s.vdb.Upsert(ctx, collection, inc, vector)
}

// IndexRepo bulk-indexes a repository's existing issues as incidents
func (s *Store) IndexRepo(ctx context.Context, gh *github.Client, org, repo string, batchSize int) (*models.IndexStats, error) {
	if batchSize == 0 {
		batchSize = 50
	}

	start := time.Now()
	stats := &models.IndexStats{}

	incidents, err := gh.ListAllIssues(ctx, org, repo, "all", batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}
	stats.TotalIssues = len(incidents)

	collection := vectordb.CollectionName(org)
	if !s.dryRun {
		if err := s.vdb.EnsureCollection(ctx, collection); err != nil {
			return nil, err
		}
	}

	for i := 0; i < len(incidents); i += batchSize {
		end := i + batchSize
		if end > len(incidents) {
			end = len(incidents)
		}
		batch := incidents[i:end]

		texts := make([]string, len(batch))
		for j, inc := range batch {
			texts[j] = embedding.PrepareIncidentText(inc.Title, inc.Body)
		}

		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			stats.Errors += len(batch)
			continue
		}

		if s.dryRun {
			stats.Skipped += len(batch)
			continue
		}

		if err := s.vdb.UpsertBatch(ctx, collection, batch, vectors); err != nil {
			stats.Errors += len(batch)
			continue
		}
		stats.Indexed += len(batch)
	}

	stats.DurationMs = int(time.Since(start).Milliseconds())
	return stats, nil
}
