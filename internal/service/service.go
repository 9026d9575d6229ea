// Package service wires the analysis components into ready-to-use operations.
package service

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/heapscope/internal/classifier"
	"github.com/heapscope/internal/comparator"
	"github.com/heapscope/internal/detector"
	"github.com/heapscope/internal/explorer"
	"github.com/heapscope/internal/formatter"
	"github.com/heapscope/internal/repository"
	"github.com/heapscope/internal/snapshot"
	"github.com/heapscope/internal/statistics"
	"github.com/heapscope/internal/storage"
	"github.com/heapscope/internal/tracer"
	"github.com/heapscope/pkg/config"
	apperrors "github.com/heapscope/pkg/errors"
	"github.com/heapscope/pkg/model"
	"github.com/heapscope/pkg/telemetry"
	"github.com/heapscope/pkg/utils"
	"github.com/heapscope/pkg/writer"
)

// Service orchestrates snapshot access, analysis, formatting, and the
// optional run history and report artifacts.
type Service struct {
	config *config.Config
	logger utils.Logger
	clock  utils.Clock

	cache      *snapshot.Cache
	explorer   *explorer.Explorer
	detector   *detector.Detector
	classifier *classifier.Classifier
	comparator *comparator.Comparator
	tracer     *tracer.Tracer
	formatters *formatter.Registry

	storage storage.Storage
	repos   *repository.Repositories
}

// New creates a Service from the configuration. The run-history store is
// opened only when enabled; analysis works without it.
func New(cfg *config.Config, logger utils.Logger) (*Service, error) {
	if logger == nil {
		logger = utils.NewDefaultLogger(utils.LevelInfo, nil)
	}
	clock := utils.NewRealClock()

	provider := snapshot.NewJSONFileProvider(cfg.Analysis.SnapshotDir)
	cache := snapshot.NewCache(provider, logger)

	s := &Service{
		config:     cfg,
		logger:     logger,
		clock:      clock,
		cache:      cache,
		explorer:   explorer.New(cache, logger, clock),
		detector:   detector.New(),
		classifier: classifier.New(logger),
		comparator: comparator.New(logger),
		tracer:     tracer.New(cache, logger),
		formatters: formatter.NewRegistry(),
	}

	store, err := storage.New(&cfg.Storage)
	if err != nil {
		return nil, err
	}
	s.storage = store

	if cfg.History.Enabled {
		db, err := repository.NewGormDB(&cfg.History)
		if err != nil {
			return nil, err
		}
		s.repos = repository.NewRepositories(db)
	}

	return s, nil
}

// Close releases the run-history connection if one was opened.
func (s *Service) Close() error {
	if s.repos != nil {
		return s.repos.Close()
	}
	return nil
}

// Formatters returns the formatter registry for presentation layers.
func (s *Service) Formatters() *formatter.Registry {
	return s.formatters
}

// Runs returns the run-history repository, or nil when history is disabled.
func (s *Service) Runs() repository.RunRepository {
	if s.repos == nil {
		return nil
	}
	return s.repos.Runs
}

// ExploreOptions builds explorer options from the configuration.
func (s *Service) ExploreOptions() explorer.Options {
	return explorer.Options{
		MaxDepth:            s.config.Analysis.MaxDepth,
		MaxChildrenPerLevel: s.config.Analysis.MaxChildrenPerLevel,
		MaxNodes:            s.config.Analysis.MaxNodes,
		TimeBudget:          time.Duration(s.config.Analysis.TimeBudgetMS) * time.Millisecond,
		FollowArrays:        s.config.Analysis.FollowArrays,
		FollowObjects:       s.config.Analysis.FollowObjects,
		ShowPrimitives:      s.config.Analysis.ShowPrimitives,
	}
}

// Explore runs a budgeted traversal from the start node and annotates the
// tree with structural patterns.
func (s *Service) Explore(ctx context.Context, snapshotID, startNodeID string, opts explorer.Options) (*model.AnalysisResult, error) {
	ctx, span := s.startSpan(ctx, "heapscope.explore", snapshotID)
	defer span.End()

	started := s.clock.Now()
	timer := utils.NewTimer("explore", s.clock)

	stop := timer.Start("snapshot")
	if err := s.ensureSnapshot(ctx, snapshotID); err != nil {
		return nil, err
	}
	stop()

	stop = timer.Start("traverse")
	tree, err := s.explorer.Explore(ctx, snapshotID, startNodeID, opts)
	if err != nil {
		return nil, err
	}
	stop()

	stop = timer.Start("detect")
	s.detector.Annotate(tree)
	stop()

	result := s.newResult(snapshotID, model.ResultExplore, started, timer)
	result.Tree = tree
	s.recordRun(ctx, result)
	return result, nil
}

// ClassifyGlobals scans the whole snapshot for suspicious global-scope objects.
func (s *Service) ClassifyGlobals(ctx context.Context, snapshotID string) (*model.AnalysisResult, error) {
	ctx, span := s.startSpan(ctx, "heapscope.classify", snapshotID)
	defer span.End()

	started := s.clock.Now()
	timer := utils.NewTimer("classify", s.clock)

	stop := timer.Start("snapshot")
	if err := s.ensureSnapshot(ctx, snapshotID); err != nil {
		return nil, err
	}
	snap, err := s.cache.GetSnapshot(ctx, snapshotID)
	if err != nil {
		return nil, err
	}
	stop()

	stop = timer.Start("classify")
	report := s.classifier.Classify(snapshotID, snap.Nodes())
	stop()

	result := s.newResult(snapshotID, model.ResultGlobalScope, started, timer)
	result.GlobalScope = report
	s.recordRun(ctx, result)
	return result, nil
}

// Compare detects growth patterns between a before and an after snapshot.
func (s *Service) Compare(ctx context.Context, beforeID, afterID string) (*model.AnalysisResult, error) {
	ctx, span := s.startSpan(ctx, "heapscope.compare", afterID)
	defer span.End()

	started := s.clock.Now()
	timer := utils.NewTimer("compare", s.clock)

	stop := timer.Start("snapshot")
	if err := s.ensureSnapshot(ctx, beforeID); err != nil {
		return nil, err
	}
	if err := s.ensureSnapshot(ctx, afterID); err != nil {
		return nil, err
	}

	before, err := s.cache.GetSnapshot(ctx, beforeID)
	if err != nil {
		return nil, err
	}
	after, err := s.cache.GetSnapshot(ctx, afterID)
	if err != nil {
		return nil, err
	}
	stop()

	stop = timer.Start("compare")
	report := s.comparator.Compare(ctx, before.Nodes(), after.Nodes())
	stop()

	result := s.newResult(afterID, model.ResultComparison, started, timer)
	result.Comparison = report
	s.recordRun(ctx, result)
	return result, nil
}

// Trace explains why a node is retained by walking its referrer chain.
func (s *Service) Trace(ctx context.Context, snapshotID, nodeID string) (*model.AnalysisResult, error) {
	ctx, span := s.startSpan(ctx, "heapscope.trace", snapshotID)
	defer span.End()

	started := s.clock.Now()
	timer := utils.NewTimer("trace", s.clock)

	stop := timer.Start("snapshot")
	if err := s.ensureSnapshot(ctx, snapshotID); err != nil {
		return nil, err
	}
	stop()

	stop = timer.Start("trace")
	trace, err := s.tracer.Trace(ctx, snapshotID, nodeID)
	if err != nil {
		return nil, err
	}
	stop()

	result := s.newResult(snapshotID, model.ResultTrace, started, timer)
	result.Trace = trace
	s.recordRun(ctx, result)
	return result, nil
}

// TopNodes ranks the snapshot's largest objects and aggregates per-type
// counts and sizes.
func (s *Service) TopNodes(ctx context.Context, snapshotID string, topN int) (*statistics.TopNodesResult, error) {
	ctx, span := s.startSpan(ctx, "heapscope.stats", snapshotID)
	defer span.End()

	if err := s.ensureSnapshot(ctx, snapshotID); err != nil {
		return nil, err
	}
	snap, err := s.cache.GetSnapshot(ctx, snapshotID)
	if err != nil {
		return nil, err
	}

	opts := []statistics.TopNodesOption{}
	if topN > 0 {
		opts = append(opts, statistics.WithTopN(topN))
	}
	return statistics.NewTopNodesCalculator(opts...).Calculate(snap.Nodes()), nil
}

// WriteReport writes the result as a JSON artifact under the output
// directory and mirrors it to object storage. It returns the local path.
// Explored trees can run large, so they are written gzipped.
func (s *Service) WriteReport(ctx context.Context, result *model.AnalysisResult) (string, error) {
	base := filepath.Join(s.config.Analysis.OutputDir,
		result.RunUUID+"-"+string(result.ResultType))

	var path string
	var err error
	if result.Tree != nil {
		path = base + ".json.gz"
		err = writer.NewGzipJSONWriter[*model.AnalysisResult]().WriteToFile(result, path)
	} else {
		path = base + ".json"
		err = writer.NewPrettyJSONWriter[*model.AnalysisResult]().WriteToFile(result, path)
	}
	if err != nil {
		return "", err
	}

	key := storage.ReportKey(result.RunUUID, string(result.ResultType))
	if result.Tree != nil {
		key += ".gz"
	}
	if err := s.storage.UploadFile(ctx, key, path); err != nil {
		s.logger.Warn("failed to mirror report to storage: %v", err)
	}
	return path, nil
}

// ensureSnapshot makes the snapshot file available locally, pulling it from
// object storage when the snapshot directory does not already hold it.
func (s *Service) ensureSnapshot(ctx context.Context, snapshotID string) error {
	localPath := filepath.Join(s.config.Analysis.SnapshotDir, snapshotID+".heap.json")
	if _, err := os.Stat(localPath); err == nil {
		return nil
	}

	key := storage.SnapshotKey(snapshotID)
	exists, err := s.storage.Exists(ctx, key)
	if err != nil || !exists {
		// Let the provider report its own not-found; alternate file name
		// forms are resolved there.
		return nil
	}

	s.logger.Info("fetching snapshot %s from storage", snapshotID)
	if err := s.storage.DownloadFile(ctx, key, localPath); err != nil {
		return apperrors.Wrap(apperrors.CodeDownloadError, "failed to fetch snapshot", err)
	}
	return nil
}

// newResult builds the result envelope shared by all operations.
func (s *Service) newResult(snapshotID string, resultType model.ResultType, started time.Time, timer *utils.Timer) *model.AnalysisResult {
	s.logger.Debug("%s", timer.Summary())
	return &model.AnalysisResult{
		RunUUID:     uuid.NewString(),
		SnapshotID:  snapshotID,
		ResultType:  resultType,
		GeneratedAt: started,
		Duration:    timer.Total().Milliseconds(),
	}
}

// recordRun persists the run summary when history is enabled. Persistence
// failures are logged, never returned: analysis output matters more than
// bookkeeping.
func (s *Service) recordRun(ctx context.Context, result *model.AnalysisResult) {
	if s.repos == nil {
		return
	}
	summary := s.formatters.FormatSummary(result)
	if err := s.repos.Runs.SaveRun(ctx, result, summary); err != nil {
		s.logger.Warn("failed to record run %s: %v", result.RunUUID, err)
	}
}

func (s *Service) startSpan(ctx context.Context, name, snapshotID string) (context.Context, trace.Span) {
	return otel.Tracer(telemetry.TracerName).Start(ctx, name,
		trace.WithAttributes(attribute.String("heapscope.snapshot_id", snapshotID)))
}
