// Package worker consumes transcription jobs from the bus and runs them
// through the pipeline, publishing progress and results.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/scrivenlabs/scriven/internal/bus"
	"github.com/scrivenlabs/scriven/internal/config"
	"github.com/scrivenlabs/scriven/internal/media"
	"github.com/scrivenlabs/scriven/internal/pipeline"
	"github.com/scrivenlabs/scriven/internal/protocol"
)

// Job intake runs over a JetStream stream so submissions sent while the
// daemon is down are delivered once a worker subscribes again.
const (
	jobStream   = "SCRIVEN_JOBS"
	jobQueue    = "scriven-workers"
	jobConsumer = "scriven-worker"
)

type Service struct {
	cfg     config.WorkerConfig
	bus     *bus.Client
	runner  *pipeline.Runner
	log     *slog.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	sub     *nats.Subscription
	wg      sync.WaitGroup
	sem     chan struct{}
	metrics *jobMetrics
	ready   bool
}

type jobMetrics struct {
	started   metric.Int64Counter
	completed metric.Int64Counter
	failed    metric.Int64Counter
	duration  metric.Float64Histogram
}

func newJobMetrics() (*jobMetrics, error) {
	meter := otel.Meter("github.com/scrivenlabs/scriven/worker")
	started, err := meter.Int64Counter("scriven.jobs.started",
		metric.WithDescription("Transcription jobs accepted from the bus"))
	if err != nil {
		return nil, err
	}
	completed, err := meter.Int64Counter("scriven.jobs.completed",
		metric.WithDescription("Transcription jobs finished successfully"))
	if err != nil {
		return nil, err
	}
	failed, err := meter.Int64Counter("scriven.jobs.failed",
		metric.WithDescription("Transcription jobs that ended in an error"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("scriven.jobs.duration_seconds",
		metric.WithDescription("Wall-clock job duration"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}
	return &jobMetrics{started: started, completed: completed, failed: failed, duration: duration}, nil
}

func NewService(parent context.Context, cfg config.WorkerConfig, busClient *bus.Client, runner *pipeline.Runner, log *slog.Logger) *Service {
	ctx, cancel := context.WithCancel(parent)
	limit := cfg.MaxConcurrency
	if limit < 1 {
		limit = 1
	}
	s := &Service{
		cfg:    cfg,
		bus:    busClient,
		runner: runner,
		log:    log.With(slog.String("component", "worker")),
		ctx:    ctx,
		cancel: cancel,
		sem:    make(chan struct{}, limit),
	}
	metrics, err := newJobMetrics()
	if err != nil {
		s.log.Warn("failed to initialize job metrics", slogError(err))
	} else {
		s.metrics = metrics
	}
	return s
}

func (s *Service) Start() error {
	if !s.cfg.Enabled {
		return nil
	}
	js := s.bus.JetStream()
	_, err := js.AddStream(&nats.StreamConfig{
		Name:     jobStream,
		Subjects: []string{protocol.SubjectJobSubmit},
	})
	if err != nil && !errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
		return fmt.Errorf("ensure job stream: %w", err)
	}
	sub, err := js.QueueSubscribe(protocol.SubjectJobSubmit, jobQueue, s.handleSubmit,
		nats.Durable(jobConsumer),
		nats.ManualAck())
	if err != nil {
		return fmt.Errorf("subscribe job submissions: %w", err)
	}
	s.sub = sub
	s.ready = true
	s.log.Info("worker listening",
		slog.String("subject", protocol.SubjectJobSubmit),
		slog.String("stream", jobStream))
	return nil
}

func (s *Service) Close() {
	s.cancel()
	if s.sub != nil {
		_ = s.sub.Drain()
	}
	s.wg.Wait()
}

func (s *Service) Healthy() bool {
	return !s.cfg.Enabled || s.ready
}

func (s *Service) handleSubmit(msg *nats.Msg) {
	// Ack on receipt: the stream buffers submissions across restarts, but a
	// job that dies mid-run reports through its result, not by redelivery.
	_ = msg.Ack()

	var req protocol.JobRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		s.log.Warn("failed to decode job request", slogError(err))
		return
	}
	if req.JobID == "" {
		req.JobID = uuid.NewString()
	}
	s.publishProgress(req.JobID, protocol.StageQueued, "")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		select {
		case s.sem <- struct{}{}:
		case <-s.ctx.Done():
			return
		}
		defer func() { <-s.sem }()

		ctx, cancel := context.WithTimeout(s.ctx, time.Duration(s.cfg.JobTimeoutMS)*time.Millisecond)
		defer cancel()
		s.process(ctx, req)
	}()
}

func (s *Service) process(ctx context.Context, req protocol.JobRequest) {
	started := time.Now()
	if s.metrics != nil {
		s.metrics.started.Add(ctx, 1)
	}

	audioPath, cleanup, err := s.resolveAudio(req)
	if err != nil {
		s.finish(ctx, req.JobID, pipeline.Outcome{}, err, started)
		return
	}
	if cleanup != nil {
		defer cleanup()
	}

	job := pipeline.Job{
		AudioPath:   audioPath,
		Language:    req.Language,
		Model:       req.Model,
		Interviewer: req.Interviewer,
		Participant: req.Participant,
		OnStage: func(stage string) {
			s.publishProgress(req.JobID, stage, "")
		},
	}
	outcome, err := s.runner.Run(ctx, job)
	s.finish(ctx, req.JobID, outcome, err, started)
}

// resolveAudio returns a local path for the job's audio, materializing inline
// PCM into a temporary WAV when no path was given.
func (s *Service) resolveAudio(req protocol.JobRequest) (string, func(), error) {
	if req.AudioPath != "" {
		return req.AudioPath, nil, nil
	}
	if len(req.PCM) == 0 {
		return "", nil, errors.New("job carries neither audio path nor pcm")
	}
	rate := req.SampleRate
	if rate <= 0 {
		rate = 16000
	}
	channels := req.Channels
	if channels <= 0 {
		channels = 1
	}
	path := filepath.Join(os.TempDir(), fmt.Sprintf("scriven-job-%s.wav", req.JobID))
	if err := media.WritePCM16WAV(path, req.PCM, rate, channels); err != nil {
		return "", nil, fmt.Errorf("materialize pcm: %w", err)
	}
	return path, func() { _ = os.Remove(path) }, nil
}

func (s *Service) finish(ctx context.Context, jobID string, outcome pipeline.Outcome, runErr error, started time.Time) {
	elapsed := time.Since(started)
	result := protocol.JobResult{
		JobID:       jobID,
		CompletedAt: time.Now().UTC(),
	}
	if runErr != nil {
		result.Error = runErr.Error()
		if s.metrics != nil {
			s.metrics.failed.Add(ctx, 1)
		}
		s.log.Warn("job failed", slog.String("job_id", jobID), slogError(runErr))
	} else {
		result.InterviewID = outcome.InterviewID
		result.ProjectDir = outcome.ProjectDir
		result.Turns = outcome.Turns
		result.Statistics = &outcome.Stats
		if s.metrics != nil {
			s.metrics.completed.Add(ctx, 1)
			s.metrics.duration.Record(ctx, elapsed.Seconds())
		}
		s.publishProgress(jobID, protocol.StageDone, outcome.ProjectDir)
		s.log.Info("job completed",
			slog.String("job_id", jobID),
			slog.String("interview_id", outcome.InterviewID),
			slog.Duration("elapsed", elapsed))
	}
	s.publish(protocol.SubjectJobResult, result)
}

func (s *Service) publishProgress(jobID, stage, detail string) {
	s.publish(protocol.SubjectJobProgress, protocol.JobProgress{
		JobID:     jobID,
		Stage:     stage,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	})
}

func (s *Service) publish(subject string, payload any) {
	if err := s.bus.PublishJSON(subject, payload); err != nil {
		s.log.Warn("failed to publish bus message", slog.String("subject", subject), slogError(err))
	}
}

func slogError(err error) slog.Attr {
	return slog.String("error", err.Error())
}
