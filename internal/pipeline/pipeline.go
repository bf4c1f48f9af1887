// Package pipeline runs one recording through recognition, speaker
// attribution, statistics, rendering, and archival.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/scrivenlabs/scriven/internal/archive"
	"github.com/scrivenlabs/scriven/internal/asr"
	"github.com/scrivenlabs/scriven/internal/config"
	"github.com/scrivenlabs/scriven/internal/media"
	"github.com/scrivenlabs/scriven/internal/project"
	"github.com/scrivenlabs/scriven/internal/protocol"
	"github.com/scrivenlabs/scriven/internal/render"
	"github.com/scrivenlabs/scriven/internal/stats"
	"github.com/scrivenlabs/scriven/internal/transcript"
)

// Job describes one transcription request. Empty fields fall back to the
// configured interview defaults.
type Job struct {
	AudioPath   string
	Language    string
	Model       string
	Interviewer string
	Participant string

	// OnStage, when set, is called as the run enters each pipeline stage.
	OnStage func(stage string)
}

func (j Job) notify(stage string) {
	if j.OnStage != nil {
		j.OnStage(stage)
	}
}

// Outcome is the result of a completed pipeline run.
type Outcome struct {
	InterviewID string
	ProjectDir  string
	Turns       []transcript.Turn
	Stats       stats.Interview
	Meta        render.Metadata
	OutputFiles []string
	// Duplicate is set when the audio fingerprint matched an archived
	// interview; the run still produces outputs but archives nothing new.
	Duplicate bool
}

type Runner struct {
	cfg        config.Config
	recognizer asr.Recognizer
	store      *archive.Store
	projects   *project.Creator
	log        *slog.Logger
	tracer     trace.Tracer
	clock      func() time.Time
}

func New(cfg config.Config, recognizer asr.Recognizer, store *archive.Store, log *slog.Logger) *Runner {
	return &Runner{
		cfg:        cfg,
		recognizer: recognizer,
		store:      store,
		projects:   project.NewCreator(cfg.Project.OutputDir),
		log:        log.With(slog.String("component", "pipeline")),
		tracer:     otel.Tracer("github.com/scrivenlabs/scriven/pipeline"),
		clock:      time.Now,
	}
}

func (r *Runner) Run(ctx context.Context, job Job) (Outcome, error) {
	ctx, span := r.tracer.Start(ctx, "pipeline.run",
		trace.WithAttributes(attribute.String("audio.path", job.AudioPath)))
	defer span.End()

	started := r.clock()

	if _, err := os.Stat(job.AudioPath); err != nil {
		return Outcome{}, fmt.Errorf("audio file: %w", err)
	}
	if !media.Supported(job.AudioPath) {
		return Outcome{}, fmt.Errorf("unsupported audio format %q", filepath.Ext(job.AudioPath))
	}

	fingerprint, err := media.Fingerprint(job.AudioPath)
	if err != nil {
		return Outcome{}, fmt.Errorf("fingerprint audio: %w", err)
	}
	existing, err := r.store.FindByFingerprint(ctx, fingerprint)
	if err != nil {
		r.log.Warn("archive lookup failed", slogError(err))
	}

	job.notify(protocol.StageTranscribe)
	transcribeCtx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.ASR.TimeoutMS)*time.Millisecond)
	defer cancel()
	result, err := r.recognizer.Transcribe(transcribeCtx, job.AudioPath)
	if err != nil {
		span.RecordError(err)
		return Outcome{}, fmt.Errorf("transcribe: %w", err)
	}

	job.notify(protocol.StageAttribution)
	segments := result.TranscriptSegments()
	calibration := transcript.Calibration{
		SilenceThreshold: r.cfg.Attribution.SilenceThreshold,
		MinSpeakerTime:   r.cfg.Attribution.MinSpeakerTime,
	}
	labeled := transcript.Label(segments, transcript.AttributeSpeakers(segments, calibration))
	turns := transcript.BuildTurns(labeled)

	duration := r.audioDuration(result, segments, job.AudioPath)
	statistics := stats.Compute(labeled, duration)

	dir, err := r.projects.Create(job.AudioPath)
	if err != nil {
		return Outcome{}, fmt.Errorf("create project folder: %w", err)
	}

	if r.cfg.Project.CopyAudio {
		if _, err := media.Copy(job.AudioPath, dir); err != nil {
			r.log.Warn("audio copy failed", slogError(err))
		}
	}

	language := fallback(job.Language, fallback(result.Language, r.cfg.Interview.Language))
	doc := render.Document{
		Meta: render.Metadata{
			Interviewer:   fallback(job.Interviewer, r.cfg.Interview.Interviewer),
			Participant:   fallback(job.Participant, r.cfg.Interview.Participant),
			Date:          started.UTC(),
			Duration:      transcript.FormatDuration(duration),
			Language:      render.LanguageDisplayName(language),
			InterviewType: r.cfg.Interview.Type,
			AudioQuality:  statistics.AudioQuality,
			Model:         fallback(job.Model, r.cfg.ASR.Model),
			AudioFile:     filepath.Base(job.AudioPath),
		},
		Turns: turns,
		Stats: statistics,
	}

	job.notify(protocol.StageRender)
	files, err := writeOutputs(dir, r.cfg.Project.Formats, doc)
	if err != nil {
		return Outcome{}, err
	}

	outcome := Outcome{
		ProjectDir:  dir,
		Turns:       turns,
		Stats:       statistics,
		Meta:        doc.Meta,
		OutputFiles: files,
	}

	job.notify(protocol.StageArchive)
	if existing != nil {
		outcome.InterviewID = existing.ID
		outcome.Duplicate = true
		r.log.Info("recording already archived, skipping save",
			slog.String("interview_id", existing.ID),
			slog.String("fingerprint", fingerprint))
	} else {
		outcome.InterviewID = uuid.NewString()
		statsJSON, err := json.Marshal(statistics)
		if err != nil {
			return Outcome{}, fmt.Errorf("encode statistics: %w", err)
		}
		rec := archive.Interview{
			ID:          outcome.InterviewID,
			Fingerprint: fingerprint,
			AudioPath:   job.AudioPath,
			Language:    language,
			Model:       doc.Meta.Model,
			Duration:    duration,
			Quality:     statistics.AudioQuality,
			TotalWords:  statistics.TotalWords,
			Stats:       statsJSON,
		}
		if err := r.store.SaveInterview(ctx, rec, turns); err != nil {
			r.log.Warn("archive save failed", slogError(err))
		}
	}

	span.SetAttributes(
		attribute.Int("transcript.turns", len(turns)),
		attribute.String("transcript.quality", statistics.AudioQuality),
	)
	r.log.Info("interview processed",
		slog.String("interview_id", outcome.InterviewID),
		slog.String("project_dir", dir),
		slog.Int("segments", statistics.TotalSegments),
		slog.Int("words", statistics.TotalWords),
		slog.String("quality", statistics.AudioQuality),
		slog.Duration("elapsed", time.Since(started)))

	return outcome, nil
}

// audioDuration prefers the recognizer's reported duration, then a WAV
// header probe, then the end of the last segment.
func (r *Runner) audioDuration(result asr.Result, segments []transcript.Segment, audioPath string) float64 {
	if result.Duration > 0 {
		return result.Duration
	}
	if strings.EqualFold(filepath.Ext(audioPath), ".wav") {
		if probed, err := media.ProbeWAVDuration(audioPath); err == nil && probed > 0 {
			return probed
		}
	}
	if len(segments) > 0 {
		return segments[len(segments)-1].End
	}
	return 0
}

func writeOutputs(dir string, formats []string, doc render.Document) ([]string, error) {
	var files []string
	for _, format := range formats {
		var (
			name string
			data []byte
		)
		switch format {
		case "text":
			name = "transcript.txt"
			data = []byte(render.Text(doc))
		case "markdown":
			name = "transcript.md"
			data = []byte(render.Markdown(doc))
		case "json":
			name = "transcript.json"
			encoded, err := render.JSONBundle(doc)
			if err != nil {
				return nil, fmt.Errorf("encode json bundle: %w", err)
			}
			data = encoded
		default:
			return nil, fmt.Errorf("unknown output format %q", format)
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
		files = append(files, path)
	}
	return files, nil
}

func fallback(value, def string) string {
	if value != "" {
		return value
	}
	return def
}

func slogError(err error) slog.Attr {
	return slog.String("error", err.Error())
}
