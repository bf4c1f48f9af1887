package protocol

import (
	"time"

	"github.com/scrivenlabs/scriven/internal/stats"
	"github.com/scrivenlabs/scriven/internal/transcript"
)

// JobRequest asks the worker to transcribe one recording. The audio is either
// referenced by path or carried inline as PCM16 with its frame layout; when
// both are set the path wins.
type JobRequest struct {
	JobID       string    `json:"job_id"`
	AudioPath   string    `json:"audio_path,omitempty"`
	PCM         []byte    `json:"pcm,omitempty"`
	SampleRate  int       `json:"sample_rate,omitempty"`
	Channels    int       `json:"channels,omitempty"`
	Language    string    `json:"language,omitempty"`
	Model       string    `json:"model,omitempty"`
	Interviewer string    `json:"interviewer,omitempty"`
	Participant string    `json:"participant,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// JobProgress reports a pipeline stage transition for a running job.
type JobProgress struct {
	JobID     string    `json:"job_id"`
	Stage     string    `json:"stage"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// JobResult is broadcast when a job finishes, successfully or not.
type JobResult struct {
	JobID       string            `json:"job_id"`
	InterviewID string            `json:"interview_id,omitempty"`
	ProjectDir  string            `json:"project_dir,omitempty"`
	Error       string            `json:"error,omitempty"`
	Turns       []transcript.Turn `json:"turns,omitempty"`
	Statistics  *stats.Interview  `json:"statistics,omitempty"`
	CompletedAt time.Time         `json:"completed_at"`
}

const (
	SubjectJobSubmit   = "interview.job.submit"
	SubjectJobProgress = "interview.job.progress"
	SubjectJobResult   = "interview.job.result"
)

// Pipeline stages reported through JobProgress.
const (
	StageQueued      = "queued"
	StageTranscribe  = "transcribe"
	StageAttribution = "attribution"
	StageRender      = "render"
	StageArchive     = "archive"
	StageDone        = "done"
)
