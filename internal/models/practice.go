package models

import "time"

// ── Score Records ─────────────────────────────────────────

// ScoreRecord is one answered question. Records are append-only and a user may
// answer the same question index many times across sessions.
type ScoreRecord struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	SessionID     string    `json:"session_id"`
	Module        string    `json:"module"`
	QuestionIndex int       `json:"question_index"`
	Score         float64   `json:"score"`
	MaxScore      float64   `json:"max_score"`
	RecordedAt    time.Time `json:"recorded_at"`
}

// ── Evaluation ────────────────────────────────────────────

type SpeechMetrics struct {
	WordsPerSecond float64 `json:"wps"`
	Duration       float64 `json:"duration_sec"`
	// Fluency is always on a 0-100 scale.
	Fluency float64 `json:"fluency_score"`
}

type EvaluationResult struct {
	TotalScore      float64            `json:"total_score"`
	ComponentScores map[string]float64 `json:"component_scores"`
	Feedback        string             `json:"feedback"`
	Strengths       []string           `json:"strengths"`
	Improvements    []string           `json:"improvements"`
	Metrics         *SpeechMetrics     `json:"metrics,omitempty"`
	Error           *string            `json:"error,omitempty"`
}

// Failed reports whether the evaluation degraded instead of scoring.
func (r EvaluationResult) Failed() bool {
	return r.Error != nil
}

type QuizSubmissionResult struct {
	QuestionNumber int    `json:"question_number"`
	QuestionIndex  int    `json:"question_id"`
	Sentence       string `json:"sentence"`
	UserAnswer     string `json:"user_answer"`
	CorrectAnswer  string `json:"correct_answer"`
	IsCorrect      bool   `json:"correct"`
}

type QuizSummary struct {
	CorrectCount int                    `json:"correct_count"`
	Total        int                    `json:"total"`
	Percentage   float64                `json:"percentage"`
	Review       []QuizSubmissionResult `json:"review"`
}

// ── Reports ───────────────────────────────────────────────

type ModuleReport struct {
	Key                string  `json:"key"`
	Name               string  `json:"name"`
	AverageScore       float64 `json:"average_score"`
	MaxScore           float64 `json:"max_score"`
	Percentage         float64 `json:"percentage"`
	QuestionsCompleted int     `json:"questions_completed"`
}

type SessionReport struct {
	Modules        []ModuleReport `json:"modules"`
	OverallScore   float64        `json:"overall_score"`
	TotalQuestions int            `json:"total_questions"`
}

// EmptyReport is returned when a session has no records.
func EmptyReport() SessionReport {
	return SessionReport{Modules: []ModuleReport{}}
}

// ── API Request/Response Types ────────────────────────────

type ModuleInfo struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Strategy string `json:"strategy"`
	Size     int    `json:"size"`
	HasAudio bool   `json:"has_audio"`
}

type ItemResponse struct {
	Module   string  `json:"module"`
	ItemID   int     `json:"id"`
	Text     string  `json:"text"`
	AudioURL *string `json:"audio_url,omitempty"`
}

type QuizQuestion struct {
	ID       int    `json:"id"`
	Number   int    `json:"number"`
	Sentence string `json:"sentence"`
	Category string `json:"category"`
}

type QuizResponse struct {
	QuizID         string         `json:"quiz_id"`
	Questions      []QuizQuestion `json:"questions"`
	TotalQuestions int            `json:"total_questions"`
}

type SpeechSubmission struct {
	SessionID       string   `json:"session_id"`
	ItemID          *int     `json:"id" validate:"required,gte=0"`
	TranscribedText string   `json:"transcribed_text" validate:"max=5000"`
	Duration        *float64 `json:"duration" validate:"omitempty,gte=0,lte=600"`
}

type SpeechResult struct {
	Module          string             `json:"module"`
	ItemID          int                `json:"id"`
	Reference       string             `json:"reference"`
	Transcription   string             `json:"transcription"`
	Score           float64            `json:"score"`
	ComponentScores map[string]float64 `json:"component_scores"`
	Metrics         *SpeechMetrics     `json:"metrics,omitempty"`
	Feedback        string             `json:"feedback"`
	Strengths       []string           `json:"strengths"`
	Improvements    []string           `json:"improvements"`
	Recorded        bool               `json:"recorded"`
	Error           *string            `json:"error,omitempty"`
}

type QuizAnswer struct {
	ID     *int   `json:"id" validate:"required"`
	Answer string `json:"answer" validate:"max=200"`
}

type QuizSubmission struct {
	SessionID string       `json:"session_id"`
	Answers   []QuizAnswer `json:"answers" validate:"required,min=1,max=50,dive"`
}

type QuizResult struct {
	QuizSummary
	Recorded int `json:"recorded"`
}
