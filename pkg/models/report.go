package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Report is the immutable outcome of one analysis job. Storytelling is
// optional: short clips often carry no narrative, in which case the overall
// score is reweighted across the remaining three dimensions.
type Report struct {
	ID                 string          `json:"report_id" db:"report_id"`
	UserID             string          `json:"user_id,omitempty" db:"user_id"`
	VideoID            *string         `json:"video_id,omitempty" db:"video_id"`
	JobID              string          `json:"job_id" db:"job_id"`
	Transcript         string          `json:"transcript" db:"transcript"`
	OverallScore       float64         `json:"overall_score" db:"overall_score"`
	GravitasScore      float64         `json:"gravitas_score" db:"gravitas_score"`
	CommunicationScore float64         `json:"communication_score" db:"communication_score"`
	PresenceScore      float64         `json:"presence_score" db:"presence_score"`
	StorytellingScore  *float64        `json:"storytelling_score,omitempty" db:"storytelling_score"`
	DetailedMetrics    DetailedMetrics `json:"detailed_metrics" db:"detailed_metrics"`
	CoachingTips       []string        `json:"coaching_tips" db:"coaching_tips"`
	VideoDeleted       bool            `json:"video_deleted,omitempty" db:"video_deleted"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
}

// DetailedMetrics groups the per-dimension measurements behind the scores.
type DetailedMetrics struct {
	Communication CommunicationMetrics `json:"communication"`
	Presence      PresenceMetrics      `json:"presence"`
	Gravitas      GravitasMetrics      `json:"gravitas"`
	Storytelling  StorytellingMetrics  `json:"storytelling"`
}

// Value implements driver.Valuer for database storage
func (m DetailedMetrics) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan implements sql.Scanner for database retrieval
func (m *DetailedMetrics) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, m)
}

// SpeakingRate holds words-per-minute with the arithmetic shown to the user.
type SpeakingRate struct {
	WPM             float64 `json:"wpm"`
	Calculation     string  `json:"calculation"`
	Benchmark       string  `json:"benchmark"`
	WordCount       int     `json:"word_count"`
	DurationMinutes float64 `json:"duration_minutes"`
}

// Pause is a gap between consecutive words longer than 300ms.
type Pause struct {
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration float64 `json:"duration"`
	Type     string  `json:"type"` // brief, strategic, long
}

// FillerWord is a single detected filler with its timestamp.
type FillerWord struct {
	Timestamp float64 `json:"timestamp"`
	Word      string  `json:"word"`
	Type      string  `json:"type"`
}

// FillerAnalysis aggregates filler occurrences over the clip.
type FillerAnalysis struct {
	Fillers       []FillerWord `json:"fillers"`
	Count         int          `json:"count"`
	RatePerMinute float64      `json:"rate_per_minute"`
	Benchmark     string       `json:"benchmark"`
}

// VocalMetrics holds loudness statistics derived from the extracted audio.
type VocalMetrics struct {
	LoudnessMean      float64 `json:"loudness_mean"`
	LoudnessStability float64 `json:"loudness_stability"`
	Benchmark         string  `json:"benchmark"`
	Error             string  `json:"error,omitempty"`
}

// SentenceClarity rates a single sentence by length.
type SentenceClarity struct {
	Sentence      string `json:"sentence"`
	WordCount     int    `json:"word_count"`
	ClarityRating string `json:"clarity_rating"` // concise, ok, long
	Suggestion    string `json:"suggestion"`
}

// CommunicationMetrics covers the spoken-delivery measurements.
type CommunicationMetrics struct {
	SpeakingRate    SpeakingRate      `json:"speaking_rate"`
	Pauses          []Pause           `json:"pauses"`
	FillerWords     FillerAnalysis    `json:"filler_words"`
	VocalMetrics    VocalMetrics      `json:"vocal_metrics"`
	SentenceClarity []SentenceClarity `json:"sentence_clarity"`
}

// PresenceMetrics covers the visual measurements from sampled frames.
type PresenceMetrics struct {
	PostureScore         float64            `json:"posture_score"`
	EyeContactRatio      float64            `json:"eye_contact_ratio"`
	FacialExpressions    map[string]float64 `json:"facial_expressions"`
	GestureRate          float64            `json:"gesture_rate"`
	FirstImpressionScore float64            `json:"first_impression_score"`
}

// GravitasMetrics holds the five language-derived leadership sub-scores.
type GravitasMetrics struct {
	CommandingPresence    float64  `json:"commanding_presence"`
	Decisiveness          float64  `json:"decisiveness"`
	PoiseUnderPressure    float64  `json:"poise_under_pressure"`
	EmotionalIntelligence float64  `json:"emotional_intelligence"`
	VisionArticulation    float64  `json:"vision_articulation"`
	OverallGravitas       float64  `json:"overall_gravitas"`
	KeyObservations       []string `json:"key_observations,omitempty"`
}

// StorytellingMetrics holds narrative sub-scores; all nil when no story
// structure was detected.
type StorytellingMetrics struct {
	HasStory           bool     `json:"has_story"`
	NarrativeStructure *float64 `json:"narrative_structure,omitempty"`
	Authenticity       *float64 `json:"authenticity,omitempty"`
	Concreteness       *float64 `json:"concreteness,omitempty"`
	Pacing             *float64 `json:"pacing,omitempty"`
	StoryExcerpt       *string  `json:"story_excerpt,omitempty"`
	Observations       []string `json:"observations,omitempty"`
}

// Scores carries the computed dimension scores before persistence.
type Scores struct {
	Overall       float64  `json:"overall"`
	Gravitas      float64  `json:"gravitas"`
	Communication float64  `json:"communication"`
	Presence      float64  `json:"presence"`
	Storytelling  *float64 `json:"storytelling,omitempty"`
}

// ReportShare is a time-limited unauthenticated read path to one report.
type ReportShare struct {
	ID          string    `json:"share_id" db:"share_id"`
	ReportID    string    `json:"report_id" db:"report_id"`
	OwnerUserID string    `json:"-" db:"owner_user_id"`
	Revoked     bool      `json:"revoked" db:"revoked"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	ExpiresAt   time.Time `json:"expires_at" db:"expires_at"`
}
