package review

import (
	"time"

	"github.com/Krish1013/milletFoodDeliveryApp/internal/sentiment"
)

const (
	MinRating     = 1
	MaxRating     = 5
	MaxTextLength = 1000
)

type Review struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	UserName        string          `json:"user_name"`
	FoodItemID      string          `json:"food_item_id"`
	Rating          int             `json:"rating"`
	Text            string          `json:"text"`
	AudioURL        string          `json:"audio_url"`
	VoiceTranscript string          `json:"voice_transcript"`
	SentimentScore  float64         `json:"sentiment_score"`
	SentimentLabel  sentiment.Label `json:"sentiment_label"`
	ScoreSource     ScoreSource     `json:"-"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ScoreSource names the submitted field a review was scored from.
type ScoreSource string

const (
	SourceTranscript ScoreSource = "voice_transcript"
	SourceText       ScoreSource = "text"
	// SourceNone marks reviews scored from no usable text, including a
	// non-string value that shadowed the typed text.
	SourceNone ScoreSource = "none"
)

// ScoredText is the text the stored sentiment was computed from.
func (r *Review) ScoredText() string {
	switch r.ScoreSource {
	case SourceTranscript:
		return r.VoiceTranscript
	case SourceText:
		return r.Text
	case SourceNone:
		return ""
	}
	// rows written before the source was recorded
	if r.VoiceTranscript != "" {
		return r.VoiceTranscript
	}
	return r.Text
}

// CreateInput carries a submitted review. Text, VoiceTranscript and
// AudioData hold whatever JSON value the client sent.
type CreateInput struct {
	UserID          string `json:"-"`
	FoodItemID      string `json:"food_item_id"`
	Rating          int    `json:"rating"`
	Text            any    `json:"text"`
	AudioData       any    `json:"audio_data"`
	VoiceTranscript any    `json:"voice_transcript"`
}

// Stats are raw per-item aggregates, before rounding.
type Stats struct {
	Count            int
	AverageRating    float64
	AverageSentiment float64
}

// FoodReviews is the public review listing for one item.
type FoodReviews struct {
	Reviews []*Review         `json:"data"`
	Summary sentiment.Summary `json:"sentiment_summary"`
	Total   int               `json:"total_reviews"`
}

// Overview is the store-wide sentiment picture.
type Overview struct {
	Distribution sentiment.Summary `json:"distribution"`
	AverageScore float64           `json:"average_score"`
}

// RescoreReport describes one rescore run.
type RescoreReport struct {
	Scanned      int `json:"scanned"`
	Changed      int `json:"changed"`
	ItemsUpdated int `json:"items_updated"`
}
