// Package content holds the static data rendered by the site: landing page
// features, carousel cards, tutors, dashboard widgets and account tabs.
package content

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/edutor/internal/logging"
)

type Feature struct {
	Title       string
	Description string
	Icon        string
}

// Anchor is the fragment used by the navbar links, e.g. "adaptive-study-plans".
func (f Feature) Anchor() string {
	return strings.Join(strings.Fields(strings.ToLower(f.Title)), "-")
}

type Card struct {
	ID          int
	Title       string
	Description string
	Gradient    string
	Highlights  []string
	MediaKey    string
	MediaURL    string
}

type Tutor struct {
	Name        string
	Style       string
	Description string
	Avatar      string
}

var features = []Feature{
	{"Personalized Learning", "Adapts to individual learning styles and preferences", "🧠"},
	{"Multi-Style Tutor Engine", "25+ learning modes including Storyteller, Simulation Master, and Feynman Explainer", "🧩"},
	{"Adaptive Study Plans", "Generates smart, modular learning roadmaps", "📚"},
	{"Intelligent Content Summarization", "Summarizes text, video transcripts, and PDFs into digestible formats", "🔍"},
}

var cards = []Card{
	{
		ID:          1,
		Title:       "Personalized Learning Experience",
		Description: "Our AI adapts to your unique learning style, creating a customized educational journey that evolves with you.",
		Gradient:    "from-cyan-500 to-blue-500",
		Highlights:  []string{"Adaptive learning paths", "Real-time adjustments", "Progress tracking"},
		MediaKey:    "carousel/personalized-learning.mp4",
	},
	{
		ID:          2,
		Title:       "Multi-Style Tutor Engine",
		Description: "Access over 25+ teaching styles and learning modes to find the perfect match for your educational needs.",
		Gradient:    "from-blue-500 to-indigo-500",
		Highlights:  []string{"25+ teaching styles", "Interactive sessions", "Flexible learning modes"},
		MediaKey:    "carousel/tutor-engine.mp4",
	},
	{
		ID:          3,
		Title:       "Adaptive Study Plans",
		Description: "Smart, modular learning roadmaps that adjust based on your progress and understanding.",
		Gradient:    "from-indigo-500 to-purple-500",
		Highlights:  []string{"Dynamic scheduling", "Goal-based planning", "Progress optimization"},
		MediaKey:    "carousel/study-plans.mp4",
	},
	{
		ID:          4,
		Title:       "Real-Time Feedback",
		Description: "Get instant, constructive feedback and recommendations to enhance your learning experience.",
		Gradient:    "from-purple-500 to-pink-500",
		Highlights:  []string{"Instant feedback", "Performance insights", "Improvement suggestions"},
		MediaKey:    "carousel/feedback.mp4",
	},
}

const placeholderAvatar = "/static/placeholder.svg"

var tutors = []Tutor{
	{"Dr. Emma", "Analytical", "Structured learning with data-driven insights", placeholderAvatar},
	{"Professor Leo", "Creative", "Innovative approaches to complex concepts", placeholderAvatar},
	{"Ms. Sophia", "Supportive", "Patient guidance with personalized feedback", placeholderAvatar},
	{"Coach Marcus", "Motivational", "Goal-oriented learning with positive reinforcement", placeholderAvatar},
}

func Features() []Feature {
	return append([]Feature(nil), features...)
}

func Tutors() []Tutor {
	return append([]Tutor(nil), tutors...)
}

// Catalog resolves media URLs for the carousel.
type Catalog struct {
	media  MediaSigner
	logger logging.Logger
}

func NewCatalog(media MediaSigner, logger logging.Logger) *Catalog {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Catalog{media: media, logger: logger.With("module", "content")}
}

// Carousel returns the cards with MediaURL filled in. A card whose URL cannot
// be produced is rendered without media.
func (c *Catalog) Carousel(ctx context.Context) []Card {
	out := make([]Card, len(cards))
	for i, card := range cards {
		card.Highlights = append([]string(nil), card.Highlights...)
		if c.media != nil {
			u, err := c.media.URL(ctx, card.MediaKey)
			if err != nil {
				c.logger.Warn(ctx, "media url", "key", card.MediaKey, "error", err)
			} else {
				card.MediaURL = u
			}
		}
		out[i] = card
	}
	return out
}
