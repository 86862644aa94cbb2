package faq

// Config holds runtime knobs for the FAQ service.
type Config struct {
	TopRecommendations int
}
