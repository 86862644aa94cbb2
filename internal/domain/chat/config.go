package chat

// Config holds runtime knobs for the chat service.
type Config struct {
	// HistoryLimit caps admin listings; zero means the default of 500.
	HistoryLimit int
}

const (
	defaultHistoryLimit = 500
	maxSessionIDLength  = 64
)
