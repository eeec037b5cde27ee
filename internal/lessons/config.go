package lessons

// Config holds buddy story generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns defaults for buddy story generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   600,
		Temperature: 0.7,
	}
}
