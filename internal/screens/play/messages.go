package play

import "time"

// spinTickMsg advances the wheel animation.
type spinTickMsg time.Time

// storyTickMsg polls for a finished buddy story.
type storyTickMsg time.Time
