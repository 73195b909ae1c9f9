package consts

import "time"

// Subprocess timing
const (
	DefaultMetadataTimeout = 2 * time.Minute
	ProcessWaitDelay       = 2 * time.Second
)

// Streaming
const (
	StreamBufferSize = 64 * 1024
)

// Server timing
const (
	ReadHeaderTimeout = 10 * time.Second
	ShutdownTimeout   = 10 * time.Second
)

// Bot detection cooldowns
const DefaultBotTimeout = 12 * time.Hour

// BotTimeoutMap holds how long a bot detection is remembered per registrable domain.
var BotTimeoutMap = map[string]time.Duration{
	"youtube.com": 48 * time.Hour,
	"youtu.be":    48 * time.Hour,
}
