package gemini

import (
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/legal-os/internal/logger"
)

// Options tunes the client.
type Options struct {
	Model          string
	PollInterval   time.Duration
	PollTimeout    time.Duration
	RequestTimeout time.Duration
}

type implClient struct {
	apiKeys    []string
	currentKey int
	clients    map[string]*genai.Client
	mu         sync.Mutex
	logger     logger.Logger
	opts       Options
}

// New creates a Client that rotates through the supplied API keys when one
// is rate limited. An empty key list is allowed; every call then fails with
// ErrNoAPIKey.
func New(apiKeys []string, opts Options, log logger.Logger) Client {
	if opts.Model == "" {
		opts.Model = "gemini-2.0-flash"
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = 2 * time.Minute
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 5 * time.Minute
	}

	return &implClient{
		apiKeys: apiKeys,
		clients: make(map[string]*genai.Client),
		logger:  log,
		opts:    opts,
	}
}
