package casefile

import (
	"time"

	"github.com/nguyentantai21042004/legal-os/internal/brief"
	"github.com/nguyentantai21042004/legal-os/internal/document"
	"github.com/nguyentantai21042004/legal-os/internal/extractor"
	"github.com/nguyentantai21042004/legal-os/internal/logger"
	"github.com/nguyentantai21042004/legal-os/internal/media"
	"github.com/nguyentantai21042004/legal-os/internal/store"
)

// ExportTitle heads every exported brief.
const ExportTitle = "МАТЕРИАЛЫ ДЕЛА"

const defaultLeaseTTL = time.Minute

// Deps are the collaborators of the case service.
type Deps struct {
	Repo        store.Repository
	Extractor   extractor.Extractor
	Synthesizer brief.Synthesizer
	Normalizer  media.Normalizer
	Exporter    document.Exporter
	Logger      logger.Logger
	// TempDir holds one directory of recordings per case.
	TempDir string
	// LeaseTTL is how long a case claim outlives a process that stopped
	// renewing it. Zero means one minute.
	LeaseTTL time.Duration
}

type implService struct {
	repo        store.Repository
	extractor   extractor.Extractor
	synthesizer brief.Synthesizer
	normalizer  media.Normalizer
	exporter    document.Exporter
	logger      logger.Logger
	tempDir     string
	leaseTTL    time.Duration
	now         func() time.Time
}

// New creates the case service.
func New(deps Deps) Service {
	ttl := deps.LeaseTTL
	if ttl <= 0 {
		ttl = defaultLeaseTTL
	}
	return &implService{
		repo:        deps.Repo,
		extractor:   deps.Extractor,
		synthesizer: deps.Synthesizer,
		normalizer:  deps.Normalizer,
		exporter:    deps.Exporter,
		logger:      deps.Logger,
		tempDir:     deps.TempDir,
		leaseTTL:    ttl,
		now:         time.Now,
	}
}
