package simulator

import (
	"time"

	"github.com/nguyentantai21042004/legal-os/internal/document"
	"github.com/nguyentantai21042004/legal-os/internal/extractor"
	"github.com/nguyentantai21042004/legal-os/internal/gemini"
	"github.com/nguyentantai21042004/legal-os/internal/logger"
	"github.com/nguyentantai21042004/legal-os/internal/media"
	"github.com/nguyentantai21042004/legal-os/internal/store"
	"github.com/nguyentantai21042004/legal-os/pkg/flight"
)

const (
	// ExportTitle heads the exported debrief.
	ExportTitle = "Разбор (РК)"
	// ExportFilename is the download name of the debrief.
	ExportFilename = "Debrief.docx"

	defaultMaterialsChars = 30000
)

type Deps struct {
	Repo       store.Repository
	Extractor  extractor.Extractor
	Client     gemini.Client
	Normalizer media.Normalizer
	Exporter   document.Exporter
	Logger     logger.Logger
	TempDir    string
	// MaterialsChars caps the case materials passed to the model, in runes.
	MaterialsChars int
}

type implService struct {
	repo           store.Repository
	extractor      extractor.Extractor
	client         gemini.Client
	normalizer     media.Normalizer
	exporter       document.Exporter
	logger         logger.Logger
	tempDir        string
	materialsChars int
	inflight       flight.Group
	now            func() time.Time
}

// New creates the simulation service.
func New(deps Deps) Service {
	limit := deps.MaterialsChars
	if limit <= 0 {
		limit = defaultMaterialsChars
	}
	return &implService{
		repo:           deps.Repo,
		extractor:      deps.Extractor,
		client:         deps.Client,
		normalizer:     deps.Normalizer,
		exporter:       deps.Exporter,
		logger:         deps.Logger,
		tempDir:        deps.TempDir,
		materialsChars: limit,
		now:            time.Now,
	}
}
