package document

type implExporter struct {
	style   Style
	tempDir string
}

// New creates an Exporter. tempDir holds intermediate files while
// streaming; empty means the OS default.
func New(style Style, tempDir string) Exporter {
	return &implExporter{
		style:   style,
		tempDir: tempDir,
	}
}
