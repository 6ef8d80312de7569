package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/legal-os/internal/domain"
)

// containers Gemini does not accept as audio input
var needsTranscode = map[string]bool{
	".m4a":  true,
	".opus": true,
	".webm": true,
}

// Normalize converts m4a/opus/webm to mono PCM WAV when ffmpeg is configured.
func (n *implNormalizer) Normalize(ctx context.Context, path string) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if n.binary == "" || !needsTranscode[ext] {
		return path, domain.AudioMIME(path), nil
	}

	wavPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".wav"

	n.logger.Info(ctx, "Transcoding %s to WAV", filepath.Base(path))

	// -vn drops any video stream, -ac 1 -ar N gives mono at the configured rate
	args := []string{
		"-i", path,
		"-vn",
		"-ar", strconv.Itoa(n.sampleRate),
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		wavPath,
	}

	if _, err := n.executor.Execute(ctx, n.binary, args...); err != nil {
		return "", "", fmt.Errorf("ffmpeg transcode: %w", err)
	}

	if err := os.Remove(path); err != nil {
		n.logger.Warn(ctx, "Failed to remove original recording %s: %v", path, err)
	}

	return wavPath, "audio/wav", nil
}
