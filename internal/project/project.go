// Package project lays out the on-disk folder for one transcription run.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Creator builds timestamped project folders under a fixed output root.
type Creator struct {
	outputDir string
	clock     func() time.Time
}

func NewCreator(outputDir string) *Creator {
	return &Creator{outputDir: outputDir, clock: time.Now}
}

// Create makes a fresh folder named after the audio file stem and the
// current timestamp, e.g. interviews/morgen_optagelse_20260115_093042, and
// returns its path. Existing parents are created as needed.
func (c *Creator) Create(audioPath string) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	name := fmt.Sprintf("%s_%s", stem, c.clock().Format("20060102_150405"))
	dir := filepath.Join(c.outputDir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create project folder: %w", err)
	}
	return dir, nil
}
