package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// timestampLayout names session directories uniquely per run.
const timestampLayout = "20060102_150405"

// OutputPaths are the artifact locations for one generation session.
// Everything lives under SessionDir, named after the deck.
type OutputPaths struct {
	Name       string // cleaned deck name
	SessionDir string
	ContentMD  string // slide content before diagram enhancement
	FinalMD    string // slide content after diagram enhancement
	BasicDeck  string // deck converted from ContentMD
	FinalDeck  string // deck converted from FinalMD
}

// BuildOutputPaths derives all session paths from the deck name, the output
// directory, and the session start time. The name's extension, if any, is
// dropped.
func BuildOutputPaths(name, outputDir string, now time.Time) OutputPaths {
	clean := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	session := filepath.Join(outputDir, fmt.Sprintf("%s_%s", clean, now.Format(timestampLayout)))

	return OutputPaths{
		Name:       clean,
		SessionDir: session,
		ContentMD:  filepath.Join(session, clean+"_content.md"),
		FinalMD:    filepath.Join(session, clean+"_final.md"),
		BasicDeck:  filepath.Join(session, clean+"_basic.pptx"),
		FinalDeck:  filepath.Join(session, clean+".pptx"),
	}
}

// writeFile persists a document, creating parent directories as needed.
func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil { // #nosec G301 -- user output dir
		return fmt.Errorf("cannot create output directory: %w", err)
	}
	// #nosec G306 G304 -- user-specified output file with standard permissions
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
