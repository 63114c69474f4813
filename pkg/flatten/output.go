package flatten

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// OutputFilename returns the default output name for a flattened directory,
// derived from the folder's base name and a timestamp:
// <base>_parsed_<YYYYMMDD_HHMMSS>.txt.
func OutputFilename(dir string, t time.Time) string {
	base := filepath.Base(filepath.Clean(dir))
	return fmt.Sprintf("%s_parsed_%s.txt", base, t.Format("20060102_150405"))
}

// WriteFile renders doc and writes it to path through a buffered writer.
// Failure to create or write the output is fatal to the operation and is
// reported to the caller, never folded into document text.
func WriteFile(path string, doc *Document, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	outFile, err := os.Create(path)
	if err != nil {
		logger.Error("Failed to create output file", zap.String("file", path), zap.Error(err))
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err := outFile.Close(); err != nil {
			logger.Error("Failed to close output file", zap.String("file", path), zap.Error(err))
		}
	}()

	writer := bufio.NewWriter(outFile)
	if _, err := writer.WriteString(doc.String()); err != nil {
		logger.Error("Failed to write output file", zap.String("file", path), zap.Error(err))
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := writer.Flush(); err != nil {
		logger.Error("Failed to flush output file", zap.String("file", path), zap.Error(err))
		return fmt.Errorf("failed to flush output: %w", err)
	}

	logger.Debug("Successfully wrote output file", zap.String("file", path))
	return nil
}
