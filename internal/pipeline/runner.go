// Package pipeline drives a document through the three stages: structure
// extraction from the .docx, outline building to markdown, and metadata plus
// content extraction to the final JSON.
package pipeline

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sskannan007/UX-CAG/internal/docparse"
	"github.com/sskannan007/UX-CAG/internal/doctree"
	"github.com/sskannan007/UX-CAG/internal/extract"
	"github.com/sskannan007/UX-CAG/internal/outline"
)

// Runner processes a single document end to end.
type Runner struct {
	parser    *docparse.Extractor
	builder   *outline.Builder
	extractor *extract.Extractor
	log       *slog.Logger

	// Keep the intermediate .xml and .md next to the output JSON.
	keepArtifacts bool
}

func NewRunner(gaz *extract.Gazetteer, log *slog.Logger, keepArtifacts bool) *Runner {
	return &Runner{
		parser:        docparse.NewExtractor(log),
		builder:       outline.NewBuilder(log),
		extractor:     extract.NewExtractor(gaz, log),
		log:           log,
		keepArtifacts: keepArtifacts,
	}
}

// Stem returns the document name without its extension, used for the output
// file names and the document_name metadata default.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Process runs the full pipeline for one file and writes <stem>.json into
// outputDir. It returns the output path.
func (r *Runner) Process(ctx context.Context, docxPath, outputDir string) (string, error) {
	log := r.log.With("file", filepath.Base(docxPath))
	stem := Stem(docxPath)

	// Stage 1: structure extraction.
	if err := ctx.Err(); err != nil {
		return "", err
	}
	doc, err := r.parser.Parse(docxPath)
	if err != nil {
		return "", fmt.Errorf("structure extraction: %w", err)
	}
	log.Debug("structure extracted", "blocks", len(doc.Nodes))

	// Stage 2: outline to markdown.
	if err := ctx.Err(); err != nil {
		return "", err
	}
	root := r.builder.Build(doc)
	markdown := outline.Render(root)
	log.Debug("outline rendered", "bytes", len(markdown))

	// Stage 3: metadata and content tree.
	if err := ctx.Err(); err != nil {
		return "", err
	}
	result := r.extractor.Process(stem, []byte(markdown))
	buf, err := result.Encode()
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}

	outPath := filepath.Join(outputDir, stem+".json")
	if err := os.WriteFile(outPath, buf, 0o644); err != nil {
		return "", fmt.Errorf("write json: %w", err)
	}

	if r.keepArtifacts {
		if err := r.writeArtifacts(doc, markdown, outputDir, stem); err != nil {
			log.Warn("artifact write failed", "error", err)
		}
	}

	log.Info("document processed", "output", outPath,
		"parts", len(result.Parts),
		"state", result.Metadata.State != nil)
	return outPath, nil
}

func (r *Runner) writeArtifacts(doc *doctree.Document, markdown, outputDir, stem string) error {
	buf, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal structure tree: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, stem+".xml"), buf, 0o644); err != nil {
		return fmt.Errorf("write xml artifact: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, stem+".md"), []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("write md artifact: %w", err)
	}
	return nil
}
