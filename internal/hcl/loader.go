package hcl

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/gretago/internal/config"
	"github.com/specialistvlad/gretago/internal/ctxlog"
	"github.com/specialistvlad/gretago/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
// It remembers the sources of its last load for diagnostics, so a Loader is
// not safe for concurrent use.
type Loader struct {
	evalCtx *hcl.EvalContext
	files   map[string]*hcl.File
}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL model loader.
func NewLoader() *Loader {
	return &Loader{evalCtx: newEvalContext()}
}

// Load parses every .hcl file under the given paths and merges their blocks
// into one Definition. Directories are searched recursively and files are
// read in lexical order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Definition, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := fsutil.Collect(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()
	defer func() { l.files = parser.Files() }()

	parsed := make([]*hcl.File, 0, len(hclFiles))
	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		parsed = append(parsed, hclFile)
	}

	return l.translate(ctx, parsed)
}

// Parse translates a single in-memory HCL document.
func (l *Loader) Parse(ctx context.Context, filename string, src []byte) (*config.Definition, error) {
	parser := hclparse.NewParser()
	defer func() { l.files = parser.Files() }()

	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL source %s: %w", filename, diags)
	}
	return l.translate(ctx, []*hcl.File{hclFile})
}

// WriteDiagnostics renders the HCL diagnostics carried by err, with source
// snippets from the last load. It reports false when err carries none.
func (l *Loader) WriteDiagnostics(w io.Writer, err error) bool {
	var diags hcl.Diagnostics
	if !errors.As(err, &diags) {
		return false
	}
	writer := hcl.NewDiagnosticTextWriter(w, l.files, 78, false)
	return writer.WriteDiagnostics(diags) == nil
}
