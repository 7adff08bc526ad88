package exceldb

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/ukaji3/exceldb-go/pkg/exceldb/models"
	"github.com/ukaji3/exceldb-go/pkg/exceldb/parser"
	"github.com/xuri/excelize/v2"
)

// Workbook is a loaded, read-only copy of a spreadsheet file.
// It holds no file handle; the file is closed once loading completes.
type Workbook struct {
	path       string
	active     string
	sheetNames []string
	grids      map[string]*models.Grid
	defined    map[string]models.Range
}

// Load reads every sheet of the workbook at path.
func Load(path string) (*Workbook, error) {
	return LoadWithOptions(path, DefaultOptions())
}

// LoadWithOptions reads the workbook at path as configured by opts.
// Failures are returned as *SourceLoadError.
func LoadWithOptions(path string, opts Options) (*Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &SourceLoadError{Path: path, Err: classifyLoadError(err)}
	}

	f, err := excelize.OpenFile(path, excelize.Options{Password: opts.Password})
	if err != nil {
		return nil, &SourceLoadError{Path: path, Err: classifyLoadError(err)}
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithField("path", path).Warnf("closing workbook: %v", err)
		}
	}()

	wb := &Workbook{
		path:  path,
		grids: make(map[string]*models.Grid),
	}

	for _, sheetName := range f.GetSheetList() {
		if !opts.wantsSheet(sheetName) {
			continue
		}
		grid, err := parser.ReadGrid(f, sheetName)
		if err != nil {
			return nil, &SourceLoadError{Path: path, Err: fmt.Errorf("%w: sheet %q: %v", ErrInvalidFormat, sheetName, err)}
		}
		wb.sheetNames = append(wb.sheetNames, sheetName)
		wb.grids[sheetName] = grid
	}

	wb.active = f.GetSheetName(f.GetActiveSheetIndex())
	if _, ok := wb.grids[wb.active]; !ok && len(wb.sheetNames) > 0 {
		wb.active = wb.sheetNames[0]
	}

	if opts.ShouldIncludeDefinedNames() {
		wb.defined = parser.DefinedRanges(f)
	}

	log.WithFields(log.Fields{
		"path":   path,
		"sheets": len(wb.sheetNames),
		"active": wb.active,
	}).Debug("workbook loaded")

	return wb, nil
}

// classifyLoadError maps an open failure onto one of the load error kinds.
func classifyLoadError(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %v", ErrSourceNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
}

// Path returns the file path the workbook was loaded from.
func (w *Workbook) Path() string {
	return w.path
}

// ActiveSheet returns the active sheet name.
func (w *Workbook) ActiveSheet() string {
	return w.active
}

// Active returns the active sheet's grid, or nil if no sheet was loaded.
func (w *Workbook) Active() *models.Grid {
	return w.grids[w.active]
}

// SheetNames returns the loaded sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return append([]string(nil), w.sheetNames...)
}

// Sheet returns the grid of the named sheet.
func (w *Workbook) Sheet(name string) (*models.Grid, error) {
	g, ok := w.grids[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSheet, name)
	}
	return g, nil
}

// Grid returns the named sheet's grid, or the active sheet's when name is empty.
func (w *Workbook) Grid(name string) (*models.Grid, error) {
	if name == "" {
		if g := w.Active(); g != nil {
			return g, nil
		}
		return nil, ErrUnloadedSource
	}
	return w.Sheet(name)
}

// DefinedRanges returns the workbook's single-area defined names.
func (w *Workbook) DefinedRanges() map[string]models.Range {
	out := make(map[string]models.Range, len(w.defined))
	for k, v := range w.defined {
		out[k] = v
	}
	return out
}

// Extract runs Extract on the sheet named by r.Sheet (the active sheet
// when empty).
func (w *Workbook) Extract(r models.Range) (*models.Mapping, error) {
	if w == nil {
		return nil, fmt.Errorf("%w: workbook is nil", ErrUnloadedSource)
	}
	grid, err := w.Grid(r.Sheet)
	if err != nil {
		return nil, err
	}
	return Extract(grid, r)
}

// Info summarizes the workbook and its sheets.
func (w *Workbook) Info() models.WorkbookInfo {
	info := models.WorkbookInfo{
		BookName:      filepath.Base(w.path),
		Sheets:        make([]models.SheetInfo, 0, len(w.sheetNames)),
		DefinedRanges: w.defined,
	}
	for _, name := range w.sheetNames {
		g := w.grids[name]
		si := models.SheetInfo{
			Name:   name,
			Rows:   g.NumRows(),
			Cols:   g.NumCols(),
			Active: name == w.active,
		}
		if r, ok := parser.DetectBounds(g); ok {
			if ref, err := parser.FormatRange(r); err == nil {
				si.Bounds = ref
			}
		}
		info.Sheets = append(info.Sheets, si)
	}
	return info
}
