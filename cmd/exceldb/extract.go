package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukaji3/exceldb-go/pkg/exceldb"
	"github.com/ukaji3/exceldb-go/pkg/exceldb/models"
	"github.com/ukaji3/exceldb-go/pkg/exceldb/output"
	"github.com/ukaji3/exceldb-go/pkg/exceldb/parser"
)

func newExtractCmd() *cobra.Command {
	var (
		sheet    string
		rangeRef string
		r        models.Range
	)

	cmd := &cobra.Command{
		Use:   "extract [input.xlsx]",
		Short: "Extract one range as records keyed by column A",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if rangeRef != "" {
				parsed, err := parser.ParseRange(rangeRef)
				if err != nil {
					return fmt.Errorf("invalid --range: %w", err)
				}
				r = parsed
			}
			if sheet != "" {
				r.Sheet = sheet
			} else if r.Sheet == "" {
				r.Sheet = cfg.Workbook.Sheet
			}

			path, err := workbookPath(args)
			if err != nil {
				return err
			}
			wb, err := loadWorkbook(path)
			if err != nil {
				return err
			}

			data, err := wb.Extract(r)
			if err != nil {
				return fmt.Errorf("extraction failed: %w", err)
			}

			jsonData, err := output.MappingToJSON(data, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			return writeOutput(cmd, jsonData)
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name (default: active sheet)")
	cmd.Flags().StringVar(&rangeRef, "range", "", "Range reference such as B1:E20 (header row first)")
	cmd.Flags().IntVar(&r.StartRow, "start-row", 0, "Header row (1-based)")
	cmd.Flags().IntVar(&r.EndRow, "end-row", 0, "Last data row (1-based, inclusive)")
	cmd.Flags().IntVar(&r.StartColumn, "start-column", 2, "First field column (1-based)")
	cmd.Flags().StringVar(&r.EndColumn, "end-column", "", "Last field column as letters, e.g. F")
	cmd.MarkFlagsMutuallyExclusive("range", "start-row")
	cmd.MarkFlagsMutuallyExclusive("range", "end-row")
	cmd.MarkFlagsMutuallyExclusive("range", "end-column")

	return cmd
}

func newTablesCmd() *cobra.Command {
	var definedNames bool

	cmd := &cobra.Command{
		Use:   "tables [input.xlsx]",
		Short: "Register every configured table and print their records",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := workbookPath(args)
			if err != nil {
				return err
			}
			wb, err := loadWorkbook(path)
			if err != nil {
				return err
			}

			s, err := registerTables(wb, definedNames)
			if err != nil {
				return err
			}
			if len(s.Names()) == 0 {
				return fmt.Errorf("no tables configured")
			}

			jsonData, err := output.SpreadsheetToJSON(s, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			return writeOutput(cmd, jsonData)
		},
	}

	cmd.Flags().BoolVar(&definedNames, "defined-names", false, "Also register the workbook's defined names")
	return cmd
}

// registerTables registers the configured tables, and optionally the
// workbook's defined names, on a new Spreadsheet.
func registerTables(wb *exceldb.Workbook, definedNames bool) (*exceldb.Spreadsheet, error) {
	s := exceldb.NewSpreadsheet(wb)
	if definedNames {
		if _, err := s.RegisterDefinedNames(); err != nil {
			return nil, err
		}
	}
	for _, t := range cfg.Tables {
		r, err := t.ToRange()
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", t.Name, err)
		}
		if r.Sheet == "" {
			r.Sheet = cfg.Workbook.Sheet
		}
		if _, err := s.Register(t.Name, r); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func newSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets [input.xlsx]",
		Short: "List sheets, their sizes and defined names",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := workbookPath(args)
			if err != nil {
				return err
			}
			wb, err := loadWorkbook(path)
			if err != nil {
				return err
			}
			info := wb.Info()
			jsonData, err := output.WorkbookInfoToJSON(&info, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			return writeOutput(cmd, jsonData)
		},
	}
}

func newBoundsCmd() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "bounds [input.xlsx]",
		Short: "Print the range covering a sheet's non-empty cells",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := workbookPath(args)
			if err != nil {
				return err
			}
			wb, err := loadWorkbook(path)
			if err != nil {
				return err
			}
			if sheet == "" {
				sheet = cfg.Workbook.Sheet
			}
			grid, err := wb.Grid(sheet)
			if err != nil {
				return err
			}
			r, ok := parser.DetectBounds(grid)
			if !ok {
				return fmt.Errorf("sheet %q is empty", grid.Sheet)
			}
			ref, err := parser.FormatRange(r)
			if err != nil {
				return err
			}
			return writeOutput(cmd, []byte(ref))
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name (default: active sheet)")
	return cmd
}
