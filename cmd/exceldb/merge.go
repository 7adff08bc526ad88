package main

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ukaji3/exceldb-go/pkg/exceldb/merge"
	"gopkg.in/yaml.v2"
)

func newFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields [template.docx]",
		Short: "List the merge fields of a Word template",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfg.Merge.Template
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no template given: pass a path or set merge.template")
			}
			tmpl, err := merge.OpenTemplate(path)
			if err != nil {
				return err
			}
			defer tmpl.Close()
			names, err := tmpl.MergeFields()
			if err != nil {
				return err
			}
			return writeOutput(cmd, []byte(strings.Join(names, "\n")))
		},
	}
}

func newMergeCmd() *cobra.Command {
	var (
		jobPath    string
		template   string
		outDir     string
		prefix     string
		groups     []string
		keyField   string
		workbookIn string
	)

	cmd := &cobra.Command{
		Use:   "merge --job brief.yaml",
		Short: "Fill the Word template from a course brief",
		Long: `merge validates a course brief (YAML), fills the template's {{…}} placeholders
and writes "<prefix> <client initials> <course code>.docx" to the output
directory. --group Name=table fills group Name from a configured table.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if template == "" {
				template = cfg.Merge.Template
			}
			if outDir == "" {
				outDir = cfg.Merge.OutputDir
			}
			if prefix == "" {
				prefix = cfg.Merge.Prefix
			}

			brief, err := loadBrief(jobPath)
			if err != nil {
				return err
			}
			if len(groups) > 0 {
				if err := fillGroups(brief, groups, keyField, workbookIn); err != nil {
					return err
				}
			}

			tmpl, err := merge.OpenTemplate(template)
			if err != nil {
				return err
			}
			defer tmpl.Close()
			path, err := merge.Write(tmpl, brief, outDir, prefix)
			if err != nil {
				return fmt.Errorf("merge failed: %w", err)
			}
			log.WithField("path", path).Info("document generated")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}

	cmd.Flags().StringVar(&jobPath, "job", "", "Course brief YAML file")
	cmd.Flags().StringVar(&template, "template", "", "Word template (default: merge.template)")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default: merge.output_dir)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Output file name prefix (default: merge.prefix)")
	cmd.Flags().StringArrayVar(&groups, "group", nil, "Fill a group from a table: Night=campsites or Instructor=instructors")
	cmd.Flags().StringVar(&keyField, "key-field", "Key", "Field name carrying the record key in group rows")
	cmd.Flags().StringVar(&workbookIn, "workbook", "", "Workbook for --group (default: workbook.path)")
	_ = cmd.MarkFlagRequired("job")

	return cmd
}

func loadBrief(path string) (*merge.Brief, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job: %w", err)
	}
	var b merge.Brief
	if err := yaml.UnmarshalStrict(data, &b); err != nil {
		return nil, fmt.Errorf("parse job %s: %w", path, err)
	}
	return &b, nil
}

// fillGroups replaces brief groups with rows of configured tables.
func fillGroups(b *merge.Brief, specs []string, keyField, workbookIn string) error {
	var args []string
	if workbookIn != "" {
		args = []string{workbookIn}
	}
	path, err := workbookPath(args)
	if err != nil {
		return err
	}
	wb, err := loadWorkbook(path)
	if err != nil {
		return err
	}
	s, err := registerTables(wb, false)
	if err != nil {
		return err
	}

	for _, spec := range specs {
		group, table, ok := strings.Cut(spec, "=")
		if !ok {
			return fmt.Errorf("invalid --group %q: want Group=table", spec)
		}
		t, err := s.Get(table)
		if err != nil {
			return err
		}
		rows := t.Records(keyField)
		switch group {
		case "Night":
			b.Nights = rows
		case "Instructor":
			b.Instructors = rows
		default:
			return fmt.Errorf("invalid --group %q: brief groups are Night and Instructor", spec)
		}
	}
	return nil
}
