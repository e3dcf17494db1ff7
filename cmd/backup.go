package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/maragym/gymlog/internal/presentation"
)

// Export formats.
const (
	formatJSON = "json"
	formatXLSX = "xlsx"
)

var (
	exportOutput string
	exportFormat string
	exportS3     bool
	importS3Key  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export exercises and logged sets",
	Long: `Export every exercise and logged set.

JSON backups have the form {"exercises": [...], "entries": [...]} and can be
restored with "gymlog import". XLSX workbooks have one sheet per collection
and are export only.

Examples:
  # JSON backup to stdout
  gymlog export

  # JSON backup to a file
  gymlog export -o gymlog-backup.json

  # Spreadsheet
  gymlog export --format xlsx -o gymlog.xlsx

  # Upload to the configured S3 bucket (backup.s3.bucket)
  gymlog export --s3`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportS3 {
			if exportFormat != formatJSON {
				return fmt.Errorf("--s3 only supports the json format")
			}
			key, err := gymApp.BackupToS3(cmd.Context())
			if err != nil {
				return err
			}
			formatter := presentation.NewFormatter(cmd.OutOrStdout())
			return formatter.FormatResult(map[string]string{
				"bucket": cfg.Backup.S3.Bucket,
				"key":    key,
			})
		}

		var write func(io.Writer) error
		switch exportFormat {
		case formatJSON:
			write = gymApp.Export
		case formatXLSX:
			if exportOutput == "" {
				return fmt.Errorf("--format xlsx requires --output")
			}
			write = gymApp.ExportXLSX
		default:
			return fmt.Errorf("unknown format %q (want json or xlsx)", exportFormat)
		}

		if exportOutput == "" {
			return write(cmd.OutOrStdout())
		}
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("creating %s: %w", exportOutput, err)
		}
		if err := write(f); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore a JSON backup",
	Long: `Restore a JSON backup created by "gymlog export". The backup replaces all
current exercises and logged sets; nothing is merged. Invalid backups are
rejected and leave the data untouched.

Examples:
  # From a file
  gymlog import gymlog-backup.json

  # From stdin
  cat gymlog-backup.json | gymlog import -

  # From the configured S3 bucket
  gymlog import --s3 gymlog/gymlog-20240601T180000Z.json`,
	Args: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("s3") {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("s3") {
			if err := gymApp.RestoreFromS3(cmd.Context(), importS3Key); err != nil {
				return err
			}
		} else {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			if err := gymApp.Import(data); err != nil {
				return err
			}
		}

		formatter := presentation.NewFormatter(cmd.OutOrStdout())
		return formatter.FormatResult(map[string]int{
			"exercises": len(gymApp.Exercises.Exercises()),
			"entries":   len(gymApp.Entries.Entries()),
		})
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", formatJSON, "Output format: json or xlsx")
	exportCmd.Flags().BoolVar(&exportS3, "s3", false, "Upload the backup to the configured S3 bucket")
	importCmd.Flags().StringVar(&importS3Key, "s3", "", "Restore the backup stored under this S3 object key")

	rootCmd.AddCommand(exportCmd, importCmd)
}

// readInput reads path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
