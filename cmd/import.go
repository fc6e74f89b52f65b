/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eslsoft/charm/internal/app"
	"github.com/eslsoft/charm/internal/usecase/backup"
)

const (
	importInputKey  = "backup.import.input"
	importGzipKey   = "backup.import.gzip"
	importDryRunKey = "backup.import.dry_run"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Merge an NDJSON backup into the vocabulary",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()

		inputPath := viper.GetString(importInputKey)
		if inputPath == "" {
			return fmt.Errorf("specify the backup with --input, or - for stdin")
		}

		c, err := app.Initialize(ctx, app.Stdio{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()})
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}

		reader, fns, err := openBackupReader(cmd, inputPath, wantsGzip(inputPath, viper.GetBool(importGzipKey)))
		if err != nil {
			return err
		}
		defer fns.close(&err)

		progress := newCLIProgress(cmd.ErrOrStderr(), "imported")
		summary, err := c.Backup.Import(ctx, reader, c.Session, backup.WithProgressReporter(progress))
		if err != nil {
			return fmt.Errorf("import backup: %w", err)
		}

		if viper.GetBool(importDryRunKey) {
			cmd.Printf("dry run: %d words read, %d new\n", summary.Words, summary.Created)
			return nil
		}
		if err := c.Repository.Restore(ctx, c.Session); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		cmd.Printf("import complete: %d words read, %d new, %d total\n", summary.Words, summary.Created, c.Session.Words.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringP("input", "i", "", "backup file path, - for stdin")
	importCmd.Flags().Bool("gzip", false, "input is gzip compressed")
	importCmd.Flags().Bool("dry-run", false, "read and validate the backup without saving")

	bindFlagToViper(importInputKey, importCmd.Flags().Lookup("input"))
	bindFlagToViper(importGzipKey, importCmd.Flags().Lookup("gzip"))
	bindFlagToViper(importDryRunKey, importCmd.Flags().Lookup("dry-run"))
}
