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

	adapterrepo "github.com/eslsoft/charm/internal/adapter/repository"
	"github.com/eslsoft/charm/internal/app"
)

// dbSyncCmd mirrors the flat-file vocabulary into a SQL words table
var dbSyncCmd = &cobra.Command{
	Use:   "db-sync",
	Short: "Mirror the vocabulary into a SQL database",
	Long:  "Upserts every known word into the words table of the configured database (sqlite3 or postgres). go-sqlite3 requires a CGO_ENABLED=1 build.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		c, cleanup, err := app.InitializeSync(ctx)
		if err != nil {
			return fmt.Errorf("prepare sync: %w", err)
		}
		defer cleanup()

		progress := newCLIProgress(cmd.ErrOrStderr(), "synced")
		mirror := adapterrepo.NewSQLMirror(c.DB.DB, c.DB.Driver, c.Logger,
			adapterrepo.WithMirrorProgress(progress.Report("words")))

		n, err := mirror.Sync(ctx, c.Session.Words.Words())
		if err != nil {
			return fmt.Errorf("sync words: %w", err)
		}
		cmd.Printf("sync complete: %d words written to %s\n", n, c.DB.Driver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbSyncCmd)
}
