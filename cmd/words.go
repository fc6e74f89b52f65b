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
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/eslsoft/charm/internal/app"
	"github.com/eslsoft/charm/internal/entity"
	"github.com/eslsoft/charm/internal/repository"
	"github.com/eslsoft/charm/internal/usecase"
)

const (
	wordsFilterKey  = "words.filter"
	wordsOrderByKey = "words.order_by"
	wordsOutputKey  = "words.output"
	wordsStatsKey   = "words.stats"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "List the learned vocabulary",
	Long: `List known words. --filter takes a CEL expression over text, part, parts,
definition, defined and uses, for example:

  charm words --filter "part == 'noun' && !defined" --order-by "text desc"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c, err := app.Initialize(ctx, app.Stdio{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()})
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}

		if viper.GetBool(wordsStatsKey) {
			return renderStats(cmd.OutOrStdout(), c.Words.Stats(ctx), c.Session.Words.Len())
		}

		query := &repository.ListWordQuery{FilterOrder: repository.FilterOrder{
			Filter:  viper.GetString(wordsFilterKey),
			OrderBy: viper.GetString(wordsOrderByKey),
		}}
		words, err := c.Words.List(ctx, query)
		if err != nil {
			return fmt.Errorf("list words: %w", err)
		}
		return renderWords(cmd.OutOrStdout(), words, viper.GetString(wordsOutputKey))
	},
}

func init() {
	rootCmd.AddCommand(wordsCmd)

	wordsCmd.Flags().String("filter", "", "CEL filter expression")
	wordsCmd.Flags().String("order-by", "", "ordering, e.g. \"part, text desc\" (default text)")
	wordsCmd.Flags().StringP("output", "o", "table", "output format: table or yaml")
	wordsCmd.Flags().Bool("stats", false, "count words per part of speech instead of listing them")

	bindFlagToViper(wordsFilterKey, wordsCmd.Flags().Lookup("filter"))
	bindFlagToViper(wordsOrderByKey, wordsCmd.Flags().Lookup("order-by"))
	bindFlagToViper(wordsOutputKey, wordsCmd.Flags().Lookup("output"))
	bindFlagToViper(wordsStatsKey, wordsCmd.Flags().Lookup("stats"))
}

type wordView struct {
	Text       string   `yaml:"text"`
	Parts      []string `yaml:"parts"`
	Definition string   `yaml:"definition,omitempty"`
}

func renderWords(out io.Writer, words []*entity.Word, format string) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		views := make([]wordView, 0, len(words))
		for _, w := range words {
			views = append(views, wordView{Text: w.Text, Parts: w.PartNameList(), Definition: w.Definition})
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(views); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "table", "":
		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"Word", "Parts", "Definition"})
		table.SetAutoWrapText(false)
		for _, w := range words {
			table.Append([]string{w.Text, strings.Join(w.PartNameList(), " "), w.Definition})
		}
		table.Render()
		return nil
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func renderStats(out io.Writer, stats []usecase.PartCount, total int) error {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Part", "Words"})
	for _, s := range stats {
		table.Append([]string{s.Part.Name(), strconv.Itoa(s.Count)})
	}
	table.SetFooter([]string{"Total", strconv.Itoa(total)})
	table.Render()
	return nil
}
