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
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/eslsoft/charm/internal/infrastructure/console"
)

const stdioPath = "-"

func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// wantsGzip enables compression for .gz paths even without --gzip.
func wantsGzip(path string, gzipFlag bool) bool {
	return gzipFlag || (path != stdioPath && strings.HasSuffix(strings.ToLower(path), ".gz"))
}

// closers runs every close function in order and keeps the first error.
type closers []func() error

func (c closers) close(err *error) {
	for _, closer := range c {
		if cerr := closer(); cerr != nil && *err == nil {
			*err = cerr
		}
	}
}

func openBackupWriter(cmd *cobra.Command, path string, gzipEnabled bool) (io.Writer, closers, error) {
	var (
		writer = cmd.OutOrStdout()
		fns    closers
	)
	if path != stdioPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create output directory: %w", err)
		}
		file, err := os.Create(path)
		if err != nil {
			return nil, nil, fmt.Errorf("create backup file: %w", err)
		}
		writer = file
		fns = append(fns, file.Close)
	}
	if gzipEnabled {
		gz := gzip.NewWriter(writer)
		writer = gz
		fns = append(closers{gz.Close}, fns...)
	}
	return writer, fns, nil
}

func openBackupReader(cmd *cobra.Command, path string, gzipEnabled bool) (io.Reader, closers, error) {
	var (
		reader = cmd.InOrStdin()
		fns    closers
	)
	if path != stdioPath {
		file, err := os.Open(filepath.Clean(path))
		if err != nil {
			return nil, nil, fmt.Errorf("open backup file: %w", err)
		}
		reader = file
		fns = append(fns, file.Close)
	}
	if gzipEnabled {
		gzr, err := gzip.NewReader(reader)
		if err != nil {
			fns.close(&err)
			return nil, nil, fmt.Errorf("create gzip reader: %w", err)
		}
		reader = gzr
		fns = append(closers{gzr.Close}, fns...)
	}
	return reader, fns, nil
}

// cliProgress prints "<verb> <section>: n/total" status lines, throttled to
// about twenty updates per section.
type cliProgress struct {
	out         io.Writer
	verb        string
	totals      map[string]int
	counts      map[string]int
	lastPrinted map[string]int
	steps       map[string]int
}

func newCLIProgress(out io.Writer, verb string) *cliProgress {
	return &cliProgress{
		out:         out,
		verb:        verb,
		totals:      make(map[string]int),
		counts:      make(map[string]int),
		lastPrinted: make(map[string]int),
		steps:       make(map[string]int),
	}
}

func (p *cliProgress) Start(section string, total int) {
	if total < 0 {
		total = 0
	}
	p.totals[section] = total
	p.counts[section] = 0
	p.lastPrinted[section] = 0
	p.steps[section] = progressStep(total)
}

func (p *cliProgress) Increment(section string, delta int) {
	if delta <= 0 {
		return
	}
	current := p.counts[section] + delta
	p.counts[section] = current
	total := p.totals[section]
	step := p.steps[section]
	if step <= 0 {
		step = 1
	}
	if current == total || p.lastPrinted[section] == 0 || current-p.lastPrinted[section] >= step {
		p.printProgress(section, current, total)
		p.lastPrinted[section] = current
	}
}

func (p *cliProgress) Finish(section string) {
	current := p.counts[section]
	if current != p.lastPrinted[section] {
		p.printProgress(section, current, p.totals[section])
	}
	delete(p.counts, section)
	delete(p.totals, section)
	delete(p.lastPrinted, section)
	delete(p.steps, section)
}

// Report adapts the reporter to callbacks that only know done and total.
func (p *cliProgress) Report(section string) func(done, total int) {
	return func(done, total int) {
		if done == 1 {
			p.Start(section, total)
		}
		p.Increment(section, 1)
		if done == total {
			p.Finish(section)
		}
	}
}

func (p *cliProgress) printProgress(section string, current, total int) {
	fmt.Fprintln(p.out, console.FormatStatus(p.verb+" "+section, current, total))
}

func progressStep(total int) int {
	if total <= 0 {
		return 1000
	}
	return min(max(total/20, 1), 1000)
}
