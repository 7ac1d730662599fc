package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"pwa_icons/core"
	"pwa_icons/db"
	"pwa_icons/iconset"
	"pwa_icons/pngenc"
)

// reporter prints the human-facing console output. Structured logs go
// through the logger; this is only the summary a person reads.
type reporter struct {
	out io.Writer
}

func newReporter(out io.Writer) *reporter {
	return &reporter{out: out}
}

func (r *reporter) header(title string) {
	fmt.Fprintln(r.out)
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "━━━ %s ━━━\n", title)
	fmt.Fprintln(r.out)
}

func (r *reporter) icon(res iconset.Result) {
	if res.OK() {
		color.New(color.FgGreen).Fprintf(r.out, "  ✓ %s", res.Path)
		color.New(color.FgHiBlack).Fprintf(r.out, " - %s, %s\n", res.Spec.Sizes(), core.FormatBytes(int64(res.Bytes)))
		return
	}
	r.failure(res.Path, res.Err)
}

func (r *reporter) verified(path string, rep *pngenc.Report, err error) {
	if err != nil {
		r.failure(path, err)
		return
	}
	color.New(color.FgGreen).Fprintf(r.out, "  ✓ %s", path)
	color.New(color.FgHiBlack).Fprintf(r.out, " - %s, %d chunks, %s\n",
		rep.Header, len(rep.Chunks), core.FormatBytes(int64(rep.FileSize)))
}

func (r *reporter) note(msg string) {
	color.New(color.FgHiBlack).Fprintf(r.out, "  ○ %s\n", msg)
}

func (r *reporter) failure(subject string, err error) {
	color.New(color.FgRed).Fprintf(r.out, "  ✗ %s\n", subject)
	color.New(color.FgRed).Fprintf(r.out, "    └─ %v\n", err)
}

// configError prints a ConfigError with its action on a separate line.
func (r *reporter) configError(err error) {
	configErr, ok := core.IsConfigError(err)
	if !ok {
		r.failure("configuration", err)
		return
	}
	color.New(color.FgRed, color.Bold).Fprintf(r.out, "  ✗ %s [%s]\n", configErr.Message, configErr.Code)
	if configErr.Action != "" {
		color.New(color.FgYellow).Fprintf(r.out, "    → %s\n", configErr.Action)
	}
}

func (r *reporter) summary(run *iconset.Run) {
	fmt.Fprintln(r.out)
	written := len(run.Succeeded())
	if run.Failed() == 0 {
		ok := color.New(color.FgGreen, color.Bold)
		ok.Fprintf(r.out, "━━━ Icons Generated ")
		color.New(color.FgHiBlack).Fprintf(r.out, "(%d written in %v)", written, run.Duration.Round(time.Millisecond))
		ok.Fprintln(r.out, " ━━━")
	} else {
		fail := color.New(color.FgRed, color.Bold)
		fail.Fprintf(r.out, "━━━ Generation Failed ")
		color.New(color.FgHiBlack).Fprintf(r.out, "(%d written, %d failed)", written, run.Failed())
		fail.Fprintln(r.out, " ━━━")
	}
	fmt.Fprintln(r.out)
}

// record prints one ledger row.
func (r *reporter) record(rec db.GenerationRecord) {
	when := rec.CreatedAt.Local().Format("2006-01-02 15:04:05")
	if rec.Status == db.StatusSuccess {
		color.New(color.FgGreen).Fprintf(r.out, "  ✓ %s", rec.IconName)
		color.New(color.FgHiBlack).Fprintf(r.out, " - %dx%d, %s, %s, run %s\n",
			rec.Width, rec.Height, core.FormatBytes(int64(rec.ByteSize)), when, rec.RunID)
		return
	}
	color.New(color.FgRed).Fprintf(r.out, "  ✗ %s", rec.IconName)
	color.New(color.FgHiBlack).Fprintf(r.out, " - %dx%d, %s, run %s\n", rec.Width, rec.Height, when, rec.RunID)
	color.New(color.FgRed).Fprintf(r.out, "    └─ %s\n", rec.ErrorMessage)
}

func (r *reporter) historySummary(shown int, total int64) {
	fmt.Fprintln(r.out)
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "━━━ %d of %d records ━━━\n", shown, total)
	fmt.Fprintln(r.out)
}
