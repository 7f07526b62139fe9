// Package export renders table rows to PNG files on a bounded worker pool.
package export

import (
	"context"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"runtime/debug"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/youruser/cardgen/internal/assets"
	"github.com/youruser/cardgen/internal/cards"
	"github.com/youruser/cardgen/internal/config"
)

// Kind names the table being exported.
type Kind string

const (
	KindCards  Kind = "cards"
	KindSigils Kind = "sigils"
	KindTraits Kind = "traits"
)

// ParseKind accepts the kind names and their initials.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cards", "card", "c":
		return KindCards, nil
	case "sigils", "sigil", "s":
		return KindSigils, nil
	case "traits", "trait", "t":
		return KindTraits, nil
	}
	return "", fmt.Errorf("unknown export kind %q", s)
}

// Summary is the outcome of one export run.
type Summary struct {
	Kind     Kind
	Exported int
	// Failed lists the rows that could not be exported, in table order.
	Failed []string
	// Pending lists selection entries that matched no row.
	Pending []string
}

func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "exported %d %s", s.Exported, s.Kind)
	if len(s.Failed) > 0 {
		fmt.Fprintf(&b, ", %d failed: %s", len(s.Failed), strings.Join(s.Failed, ", "))
	}
	if len(s.Pending) > 0 {
		fmt.Fprintf(&b, ", not found: %s", strings.Join(s.Pending, ", "))
	}
	return b.String()
}

type Exporter struct {
	cfg     *config.Config
	src     assets.Source
	cards   *cards.Renderer
	dir     string
	workers int
}

func New(cfg *config.Config, src assets.Source, r *cards.Renderer) *Exporter {
	return &Exporter{
		cfg:     cfg,
		src:     src,
		cards:   r,
		dir:     cfg.Paths.ExportsDir,
		workers: cfg.Paths.Workers,
	}
}

type job struct {
	index int
	rec   cards.Record
}

// output is what one row produced. Only card rows fill it in.
type output struct {
	index int
	name  string
	thumb image.Image
}

// Run exports every selected row. Rows fail independently: their errors are
// logged and listed in the summary. The returned error is only set when ctx
// was cancelled before every row was scheduled.
func (e *Exporter) Run(ctx context.Context, kind Kind, records []cards.Record, sel *cards.Selection) (Summary, error) {
	sum := Summary{Kind: kind}
	if sel == nil {
		sel = cards.ParseSelection("")
	}

	// Selection is stateful and must see rows in table order, so it runs
	// before any work is handed out.
	var jobs []job
	for i, rec := range records {
		if sel.Match(rec.Name()) {
			jobs = append(jobs, job{index: i, rec: rec})
		}
	}
	sum.Pending = sel.Pending()
	if sel.All() {
		log.Printf("[%s] exporting all %d rows", kind, len(jobs))
	} else {
		log.Printf("[%s] exporting %d of %d rows", kind, len(jobs), len(records))
	}

	run, err := e.runner(kind)
	if err != nil {
		return sum, err
	}

	var (
		mu      sync.Mutex
		failed  []job
		outputs []output
		done    atomic.Int64
		g       errgroup.Group
	)
	g.SetLimit(e.workers)
	total := len(jobs)

	var cancelled error
	for _, j := range jobs {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		j := j
		g.Go(func() error {
			out, err := e.safely(j, run)
			n := done.Add(1)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("[%s %d/%d] %s: %v", kind, n, total, j.rec.Name(), err)
				failed = append(failed, j)
				return nil
			}
			log.Printf("[%s %d/%d] %s", kind, n, total, j.rec.Name())
			outputs = append(outputs, out)
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(failed, func(a, b int) bool { return failed[a].index < failed[b].index })
	for _, j := range failed {
		sum.Failed = append(sum.Failed, j.rec.Name())
	}
	sum.Exported = len(outputs)

	if kind == KindCards && len(outputs) > 0 {
		sort.Slice(outputs, func(a, b int) bool { return outputs[a].index < outputs[b].index })
		if err := e.finishCards(outputs); err != nil {
			log.Printf("[cards] %v", err)
		}
	}
	if cancelled != nil {
		return sum, fmt.Errorf("export cancelled: %w", cancelled)
	}
	return sum, nil
}

type rowFunc func(j job) (output, error)

func (e *Exporter) runner(kind Kind) (rowFunc, error) {
	switch kind {
	case KindCards:
		return e.exportCard, nil
	case KindSigils:
		return e.exportSigil, nil
	case KindTraits:
		return e.exportTrait, nil
	}
	return nil, fmt.Errorf("unknown export kind %q", kind)
}

// safely runs one row, turning a panic into that row's error.
func (e *Exporter) safely(j job, run rowFunc) (out output, err error) {
	defer func() {
		if p := recover(); p != nil {
			log.Printf("panic exporting %s: %v\n%s", j.rec.Name(), p, debug.Stack())
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return run(j)
}

func (e *Exporter) path(parts ...string) string {
	return filepath.Join(append([]string{e.dir}, parts...)...)
}

// fileName keeps row names usable as file names.
func fileName(name string) string {
	return strings.NewReplacer("/", "_", "\\", "_").Replace(name) + ".png"
}
