package reports

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Reporter logs a daily one-line volume summary of the records
// directory, counted by file prefix ("order", "checkin", ...).
type Reporter struct {
	cron *cron.Cron
	dir  string
}

func New(dir string) *Reporter {
	return &Reporter{
		cron: cron.New(cron.WithLocation(time.UTC)),
		dir:  dir,
	}
}

// Start schedules the daily report at 21:00 UTC.
func (r *Reporter) Start() error {
	_, err := r.cron.AddFunc("0 21 * * *", func() {
		if err := r.Report(); err != nil {
			log.Printf("daily records report failed: %v", err)
		}
	})
	if err != nil {
		return err
	}
	r.cron.Start()
	log.Printf("reporter started - daily records summary at 21:00 UTC")
	return nil
}

func (r *Reporter) Stop() {
	if r.cron != nil {
		ctx := r.cron.Stop()
		<-ctx.Done()
	}
}

// Report counts saved records and logs the summary line.
func (r *Reporter) Report() error {
	counts, err := countByPrefix(r.dir)
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		log.Printf("records summary: no records saved yet")
		return nil
	}
	prefixes := make([]string, 0, len(counts))
	for p := range counts {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	parts := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		parts = append(parts, fmt.Sprintf("%s=%d", p, counts[p]))
	}
	log.Printf("records summary: %s", strings.Join(parts, " "))
	return nil
}

// countByPrefix tallies *.json files in dir by the text before the
// first underscore of the file name.
func countByPrefix(dir string) (map[string]int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read records dir: %w", err)
	}
	counts := make(map[string]int)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		prefix := name
		if i := strings.Index(name, "_"); i > 0 {
			prefix = name[:i]
		}
		counts[prefix]++
	}
	return counts, nil
}
