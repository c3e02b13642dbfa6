package exports

import (
	"log"

	"github.com/dustin/go-humanize"
)

// ProgressUpdateInterval controls how often progress is logged (in records)
const ProgressUpdateInterval = 10000

// progressReporter logs processed/total counts. It has no effect on the
// conversion itself.
type progressReporter struct {
	logger    *log.Logger
	total     int
	processed int
	interval  int
}

func newProgressReporter(logger *log.Logger, total int) *progressReporter {
	return &progressReporter{logger: logger, total: total, interval: ProgressUpdateInterval}
}

func (p *progressReporter) Inc() {
	p.processed++
	if p.processed%p.interval == 0 {
		p.log(p.processed)
	}
}

func (p *progressReporter) Finish(processed int) {
	p.log(processed)
	p.logger.Println("Conversion completed")
}

func (p *progressReporter) log(processed int) {
	p.logger.Printf("Processed %s/%s records", humanize.Comma(int64(processed)), humanize.Comma(int64(p.total)))
}
