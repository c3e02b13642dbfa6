package exports

import (
	"errors"
	"io"
	"log"

	"csv-to-json/common"
	"csv-to-json/parsers"
)

// Converter runs the CSV to JSON pipeline: count, read, map, aggregate,
// encode and write. Every stage returns its error; nothing exits the process.
type Converter struct {
	Lowercase bool
	Pretty    bool

	// Logger receives stage and progress lines. Nil discards them.
	Logger *log.Logger

	// Jobs records each conversion. Nil records nothing.
	Jobs *common.JobStore
}

// Report describes what Build read
type Report struct {
	Shape     Shape
	Total     int
	Processed int
	Headers   *common.HeaderValidationResult
}

// Result describes a completed Convert
type Result struct {
	Report
	JobID  string
	Output string
	Bytes  int
}

func (c *Converter) logger() *log.Logger {
	if c.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return c.Logger
}

// Build reads input and aggregates its rows into a Document. When job is
// not nil its progress is recorded in c.Jobs.
func (c *Converter) Build(input string, job *common.ConversionJob) (*Document, *Report, error) {
	logger := c.logger()

	total, err := parsers.CountRecords(input)
	if err != nil {
		return nil, nil, err
	}

	logger.Println("Reading csv file")
	reader, err := parsers.Open(input)
	if err != nil {
		return nil, nil, err
	}
	defer reader.Close()

	mapper := NewMapper(reader.Headers(), c.Lowercase)
	doc := NewDocument(total)
	report := &Report{
		Shape:   doc.Shape(),
		Total:   total,
		Headers: common.ValidateHeaders(mapper.Keys()),
	}
	for _, warning := range report.Headers.Warnings {
		logger.Printf("Warning: column %d: %s", warning.Column, warning.Message)
	}

	if job != nil {
		if err := c.Jobs.Processing(job, total, doc.Shape().String()); err != nil {
			logger.Printf("failed to update job %s: %v", job.ID, err)
		}
	}

	logger.Println("Processing records")
	progress := newProgressReporter(logger, total)
	for {
		row, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		report.Processed++
		progress.Inc()
		if !doc.Add(mapper.Map(row)) {
			break
		}
	}
	progress.Finish(report.Processed)

	return doc, report, nil
}

// Convert converts input and writes the document to output. An empty
// output selects DefaultOutput(input).
func (c *Converter) Convert(input, output string) (*Result, error) {
	logger := c.logger()

	logger.Println("Getting inputs")
	if output == "" {
		output = DefaultOutput(input)
	}

	job, err := c.Jobs.Start(input, output, c.Lowercase, c.Pretty)
	if err != nil {
		logger.Printf("failed to record job: %v", err)
	}

	result, err := c.convert(input, output, job)
	if err != nil {
		if jobErr := c.Jobs.Fail(job, err); jobErr != nil {
			logger.Printf("failed to update job %s: %v", job.ID, jobErr)
		}
		return nil, err
	}

	if err := c.Jobs.Complete(job, result.Processed, result.Headers.ToJSON()); err != nil {
		logger.Printf("failed to update job %s: %v", job.ID, err)
	}
	result.JobID = job.ID
	return result, nil
}

func (c *Converter) convert(input, output string, job *common.ConversionJob) (*Result, error) {
	logger := c.logger()

	doc, report, err := c.Build(input, job)
	if err != nil {
		return nil, err
	}

	data, err := Encode(doc, c.Pretty)
	if err != nil {
		return nil, err
	}

	logger.Println("Building path if needed")
	logger.Println("Writing JSON file now")
	if err := WriteFile(output, data); err != nil {
		return nil, err
	}
	logger.Printf("JSON created at %s", output)

	return &Result{
		Report: *report,
		Output: output,
		Bytes:  len(data),
	}, nil
}
