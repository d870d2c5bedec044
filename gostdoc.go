// Package gostdoc provides a fluent API for reformatting DOCX documents to
// the GOST 7.32 report standard.
//
// Basic usage:
//
//	stats, err := gostdoc.Open("report.docx").Format("report_gost.docx")
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	stats, err := gostdoc.Open("report.docx").
//	    WithConfig(cfg).
//	    WithLogger(logger).
//	    Format("report_gost.docx")
//
// For advanced use cases, the lower-level docx and pipeline packages are
// also available.
package gostdoc

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gost-tools/gostdoc/docx"
	"github.com/gost-tools/gostdoc/pipeline"
	"github.com/gost-tools/gostdoc/style"
)

// Formatter is the fluent entry point: configure with WithConfig and
// WithLogger, then finish with Format or Bytes.
type Formatter struct {
	filename string
	data     []byte
	cfg      style.Config
	log      *zap.Logger
}

// Open prepares a DOCX file for formatting. The file is read lazily, when a
// terminal operation runs.
//
// Example:
//
//	stats, err := gostdoc.Open("report.docx").Format("out.docx")
func Open(filename string) *Formatter {
	return &Formatter{
		filename: filename,
		cfg:      style.DefaultConfig(),
	}
}

// FromBytes prepares an in-memory DOCX archive for formatting. This is what
// the bot and server front ends use for uploaded documents.
func FromBytes(data []byte) *Formatter {
	return &Formatter{
		data: data,
		cfg:  style.DefaultConfig(),
	}
}

// WithConfig replaces the default formatting configuration.
func (f *Formatter) WithConfig(cfg style.Config) *Formatter {
	f.cfg = cfg
	return f
}

// WithLogger attaches a logger. Without one the formatter is silent.
func (f *Formatter) WithLogger(log *zap.Logger) *Formatter {
	f.log = log
	return f
}

// Format runs the full formatting pipeline and writes the result to output.
// On error nothing is written: the pipeline either completes or the source
// document is left as the only copy.
func (f *Formatter) Format(output string) (pipeline.Statistics, error) {
	file, stats, err := f.run()
	if err != nil {
		return stats, err
	}
	if err := file.Save(output); err != nil {
		return stats, err
	}
	return stats, nil
}

// Bytes runs the full formatting pipeline and returns the formatted archive
// in memory.
func (f *Formatter) Bytes() ([]byte, pipeline.Statistics, error) {
	file, stats, err := f.run()
	if err != nil {
		return nil, stats, err
	}
	out, err := file.Bytes()
	if err != nil {
		return nil, stats, err
	}
	return out, stats, nil
}

func (f *Formatter) run() (*docx.File, pipeline.Statistics, error) {
	log := f.log
	if log == nil {
		log = zap.NewNop()
	}

	var (
		file *docx.File
		err  error
	)
	if f.filename != "" {
		file, err = docx.Open(f.filename)
	} else {
		file, err = docx.OpenBytes(f.data)
	}
	if err != nil {
		return nil, pipeline.Statistics{}, fmt.Errorf("opening document: %w", err)
	}

	for _, img := range file.Images() {
		log.Debug("embedded image",
			zap.String("path", img.Path),
			zap.String("format", img.Format),
			zap.Int("width", img.Width),
			zap.Int("height", img.Height))
	}

	stats, err := pipeline.New(f.cfg, log).Run(file.Document())
	if err != nil {
		return nil, stats, fmt.Errorf("formatting document: %w", err)
	}
	return file, stats, nil
}

// Must is a helper that wraps a call to a function returning (T, error) and
// panics if the error is non-nil. It is intended for use in scripts or
// tests where error handling would be cumbersome.
//
// Example:
//
//	stats := gostdoc.Must(gostdoc.Open("report.docx").Format("out.docx"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
