// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fault

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-http-core/internal/logger"
	"github.com/MKhiriev/go-http-core/internal/utils"
	"github.com/MKhiriev/go-http-core/models"
)

var (
	consoleHeader = lipgloss.NewStyle().Bold(true)
	consoleTrace  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Reporter logs, publishes and optionally echoes handler failures.
type Reporter struct {
	normalizer *Normalizer
	publisher  Publisher
	logger     *logger.Logger
	console    io.Writer
	debug      bool
}

// NewReporter wires a Reporter. publisher may be nil; console is only used
// in debug mode and may be nil otherwise.
func NewReporter(normalizer *Normalizer, publisher Publisher, log *logger.Logger, console io.Writer, debug bool) *Reporter {
	return &Reporter{
		normalizer: normalizer,
		publisher:  publisher,
		logger:     log,
		console:    console,
		debug:      debug,
	}
}

// Debug reports whether client payloads expose failure details.
func (r *Reporter) Debug() bool {
	return r.debug
}

// Report normalizes err, logs it, publishes it and returns the record the
// client envelope is built from. A publish failure is normalized and logged
// with err as its cause but never changes the returned record.
func (r *Reporter) Report(ctx context.Context, err error) models.ErrorRecord {
	rec := r.normalizer.Normalize(err)
	log := logger.FromContextOr(ctx, r.logger)

	log.Error().
		Str("kind", rec.Kind).
		Str("location", rec.Location.String()).
		Int("depth", rec.Depth()).
		Msg(Format(rec))

	if r.publisher != nil {
		if pubErr := r.publisher.Publish(ctx, rec); pubErr != nil {
			secondary := r.normalizer.NormalizeWithPrevious(pubErr, err)
			log.Error().
				Str("kind", secondary.Kind).
				Str("location", secondary.Location.String()).
				Bool("secondary", true).
				Msg(Format(secondary))
		}
	}

	if r.debug && r.console != nil {
		r.echo(ctx, rec)
	}

	return rec
}

func (r *Reporter) echo(ctx context.Context, rec models.ErrorRecord) {
	header := fmt.Sprintf("[%s] %s in %s", rec.Kind, rec.Message, rec.Location)
	if traceID, ok := utils.GetTraceIDFromContext(ctx); ok {
		header += " (trace " + traceID + ")"
	}
	fmt.Fprintln(r.console, consoleHeader.Render(header))
	for _, line := range rec.TraceLines {
		fmt.Fprintln(r.console, consoleTrace.Render(line))
	}
}
