// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fault

import (
	"errors"
	"fmt"
	"strings"

	crerrors "github.com/cockroachdb/errors"

	"github.com/MKhiriev/go-http-core/models"
)

// DefaultMaxDepth bounds the number of records in a normalized chain.
const DefaultMaxDepth = 16

// layersPerRecord bounds how many Unwrap steps are walked per kept record,
// which protects against cyclic or absurdly deep wrapper chains.
const layersPerRecord = 16

// Coder is implemented by failures that carry an application code.
type Coder interface {
	Code() int
}

// Normalizer converts errors into [models.ErrorRecord] chains.
type Normalizer struct {
	maxDepth int
}

// NewNormalizer returns a Normalizer keeping at most maxDepth records per
// chain. Values below 1 select DefaultMaxDepth.
func NewNormalizer(maxDepth int) *Normalizer {
	if maxDepth < 1 {
		maxDepth = DefaultMaxDepth
	}
	return &Normalizer{maxDepth: maxDepth}
}

// Normalize builds the record chain for err.
func (n *Normalizer) Normalize(err error) models.ErrorRecord {
	if err == nil {
		err = ErrNilFailure
	}

	groups := n.group(err)

	truncated := len(groups) > n.maxDepth
	if truncated {
		groups = groups[:n.maxDepth]
	}

	records := make([]models.ErrorRecord, len(groups))
	for i, layers := range groups {
		records[i] = record(layers)
	}
	if truncated {
		records[len(records)-1].Truncated = true
	}

	for i := len(records) - 2; i >= 0; i-- {
		records[i].Cause = &records[i+1]
	}
	return records[0]
}

// NormalizeWithPrevious normalizes err and appends the chain of previous
// as its cause, the way a failure raised while reporting another one is
// recorded.
func (n *Normalizer) NormalizeWithPrevious(err, previous error) models.ErrorRecord {
	rec := n.Normalize(err)
	if previous == nil {
		return rec
	}

	prev := n.Normalize(previous)
	chain := append(rec.Chain(), prev.Chain()...)
	if len(chain) > n.maxDepth {
		chain = chain[:n.maxDepth]
		chain[len(chain)-1].Truncated = true
	}
	for i := range chain {
		chain[i].Cause = nil
	}
	for i := len(chain) - 2; i >= 0; i-- {
		chain[i].Cause = &chain[i+1]
	}
	return chain[0]
}

// group walks the Unwrap chain and groups consecutive layers that render
// the same message: they describe one failure, the outer ones only adding
// a stack or other metadata.
func (n *Normalizer) group(err error) [][]error {
	var (
		groups [][]error
		layers int
	)
	limit := (n.maxDepth + 1) * layersPerRecord

	for cur := err; cur != nil && layers < limit; cur = unwrapOnce(cur) {
		layers++
		if k := len(groups); k > 0 && groups[k-1][0].Error() == cur.Error() {
			groups[k-1] = append(groups[k-1], cur)
			continue
		}
		if len(groups) > n.maxDepth {
			break
		}
		groups = append(groups, []error{cur})
	}
	return groups
}

func unwrapOnce(err error) error {
	if next := errors.Unwrap(err); next != nil {
		return next
	}
	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range multi.Unwrap() {
			if e != nil {
				return e
			}
		}
	}
	return nil
}

func record(layers []error) models.ErrorRecord {
	innermost := layers[len(layers)-1]
	rec := models.ErrorRecord{
		Kind:    fmt.Sprintf("%T", innermost),
		Message: innermost.Error(),
	}

	for _, layer := range layers {
		if c, ok := layer.(Coder); ok && rec.Code == 0 {
			rec.Code = c.Code()
		}
		if rec.TraceLines != nil {
			continue
		}
		if st := crerrors.GetReportableStackTrace(layer); st != nil && len(st.Frames) > 0 {
			frames := st.Frames
			top := frames[len(frames)-1]
			rec.Location = models.Location{File: framePath(top.AbsPath, top.Filename), Line: top.Lineno}
			rec.TraceLines = make([]string, 0, len(frames))
			for i := len(frames) - 1; i >= 0; i-- {
				f := frames[i]
				rec.TraceLines = append(rec.TraceLines, fmt.Sprintf("#%d %s(%d): %s",
					len(frames)-1-i, framePath(f.AbsPath, f.Filename), f.Lineno, frameFunction(f.Module, f.Function)))
			}
		}
	}

	return rec
}

func framePath(abs, rel string) string {
	if abs != "" {
		return abs
	}
	return rel
}

func frameFunction(module, function string) string {
	if module == "" || module == "unknown" {
		return function
	}
	return module + "." + function
}

// Format renders the one-line summary and trace used in logs:
//
//	[kind] message in file:line
//	#0 file(line): function
func Format(rec models.ErrorRecord) string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(rec.Kind)
	b.WriteString("] ")
	b.WriteString(rec.Message)
	b.WriteString(" in ")
	b.WriteString(rec.Location.String())
	for _, line := range rec.TraceLines {
		b.WriteString("\n")
		b.WriteString(line)
	}
	return b.String()
}
