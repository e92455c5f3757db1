// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-http-core/internal/fault"
	"github.com/MKhiriev/go-http-core/models"
)

// FanOut publishes to every publisher in order. One failing publisher does
// not stop the others; their errors are joined.
type FanOut []fault.Publisher

func (f FanOut) Publish(ctx context.Context, rec models.ErrorRecord) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
