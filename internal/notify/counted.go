// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"context"

	"github.com/MKhiriev/go-http-core/internal/fault"
	"github.com/MKhiriev/go-http-core/models"
)

// Counted calls onFailure once for every failed publish and returns the
// error unchanged.
type Counted struct {
	next      fault.Publisher
	onFailure func()
}

func WithFailureCounter(next fault.Publisher, onFailure func()) *Counted {
	return &Counted{next: next, onFailure: onFailure}
}

func (c *Counted) Publish(ctx context.Context, rec models.ErrorRecord) error {
	err := c.next.Publish(ctx, rec)
	if err != nil && c.onFailure != nil {
		c.onFailure()
	}
	return err
}
