// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fault

//go:generate mockgen -source=interfaces.go -destination=../mock/fault_publisher_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-http-core/models"
)

// Publisher delivers normalized failures to an external fault-reporting
// system.
type Publisher interface {
	Publish(ctx context.Context, rec models.ErrorRecord) error
}
