// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-http-core/internal/utils"
	"github.com/MKhiriev/go-http-core/models"
)

// WebhookPayload is the JSON document posted for every failure.
type WebhookPayload struct {
	Service    string             `json:"service"`
	TraceID    string             `json:"trace_id,omitempty"`
	OccurredAt time.Time          `json:"occurred_at"`
	Failure    models.ErrorRecord `json:"failure"`
}

// WebhookPublisher posts failures to an HTTP endpoint.
type WebhookPublisher struct {
	client  *utils.HTTPClient
	url     string
	service string
	now     func() time.Time
}

func NewWebhookPublisher(client *utils.HTTPClient, url, service string) (*WebhookPublisher, error) {
	if url == "" {
		return nil, ErrEmptyWebhookURL
	}
	return &WebhookPublisher{client: client, url: url, service: service, now: time.Now}, nil
}

func (p *WebhookPublisher) Publish(ctx context.Context, rec models.ErrorRecord) error {
	payload := WebhookPayload{
		Service:    p.service,
		OccurredAt: p.now().UTC(),
		Failure:    rec,
	}
	if traceID, ok := utils.GetTraceIDFromContext(ctx); ok {
		payload.TraceID = traceID
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(p.url)
	if err != nil {
		return fmt.Errorf("post fault report: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: status %d", ErrWebhookRejected, resp.StatusCode())
	}
	return nil
}
