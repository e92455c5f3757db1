// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import "errors"

var (
	// ErrEventDropped is returned when Sentry refuses to queue an event,
	// e.g. because of sampling or a BeforeSend hook.
	ErrEventDropped = errors.New("sentry dropped the event")

	// ErrWebhookRejected is returned when the webhook answers with a
	// non-2xx status.
	ErrWebhookRejected = errors.New("webhook rejected the fault report")

	// ErrEmptyWebhookURL is returned when a webhook publisher is built
	// without a target.
	ErrEmptyWebhookURL = errors.New("webhook url is empty")
)
