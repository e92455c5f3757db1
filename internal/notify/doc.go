// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package notify contains the fault-reporting collaborators the failure
// reporter publishes normalized records to: a Sentry publisher, a JSON
// webhook publisher and a fan-out combining several publishers.
package notify
