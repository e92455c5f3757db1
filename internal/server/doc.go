// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server wires and runs the application's HTTP server.
//
// It mounts the request pipeline next to the Prometheus metrics endpoint and
// owns the server lifecycle: startup, cancellation and graceful shutdown.
package server
