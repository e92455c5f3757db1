// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// listValue collects a comma separated flag into a string slice.
type listValue []string

func (l *listValue) String() string {
	return strings.Join(*l, ",")
}

func (l *listValue) Set(s string) error {
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			*l = append(*l, item)
		}
	}
	return nil
}

// parseFlags parses configuration flags from args into a fresh config.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-c/-config JSON or YAML config file path
//	-debug expose failure details and echo failures to the console
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-shutdown-timeout graceful shutdown timeout
//	-metrics-path path serving Prometheus metrics
//	-group endpoint group every request is pinned to
//	-access-print print access records to the console
//	-access-log write access records to the log
//	-hidden comma separated keys redacted in access records
//	-body-limit largest logged payload in bytes
//	-cors-policy-file watched CORS policy file
//	-sentry-dsn Sentry DSN failures are published to
//	-webhook-url URL failures are POSTed to
//	-fault-max-depth longest reported cause chain
//	-token-sign-key token signing key
//	-token-issuer token issuer name
func parseFlags(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	var (
		serverAddress NetAddress
		hidden        listValue
		cfg           StructuredConfig
	)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&cfg.FilePath, "c", "", "Config file path")
	fs.StringVar(&cfg.FilePath, "config", "", "Config file path (alias)")
	fs.BoolVar(&cfg.App.Debug, "debug", false, "Expose failure details")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&cfg.Server.ShutdownTimeout, "shutdown-timeout", 0, "Graceful shutdown timeout")
	fs.StringVar(&cfg.Server.MetricsPath, "metrics-path", "", "Metrics path, - disables metrics")
	fs.StringVar(&cfg.Server.Group, "group", "", "Endpoint group for every request")
	fs.BoolVar(&cfg.Access.Print, "access-print", false, "Print access records")
	fs.BoolVar(&cfg.Access.Log, "access-log", false, "Log access records")
	fs.Var(&hidden, "hidden", "Comma separated keys hidden in access records")
	fs.Int64Var(&cfg.Access.BodyLimit, "body-limit", 0, "Largest logged payload in bytes")
	fs.StringVar(&cfg.CORS.PolicyFile, "cors-policy-file", "", "CORS policy file")
	fs.StringVar(&cfg.Notify.SentryDSN, "sentry-dsn", "", "Sentry DSN")
	fs.StringVar(&cfg.Notify.WebhookURL, "webhook-url", "", "Failure webhook URL")
	fs.IntVar(&cfg.Fault.MaxDepth, "fault-max-depth", 0, "Longest reported cause chain")
	fs.StringVar(&cfg.Auth.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.Auth.TokenIssuer, "token-issuer", "", "Token issuer")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	if len(hidden) > 0 {
		cfg.Access.Hidden = hidden
	}
	return &cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
