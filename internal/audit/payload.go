// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package audit

import (
	"mime"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/MKhiriev/go-http-core/internal/normalize"
	"github.com/MKhiriev/go-http-core/internal/scope"
	"github.com/MKhiriev/go-http-core/models"
)

// queryValue turns URL query parameters into a map. Parameters given once
// become strings, repeated parameters become sequences.
func queryValue(q url.Values) normalize.Value {
	if len(q) == 0 {
		return normalize.Null()
	}

	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	pairs := make([]normalize.Pair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, normalize.P(k, paramValue(q[k])))
	}
	return normalize.Map(pairs...)
}

func paramValue(values []string) normalize.Value {
	if len(values) == 1 {
		return normalize.String(values[0])
	}
	items := make([]normalize.Value, 0, len(values))
	for _, v := range values {
		items = append(items, normalize.String(v))
	}
	return normalize.Seq(items...)
}

// parsedBody decodes a buffered request body. JSON and URL-encoded forms are
// understood; anything else, and anything that fails to parse, yields null.
func parsedBody(body scope.RequestBody) normalize.Value {
	if len(body.Raw) == 0 {
		return normalize.Null()
	}

	mediaType, _, err := mime.ParseMediaType(body.ContentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(body.ContentType))
	}

	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		v, err := normalize.Parse(body.Raw)
		if err != nil {
			return normalize.Null()
		}
		return v
	case mediaType == "application/x-www-form-urlencoded":
		form, err := url.ParseQuery(string(body.Raw))
		if err != nil {
			return normalize.Null()
		}
		return queryValue(form)
	default:
		return normalize.Null()
	}
}

// isIgnoredMethod reports whether responses to method are never logged.
func isIgnoredMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}

// loggable hides the values under hidden keys and applies the integer rule
// of client payloads.
func loggable(v normalize.Value, hidden []string) normalize.Value {
	return normalize.Normalize(normalize.Redact(v, hidden))
}

// responseValue converts the recorded logical response into what the access
// record shows for it. ok is false when the response is omitted.
func responseValue(data any, body []byte, hidden []string) (any, bool) {
	v := normalize.From(data).Convert()

	switch v.Kind() {
	case normalize.KindNull:
		return nil, false
	case normalize.KindBool:
		b, _ := v.AsBool()
		if b {
			return models.True, true
		}
		return models.False, true
	case normalize.KindMap, normalize.KindSequence:
		return loggable(v, hidden), true
	default:
		return string(body), true
	}
}
