// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cors

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// Header names written by the negotiator.
const (
	HeaderAllowOrigin      = "Access-Control-Allow-Origin"
	HeaderAllowMethods     = "Access-Control-Allow-Methods"
	HeaderAllowHeaders     = "Access-Control-Allow-Headers"
	HeaderAllowCredentials = "Access-Control-Allow-Credentials"
	HeaderMaxAge           = "Access-Control-Max-Age"
	HeaderExposeHeaders    = "Access-Control-Expose-Headers"

	HeaderRequestMethod  = "Access-Control-Request-Method"
	HeaderRequestHeaders = "Access-Control-Request-Headers"
)

// Request headers browsers send on their own. They never need to be allowed.
var safeRequestHeaders = map[string]struct{}{
	"accept": {}, "accept-language": {}, "content-language": {}, "dpr": {},
	"downlink": {}, "save-data": {}, "viewport-width": {}, "width": {},
	"host": {}, "connection": {}, "pragma": {}, "cache-control": {},
	"sec-ch-ua": {}, "sec-ch-ua-mobile": {}, "user-agent": {}, "origin": {},
	"sec-fetch-site": {}, "sec-fetch-mode": {}, "sec-fetch-dest": {},
	"accept-encoding": {},
}

// Response headers that are never listed in Expose-Headers.
var unexposedResponseHeaders = map[string]struct{}{
	"access-control-allow-origin": {}, "access-control-allow-headers": {},
	"access-control-allow-methods": {}, "access-control-allow-credentials": {},
	"access-control-max-age": {}, "content-type": {}, "server": {},
	"connection": {}, "date": {}, "content-length": {}, "content-encoding": {},
}

// IsCorsRequest reports whether r carries an Origin header.
func IsCorsRequest(r *http.Request) bool {
	_, ok := r.Header["Origin"]
	return ok
}

// IsPreflight reports whether r is a CORS preflight request.
func IsPreflight(r *http.Request) bool {
	if r.Method != http.MethodOptions {
		return false
	}
	_, ok := r.Header[HeaderRequestMethod]
	return ok
}

// Negotiate writes the pre-handler CORS headers for r into h according to p.
// Headers already present in h are left untouched.
func Negotiate(r *http.Request, h http.Header, p Policy) {
	allowOrigin(r, h, p.Origin)
	allowMethods(r, h, p.Methods)
	allowHeaders(r, h, p.Headers)
	allowCredentials(h, p.Credentials)
	allowMaxAge(h, p.MaxAge)
}

// ExposeHeaders writes Access-Control-Expose-Headers for the response
// headers currently in h.
func ExposeHeaders(h http.Header, p Policy) {
	if has(h, HeaderExposeHeaders) {
		return
	}

	names := make([]string, 0, len(h))
	for name := range h {
		if _, skip := unexposedResponseHeaders[strings.ToLower(name)]; skip {
			continue
		}
		names = append(names, NormalizeHeaderName(name))
	}
	slices.Sort(names)

	if allowed := admitted(names, p.ExposeHeaders); len(allowed) > 0 {
		h.Set(HeaderExposeHeaders, strings.Join(allowed, ","))
	}
}

// NormalizeHeaderName Train-Cases a header name: "x-REQUEST-id" becomes
// "X-Request-Id".
func NormalizeHeaderName(name string) string {
	parts := strings.Split(name, "-")
	for i, part := range parts {
		part = strings.ToLower(part)
		if part != "" {
			part = strings.ToUpper(part[:1]) + part[1:]
		}
		parts[i] = part
	}
	return strings.Join(parts, "-")
}

func has(h http.Header, name string) bool {
	_, ok := h[http.CanonicalHeaderKey(name)]
	return ok
}

func allowOrigin(r *http.Request, h http.Header, rule Rule) {
	if has(h, HeaderAllowOrigin) {
		return
	}

	origin := r.Header.Get("Origin")
	switch {
	case rule.Any:
		if origin == "" {
			origin = wildcard
		}
		h.Set(HeaderAllowOrigin, origin)
	case rule.matches(origin, false):
		h.Set(HeaderAllowOrigin, origin)
	}
}

func allowMethods(r *http.Request, h http.Header, rule Rule) {
	if has(h, HeaderAllowMethods) {
		return
	}

	method := r.Method
	if IsPreflight(r) {
		method = r.Header.Get(HeaderRequestMethod)
	}
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		return
	}

	if rule.Any || rule.matches(method, true) {
		h.Set(HeaderAllowMethods, method)
	}
}

func allowHeaders(r *http.Request, h http.Header, rule Rule) {
	if has(h, HeaderAllowHeaders) {
		return
	}

	var names []string
	if IsPreflight(r) {
		for _, line := range r.Header.Values(HeaderRequestHeaders) {
			for _, name := range strings.Split(line, ",") {
				if name = strings.TrimSpace(name); name != "" {
					names = append(names, NormalizeHeaderName(name))
				}
			}
		}
	} else {
		for name := range r.Header {
			if _, safe := safeRequestHeaders[strings.ToLower(name)]; safe {
				continue
			}
			names = append(names, NormalizeHeaderName(name))
		}
		slices.Sort(names)
	}

	if allowed := admitted(names, rule); len(allowed) > 0 {
		h.Set(HeaderAllowHeaders, strings.Join(allowed, ","))
	}
}

func allowCredentials(h http.Header, credentials bool) {
	if has(h, HeaderAllowCredentials) {
		return
	}
	h.Set(HeaderAllowCredentials, strconv.FormatBool(credentials))
}

func allowMaxAge(h http.Header, maxAge int) {
	if has(h, HeaderMaxAge) || maxAge <= 0 {
		return
	}
	h.Set(HeaderMaxAge, strconv.Itoa(maxAge))
}

// admitted returns the candidate names the rule allows, in candidate order.
func admitted(candidates []string, rule Rule) []string {
	if rule.Any {
		return candidates
	}

	allowed := make(map[string]struct{}, len(rule.Values))
	for _, v := range rule.Values {
		allowed[NormalizeHeaderName(v)] = struct{}{}
	}

	var out []string
	for _, name := range candidates {
		if _, ok := allowed[name]; ok {
			out = append(out, name)
		}
	}
	return out
}
