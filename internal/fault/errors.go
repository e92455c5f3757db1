// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fault

import "errors"

// ErrNilFailure is recorded when a nil error is normalized.
var ErrNilFailure = errors.New("nil failure")
