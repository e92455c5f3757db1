// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataBag_Constructors(t *testing.T) {
	tests := []struct {
		name       string
		bag        DataBag
		wantCode   int
		wantMsg    string
		wantFailed bool
	}{
		{name: "succeed", bag: Succeed(1), wantCode: http.StatusOK, wantMsg: MessageSuccess},
		{name: "message", bag: Message("done", nil), wantCode: http.StatusOK, wantMsg: "done"},
		{name: "failed default code", bag: Failed("bad", 0), wantCode: http.StatusBadRequest, wantMsg: "bad", wantFailed: true},
		{name: "failed custom code", bag: Failed("", http.StatusConflict), wantCode: http.StatusConflict, wantMsg: MessageFailed, wantFailed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.bag.Code)
			assert.Equal(t, tt.wantMsg, tt.bag.Message)
			assert.Equal(t, tt.wantFailed, tt.bag.IsFailed())
		})
	}
}

func TestErrorRecord_DepthAndChain(t *testing.T) {
	rec := ErrorRecord{Kind: "a", Cause: &ErrorRecord{Kind: "b", Cause: &ErrorRecord{Kind: "c"}}}

	assert.Equal(t, 3, rec.Depth())
	chain := rec.Chain()
	assert.Equal(t, []string{"a", "b", "c"}, []string{chain[0].Kind, chain[1].Kind, chain[2].Kind})
}

func TestLocation_String(t *testing.T) {
	assert.Equal(t, "unknown", Location{}.String())
	assert.Equal(t, "main.go:12", Location{File: "main.go", Line: 12}.String())
}

func TestNewAppBuildInfo_DefaultsToNA(t *testing.T) {
	info := NewAppBuildInfo("", "2026-01-01", "")
	assert.Equal(t, "N/A", info.BuildVersion())
	assert.Equal(t, "2026-01-01", info.BuildDate())
	assert.Equal(t, "N/A", info.BuildCommit())
}
