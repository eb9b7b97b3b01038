// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog(t *testing.T) {
	assert.NoError(t, Log(nil))
	err := fmt.Errorf("boom")
	assert.Equal(t, err, Log(err))
}

func TestLog1(t *testing.T) {
	assert.Equal(t, 3, Log1(3, nil))
	assert.Equal(t, 0, Log1(0, fmt.Errorf("boom")))
}

func TestIsWrapped(t *testing.T) {
	base := New("base")
	err := fmt.Errorf("outer: %w", base)
	assert.True(t, Is(err, base))
	assert.False(t, Is(base, err))
}

func TestCallerInfo(t *testing.T) {
	var info string
	func() { info = CallerInfo() }()
	assert.True(t, strings.Contains(info, "errors_test.go"), info)
}
