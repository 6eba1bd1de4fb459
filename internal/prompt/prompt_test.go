// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/lesson-scraper/pkg/types"
)

func TestChooseMode(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        types.OutputMode
		wantRetries int
	}{
		{"individual", "1\n", types.ModeIndividual, 0},
		{"combined", "2\n", types.ModeCombined, 0},
		{"surrounding whitespace", "  2  \n", types.ModeCombined, 0},
		{"no trailing newline", "1", types.ModeIndividual, 0},
		{"retries until valid", "3\nyes\n\n2\n", types.ModeCombined, 3},
		{"first valid answer wins", "x\n1\n2\n", types.ModeIndividual, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := ChooseMode(strings.NewReader(tt.input), &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantRetries, strings.Count(out.String(), "Please enter 1 or 2"))
		})
	}
}

func TestChooseMode_InputClosed(t *testing.T) {
	var out bytes.Buffer
	_, err := ChooseMode(strings.NewReader("individual\n"), &out)
	assert.ErrorIs(t, err, ErrNoChoice)
	assert.Equal(t, 1, strings.Count(out.String(), "Please enter 1 or 2"))
}
