package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/autofix/pkg/fix"
)

func TestModePredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode          fix.Mode
		computesFixes bool
		writesFixes   bool
		name          string
	}{
		{fix.ModeGenerate, true, false, "generate"},
		{fix.ModeApply, true, true, "apply"},
		{fix.ModeDisabled, false, false, "disabled"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.computesFixes, testCase.mode.ComputesFixes())
			assert.Equal(t, testCase.writesFixes, testCase.mode.WritesFixes())
			assert.Equal(t, testCase.name, testCase.mode.String())
		})
	}
}

func TestModeFromFlag(t *testing.T) {
	t.Parallel()

	assert.Equal(t, fix.ModeApply, fix.ModeFromFlag(true))
	assert.Equal(t, fix.ModeDisabled, fix.ModeFromFlag(false))
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    fix.Mode
		wantErr bool
	}{
		{"generate", fix.ModeGenerate, false},
		{"APPLY", fix.ModeApply, false},
		{" disabled ", fix.ModeDisabled, false},
		{"none", fix.ModeDisabled, false},
		{"", fix.ModeDisabled, true},
		{"sometimes", fix.ModeDisabled, true},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()

			got, err := fix.ParseMode(testCase.input)
			if testCase.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestModeStringUnknown(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Mode(9)", fix.Mode(9).String())
	assert.False(t, fix.Mode(9).ComputesFixes())
}
