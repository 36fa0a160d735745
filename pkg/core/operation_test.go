package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/strops/pkg/core"
)

func TestParseOperation(t *testing.T) {
	tests := []struct {
		name    string
		want    core.Operation
		wantErr bool
	}{
		{"reverse", core.OpReverse, false},
		{"REV", core.OpReverse, false},
		{"vowels", core.OpCountVowels, false},
		{" count-vowels ", core.OpCountVowels, false},
		{"capitalize", core.OpCapitalizeWords, false},
		{"title", core.OpCapitalizeWords, false},
		{"shout", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := core.ParseOperation(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrUnknownOperation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply_HelloWorld(t *testing.T) {
	rev, err := core.Apply(core.OpReverse, "hello world")
	require.NoError(t, err)
	assert.Equal(t, "dlrow olleh", rev.Output)

	vowels, err := core.Apply(core.OpCountVowels, "hello world")
	require.NoError(t, err)
	assert.Equal(t, 3, vowels.Output)
	assert.Equal(t, "3", vowels.String())

	caps, err := core.Apply(core.OpCapitalizeWords, "hello world")
	require.NoError(t, err)
	assert.Equal(t, "Hello World", caps.Output)
	assert.Equal(t, "hello world", caps.Input)
}

func TestApply_InvalidUTF8(t *testing.T) {
	for _, op := range core.Operations() {
		_, err := core.Apply(op, "ab\xffcd")
		assert.True(t, errors.Is(err, core.ErrInvalidArgument), "op %s: got %v", op, err)
	}
}

func TestApply_UnknownOperation(t *testing.T) {
	_, err := core.Apply(core.Operation("shout"), "hi")
	assert.ErrorIs(t, err, core.ErrUnknownOperation)
}
