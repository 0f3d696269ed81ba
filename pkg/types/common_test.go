package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		input Hash
		want  bool
	}{
		{
			name:  "SHA-1 Hex (40 chars)",
			input: Hash(strings.Repeat("a", 40)),
			want:  true,
		},
		{
			name:  "Multihash Hex (68 chars)",
			input: Hash("1220" + strings.Repeat("0f", 32)),
			want:  true,
		},
		{
			name:  "Odd Length",
			input: Hash("abc"),
			want:  false,
		},
		{
			name:  "Empty",
			input: Hash(""),
			want:  false,
		},
		{
			name:  "Not Hex",
			input: Hash("deadbeefzz"),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.input.IsValid())
		})
	}
}

func TestHash_String(t *testing.T) {
	s := "aabbcc"
	h := Hash(s)
	assert.Equal(t, s, h.String())
	assert.False(t, h.IsZero())

	var zero Hash
	assert.True(t, zero.IsZero())
}

func TestHash_Short(t *testing.T) {
	assert.Equal(t, "aabbccdd", Hash("aabbccddeeff").Short())
	assert.Equal(t, "abc", Hash("abc").Short())
}

func TestBranchName_String(t *testing.T) {
	assert.Equal(t, "master", BranchName("master").String())
}
