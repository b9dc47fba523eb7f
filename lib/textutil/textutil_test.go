package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeQuery(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "  London ", expected: "london"},
		{input: "\tNEW York\n", expected: "new york"},
		{input: "", expected: ""},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, NormalizeQuery(test.input))
	}
}

func TestEqualNames(t *testing.T) {
	require.True(t, EqualNames("London", "london"))
	require.True(t, EqualNames("New York", "new york"))
	require.False(t, EqualNames(" London", "london"))
	require.False(t, EqualNames("London Heathrow", "london"))
}
