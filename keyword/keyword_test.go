package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKeyword(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{name: "context keyword", value: "@context", expected: true},
		{name: "id keyword", value: "@id", expected: true},
		{name: "json keyword", value: "@json", expected: true},
		{name: "framing keyword", value: "@omitDefault", expected: true},
		{name: "unknown at-token", value: "@foo", expected: false},
		{name: "plain term", value: "name", expected: false},
		{name: "empty string", value: "", expected: false},
		{name: "bare at sign", value: "@", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsKeyword(tt.value))
		})
	}
}

func TestHasForm(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{name: "actual keyword", value: "@type", expected: true},
		{name: "future keyword", value: "@ignoreMe", expected: true},
		{name: "digit after at", value: "@1abc", expected: false},
		{name: "embedded punctuation", value: "@foo.bar", expected: false},
		{name: "bare at sign", value: "@", expected: false},
		{name: "no at sign", value: "type", expected: false},
		{name: "empty string", value: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasForm(tt.value))
		})
	}
}
