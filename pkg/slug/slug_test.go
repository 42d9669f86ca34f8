// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yonota/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Books", "books"},
		{"spaces", "Science Fiction", "science-fiction"},
		{"accents", "Café au Lait", "cafe-au-lait"},
		{"punctuation", "Rock & Roll!", "rock-roll"},
		{"collapsed_hyphens", "a -- b", "a-b"},
		{"trimmed", " padded ", "padded"},
		{"numbers", "Top 10", "top-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
