// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/codejourney/pkg/slug"
)

/*
TestFrom converts titles to URL slugs.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Mi Primer Post en Go!", "mi-primer-post-en-go"},
		{"  Café  con   leche ", "cafe-con-leche"},
		{"Año 2026 — ¿qué sigue?", "ano-2026-que-sigue"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.in))
		})
	}
}

/*
TestContains matches regardless of accents and case.
*/
func TestContains(t *testing.T) {
	assert.True(t, slug.Contains("Aprendiendo a programar en el Café", "cafe"))
	assert.True(t, slug.Contains("Introducción a Go", "INTRODUCCION"))
	assert.True(t, slug.Contains("anything", ""))
	assert.False(t, slug.Contains("Hello", "world"))
}
