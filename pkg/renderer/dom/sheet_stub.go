//go:build !js || !wasm
// +build !js !wasm

// Package dom injects atomic rules into the browser document.
// Outside WASM builds rules go to an in-memory sheet instead.
package dom

import "github.com/recera/vango-atomic/pkg/styling"

// NewRenderTarget creates a render target backed by a MemorySheet (stub)
func NewRenderTarget(id string) *styling.RenderTarget {
	return styling.NewRenderTarget(styling.NewMemorySheet())
}
