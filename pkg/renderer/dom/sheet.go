//go:build js && wasm
// +build js,wasm

package dom

import (
	"fmt"
	"syscall/js"

	"github.com/recera/vango-atomic/pkg/styling"
)

// StyleSheet injects rules into a <style> element of the document
type StyleSheet struct {
	element js.Value
}

// NewStyleSheet returns the sheet of the <style> element with the given id,
// creating the element in <head> when the page does not have it yet
func NewStyleSheet(document js.Value, id string) *StyleSheet {
	elem := document.Call("getElementById", id)
	if elem.IsNull() || elem.IsUndefined() {
		elem = document.Call("createElement", "style")
		elem.Set("id", id)
		document.Get("head").Call("appendChild", elem)
	}
	return &StyleSheet{element: elem}
}

// InsertRule calls CSSStyleSheet.insertRule.
// A DOMException thrown by the browser is returned as a
// *styling.StylesheetError wrapping the js.Error.
func (s *StyleSheet) InsertRule(rule string, index int) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("%v", r)
			}
			err = &styling.StylesheetError{Rule: rule, Index: index, Err: cause}
		}
	}()

	return s.element.Get("sheet").Call("insertRule", rule, index).Int(), nil
}

// Len returns the number of rules currently in the sheet
func (s *StyleSheet) Len() int {
	return s.element.Get("sheet").Get("cssRules").Get("length").Int()
}

// NewRenderTarget creates a render target on the <style> element with the
// given id. Rules already in the sheet, e.g. from server rendering, are
// kept and new rules are appended after them.
func NewRenderTarget(id string) *styling.RenderTarget {
	sheet := NewStyleSheet(js.Global().Get("document"), id)
	target := styling.NewRenderTarget(sheet)
	target.Index = sheet.Len()
	return target
}
