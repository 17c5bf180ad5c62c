// ABOUTME: Page accumulates render instructions for a single rerun
// ABOUTME: Widget methods read the current value from State and record the widget

package page

import (
	"slices"
	"strconv"

	"github.com/2389/widgetdash/internal/frame"
)

// Kind identifies the type of a render instruction.
type Kind string

const (
	KindTitle        Kind = "title"
	KindText         Kind = "text"
	KindTable        Kind = "table"
	KindLineChart    Kind = "line_chart"
	KindTextInput    Kind = "text_input"
	KindSlider       Kind = "slider"
	KindSelectBox    Kind = "selectbox"
	KindFileUploader Kind = "file_uploader"
	KindError        Kind = "error"
)

// Element is one render instruction.
type Element struct {
	Kind  Kind
	Key   string // widget key, empty for output elements
	Label string // widget prompt
	Text  string // title, text and error content

	Frame *frame.Frame // table and line chart data

	Value   string   // current widget value
	Min     int      // slider bounds
	Max     int      //
	Options []string // selectbox options
	Types   []string // accepted file extensions
	Upload  *Upload  // current upload, if any
}

// Page records the elements of one rerun.
type Page struct {
	state    *State
	elements []Element
}

// New creates a page reading widget values from state. A nil state behaves
// like an empty one.
func New(state *State) *Page {
	if state == nil {
		state = NewState()
	}
	return &Page{state: state}
}

// Elements returns the recorded elements in render order.
func (p *Page) Elements() []Element {
	return slices.Clone(p.elements)
}

// Title renders a page title.
func (p *Page) Title(text string) {
	p.add(Element{Kind: KindTitle, Text: text})
}

// Write renders a line of markdown text.
func (p *Page) Write(text string) {
	p.add(Element{Kind: KindText, Text: text})
}

// Table renders a frame as a table.
func (p *Page) Table(f *frame.Frame) {
	p.add(Element{Kind: KindTable, Frame: f})
}

// LineChart renders one line per frame column with the row index as x.
func (p *Page) LineChart(f *frame.Frame) {
	p.add(Element{Kind: KindLineChart, Frame: f})
}

// Error renders an error block.
func (p *Page) Error(text string) {
	p.add(Element{Kind: KindError, Text: text})
}

// TextInput renders a text input and returns its value, "" by default.
func (p *Page) TextInput(label string) string {
	key := Key(label)
	value, _ := p.state.Value(key)

	p.add(Element{Kind: KindTextInput, Key: key, Label: label, Value: value})
	return value
}

// Slider renders an integer slider over [min, max] and returns its value.
// Missing or unparsable values yield def; out of range values are clamped.
func (p *Page) Slider(label string, min, max, def int) int {
	key := Key(label)

	value := def
	if raw, ok := p.state.Value(key); ok {
		if n, err := strconv.Atoi(raw); err == nil {
			value = n
		}
	}
	value = clamp(value, min, max)

	p.add(Element{
		Kind:  KindSlider,
		Key:   key,
		Label: label,
		Value: strconv.Itoa(value),
		Min:   min,
		Max:   max,
	})
	return value
}

// SelectBox renders a single-choice select over options and returns the
// chosen option. The first option is the default and the fallback for
// values not in options.
func (p *Page) SelectBox(label string, options []string) string {
	key := Key(label)

	var value string
	if len(options) > 0 {
		value = options[0]
	}
	if raw, ok := p.state.Value(key); ok && slices.Contains(options, raw) {
		value = raw
	}

	p.add(Element{
		Kind:    KindSelectBox,
		Key:     key,
		Label:   label,
		Value:   value,
		Options: slices.Clone(options),
	})
	return value
}

// FileUploader renders a file uploader accepting the given extensions and
// returns the current upload, or nil when no file has been supplied.
func (p *Page) FileUploader(label string, types []string) *Upload {
	key := Key(label)
	upload := p.state.Upload(key)

	p.add(Element{
		Kind:   KindFileUploader,
		Key:    key,
		Label:  label,
		Types:  slices.Clone(types),
		Upload: upload,
	})
	return upload
}

func (p *Page) add(e Element) {
	p.elements = append(p.elements, e)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
