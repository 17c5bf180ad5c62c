// ABOUTME: Widgets demo script: text input, slider, select box and CSV upload
// ABOUTME: Writes the People table to the CSV sink on every rerun

package demo

import (
	"bytes"
	"context"
	"fmt"

	"github.com/2389/widgetdash/internal/frame"
	"github.com/2389/widgetdash/internal/page"
)

// Widget prompts. Widget keys are derived from these.
const (
	NameLabel     = "Enter your name"
	AgeLabel      = "Select your age:"
	LanguageLabel = "Select your favourite programming language"
	UploadLabel   = "Choose a CSV file"
)

// Slider bounds for the age widget.
const (
	AgeMin     = 0
	AgeMax     = 100
	AgeDefault = 25
)

// Languages are the select box options, in display order.
var Languages = []string{"python", "java", "js", "c"}

// CSVSink receives the People table on every rerun.
type CSVSink interface {
	WriteFrame(ctx context.Context, f *frame.Frame) error
}

// FileSink overwrites a CSV file on every write. Concurrent writers are not
// serialised.
type FileSink struct {
	Path string
}

// WriteFrame writes f to the sink's path.
func (s FileSink) WriteFrame(_ context.Context, f *frame.Frame) error {
	return f.WriteCSVFile(s.Path)
}

// PeopleTable returns the fixed People table.
func PeopleTable() (*frame.Frame, error) {
	return frame.New([]string{"Name", "Age", "City"}, [][]string{
		{"John", "28", "New York"},
		{"Jane", "24", "Los Angeles"},
		{"Jake", "35", "Chicago"},
		{"Jill", "40", "Houston"},
	})
}

// Widgets renders the widgets page.
func Widgets(ctx context.Context, p *page.Page, sink CSVSink) error {
	p.Title("Streamlit input")

	name := p.TextInput(NameLabel)
	age := p.Slider(AgeLabel, AgeMin, AgeMax, AgeDefault)
	choice := p.SelectBox(LanguageLabel, Languages)

	if name != "" {
		p.Write(fmt.Sprintf("Hello, %s", name))
	}
	p.Write(fmt.Sprintf("Your age is %d", age))
	p.Write(fmt.Sprintf("Your favourite programming language is %s", choice))

	people, err := PeopleTable()
	if err != nil {
		return fmt.Errorf("building people table: %w", err)
	}
	if err := sink.WriteFrame(ctx, people); err != nil {
		return fmt.Errorf("saving people table: %w", err)
	}
	p.Table(people)

	upload := p.FileUploader(UploadLabel, []string{"csv"})
	if upload == nil {
		return nil
	}

	uploaded, err := frame.ReadCSV(bytes.NewReader(upload.Data))
	if err != nil {
		return fmt.Errorf("reading %s: %w", upload.Name, err)
	}
	p.Table(uploaded)

	return nil
}
