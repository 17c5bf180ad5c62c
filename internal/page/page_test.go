// ABOUTME: Tests for page element recording and widget value resolution
// ABOUTME: Covers defaults, clamping, select fallback and uploads

package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Enter your name", "enter_your_name"},
		{"Select your age:", "select_your_age"},
		{"  Choose a CSV file  ", "choose_a_csv_file"},
		{"already_key", "already_key"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.label))
		})
	}
}

func TestPage_OutputOrder(t *testing.T) {
	p := New(nil)
	p.Title("title")
	p.Write("text")
	p.Error("boom")

	elems := p.Elements()
	require.Len(t, elems, 3)
	assert.Equal(t, KindTitle, elems[0].Kind)
	assert.Equal(t, "title", elems[0].Text)
	assert.Equal(t, KindText, elems[1].Kind)
	assert.Equal(t, KindError, elems[2].Kind)
}

func TestTextInput(t *testing.T) {
	p := New(nil)
	assert.Equal(t, "", p.TextInput("Enter your name"))

	state := NewState()
	state.Values["enter_your_name"] = "Ada"
	p = New(state)
	assert.Equal(t, "Ada", p.TextInput("Enter your name"))

	elems := p.Elements()
	require.Len(t, elems, 1)
	assert.Equal(t, KindTextInput, elems[0].Kind)
	assert.Equal(t, "enter_your_name", elems[0].Key)
	assert.Equal(t, "Ada", elems[0].Value)
}

func TestSlider(t *testing.T) {
	tests := []struct {
		name  string
		value *string
		want  int
	}{
		{"default", nil, 25},
		{"set", strPtr("42"), 42},
		{"lower bound", strPtr("0"), 0},
		{"upper bound", strPtr("100"), 100},
		{"below range", strPtr("-5"), 0},
		{"above range", strPtr("250"), 100},
		{"garbage", strPtr("abc"), 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewState()
			if tt.value != nil {
				state.Values["age"] = *tt.value
			}
			p := New(state)

			assert.Equal(t, tt.want, p.Slider("Age", 0, 100, 25))

			elem := p.Elements()[0]
			assert.Equal(t, KindSlider, elem.Kind)
			assert.Equal(t, 0, elem.Min)
			assert.Equal(t, 100, elem.Max)
		})
	}
}

func TestSelectBox(t *testing.T) {
	options := []string{"python", "java", "js", "c"}

	p := New(nil)
	assert.Equal(t, "python", p.SelectBox("Lang", options))

	state := NewState()
	state.Values["lang"] = "js"
	assert.Equal(t, "js", New(state).SelectBox("Lang", options))

	state.Values["lang"] = "cobol"
	assert.Equal(t, "python", New(state).SelectBox("Lang", options))
}

func TestSelectBox_OptionsCopied(t *testing.T) {
	options := []string{"a", "b"}
	p := New(nil)
	p.SelectBox("x", options)
	options[0] = "z"

	assert.Equal(t, []string{"a", "b"}, p.Elements()[0].Options)
}

func TestFileUploader(t *testing.T) {
	p := New(nil)
	assert.Nil(t, p.FileUploader("Choose a CSV file", []string{"csv"}))

	state := NewState()
	state.Uploads["choose_a_csv_file"] = &Upload{Name: "x.csv", Data: []byte("a\n1\n")}
	p = New(state)

	got := p.FileUploader("Choose a CSV file", []string{"csv"})
	require.NotNil(t, got)
	assert.Equal(t, "x.csv", got.Name)

	elem := p.Elements()[0]
	assert.Equal(t, KindFileUploader, elem.Kind)
	assert.Equal(t, []string{"csv"}, elem.Types)
	assert.Same(t, got, elem.Upload)
}

func strPtr(s string) *string {
	return &s
}
