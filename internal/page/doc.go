// Package page builds the render instructions for one rerun of a demo script.
//
// A script receives a *Page wrapping the session's widget State. Output calls
// (Title, Write, Table, LineChart) append an Element; widget calls append an
// Element and return the widget's current value from State, falling back to
// the widget default. The script never holds widget values between reruns:
// the host persists State and passes it back in on the next event.
//
//	p := page.New(state)
//	p.Title("Hello")
//	name := p.TextInput("Enter your name")
//	if name != "" {
//	    p.Write("Hello, " + name)
//	}
//	elems := p.Elements()
//
// Widget keys are derived from the label with Key, so two widgets with the
// same label share a value.
package page
