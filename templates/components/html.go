package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// HTML writes markup and keeps the first write error, so a component can emit
// many fragments and check once at the end.
type HTML struct {
	ctx context.Context
	w   io.Writer
	err error
}

// NewHTML wraps the writer a templ component renders into
func NewHTML(ctx context.Context, w io.Writer) *HTML {
	return &HTML{ctx: ctx, w: w}
}

// Raw writes trusted markup as is
func (h *HTML) Raw(s string) *HTML {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
	return h
}

// Text writes escaped text
func (h *HTML) Text(s string) *HTML {
	return h.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with the value escaped
func (h *HTML) Attr(name, value string) *HTML {
	return h.Raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// BoolAttr writes the bare attribute name when on is true
func (h *HTML) BoolAttr(name string, on bool) *HTML {
	if on {
		h.Raw(" " + name)
	}
	return h
}

// Component renders a nested component
func (h *HTML) Component(c templ.Component) *HTML {
	if h.err == nil && c != nil {
		h.err = c.Render(h.ctx, h.w)
	}
	return h
}

// Err returns the first write error
func (h *HTML) Err() error {
	return h.err
}
