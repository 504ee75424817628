package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// attrs builds attributes from key/value pairs, later pairs winning.
func attrs(kv ...any) templ.Attributes {
	a := make(templ.Attributes, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		a[kv[i].(string)] = kv[i+1]
	}
	return a
}

// merge combines attribute sets, later sets winning.
func merge(sets ...templ.Attributes) templ.Attributes {
	out := templ.Attributes{}
	for _, s := range sets {
		for k, v := range s {
			out[k] = v
		}
	}
	return out
}

func cls(class string) templ.Attributes { return templ.Attributes{"class": class} }

// el renders <tag attrs>children</tag>.
func el(tag string, a templ.Attributes, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<"+tag); err != nil {
			return err
		}
		if err := templ.RenderAttributes(ctx, w, a); err != nil {
			return err
		}
		if _, err := io.WriteString(w, ">"); err != nil {
			return err
		}
		for _, c := range children {
			if c == nil {
				continue
			}
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</"+tag+">")
		return err
	})
}

// void renders an element without children or end tag.
func void(tag string, a templ.Attributes) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<"+tag); err != nil {
			return err
		}
		if err := templ.RenderAttributes(ctx, w, a); err != nil {
			return err
		}
		_, err := io.WriteString(w, ">")
		return err
	})
}

func text(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}

func textf(format string, args ...any) templ.Component {
	return text(fmt.Sprintf(format, args...))
}

func when(cond bool, c templ.Component) templ.Component {
	if cond {
		return c
	}
	return nil
}

// fragment renders children in order, skipping nil ones.
func fragment(children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, c := range children {
			if c == nil {
				continue
			}
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

func each[T any](items []T, f func(int, T) templ.Component) templ.Component {
	out := make([]templ.Component, len(items))
	for i, it := range items {
		out[i] = f(i, it)
	}
	return fragment(out...)
}
