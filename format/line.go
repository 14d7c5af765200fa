package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// LineEncoder writes one tab-separated line per class, member and attribute.
type LineEncoder struct {
	w     io.Writer
	class *Class
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(class *Class) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	c := e.class

	fmt.Fprintf(&sb, "%s\t%s\t%s\t%d.%d\n", c.Kind, c.Name, joinOrDash(c.Modifiers), c.Version.Major, c.Version.Minor)
	if c.SuperClass != "" {
		fmt.Fprintf(&sb, "extends\t%s\n", c.SuperClass)
	}
	for _, iface := range c.Interfaces {
		fmt.Fprintf(&sb, "implements\t%s\n", iface)
	}

	for _, f := range c.Fields {
		fmt.Fprintf(&sb, "field\t%s\t%s\t%s\t%s\n", f.Name, f.Descriptor, orDash(f.Type), joinOrDash(f.Modifiers))
	}
	for _, m := range c.Methods {
		fmt.Fprintf(&sb, "method\t%s\t%s\t%s\t%s\n", m.Name, m.Descriptor, orDash(m.Type), joinOrDash(m.Modifiers))
	}
	for _, a := range c.Attributes {
		fmt.Fprintf(&sb, "attribute\t%s\t%d\n", a.Name, a.Length)
	}

	return []byte(sb.String()), nil
}

// LinePoolEncoder writes one line per constant pool slot: index, tag,
// referenced indices and value.
type LinePoolEncoder struct {
	w     io.Writer
	class *Class
}

func NewLinePoolEncoder(w io.Writer) *LinePoolEncoder {
	return &LinePoolEncoder{w: w}
}

func (e *LinePoolEncoder) Encode(class *Class) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LinePoolEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, c := range e.class.Constants {
		refs := make([]string, len(c.Refs))
		for i, r := range c.Refs {
			refs[i] = "#" + strconv.Itoa(int(r))
		}
		fmt.Fprintf(&sb, "%d\t%s\t%s\t%s\n", c.Index, c.Tag, joinOrDash(refs), orDash(c.Value))
	}
	return []byte(sb.String()), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
