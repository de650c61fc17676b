// Package xmltree reads and writes the compact documents exchanged with HUnit.
//
// A list on the wire may arrive as a single element, as repeated sibling elements or not at
// all, and a scalar may be an attribute or the text of a leaf element. List and Value hide
// both differences so adapters never look at the wire shape directly.
package xmltree

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

const Declaration = `version="1.0" encoding="UTF-8" standalone="yes"`

// Value is a scalar taken from a parsed document.
type Value struct {
	raw     string
	present bool
}

func NewValue(raw string) Value {
	return Value{raw: raw, present: true}
}

// Attr is the value of the attribute name on el.
func Attr(el *etree.Element, name string) Value {
	if el == nil {
		return Value{}
	}

	attr := el.SelectAttr(name)
	if attr == nil {
		return Value{}
	}

	return NewValue(attr.Value)
}

// Child is the text of the first child element called name.
func Child(el *etree.Element, name string) Value {
	if el == nil {
		return Value{}
	}

	child := el.SelectElement(name)
	if child == nil {
		return Value{}
	}

	return NewValue(child.Text())
}

func (v Value) Present() bool {
	return v.present
}

func (v Value) String() string {
	return v.raw
}

// Number accepts a comma as decimal separator. Absent or unparsable values are nil,
// including values that only start with a number such as "12abc" or "1.234,56".
func (v Value) Number() *float64 {
	if !v.present {
		return nil
	}

	raw := strings.Replace(strings.TrimSpace(v.raw), ",", ".", 1)

	number, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}

	return &number
}

func (v Value) Bool() bool {
	return strings.ToLower(strings.TrimSpace(v.raw)) == "true"
}

// List returns every child of parent called name, in document order.
func List(parent *etree.Element, name string) []*etree.Element {
	if parent == nil {
		return []*etree.Element{}
	}

	return parent.SelectElements(name)
}

// Nested returns the items of a wrapped list such as <rooms><room/><room/></rooms>.
func Nested(parent *etree.Element, wrapper string, name string) []*etree.Element {
	if parent == nil {
		return []*etree.Element{}
	}

	return List(parent.SelectElement(wrapper), name)
}

// Pick copies el keeping only the attributes and child elements named in keys.
// Without keys everything is kept. Character data is copied, comments and
// processing instructions are not.
func Pick(el *etree.Element, keys ...string) *etree.Element {
	if el == nil {
		return nil
	}

	allowed := func(name string) bool {
		if len(keys) == 0 {
			return true
		}
		for _, key := range keys {
			if key == name {
				return true
			}
		}
		return false
	}

	copied := etree.NewElement(el.Tag)
	copied.Space = el.Space

	for _, attr := range el.Attr {
		if allowed(attr.Key) {
			copied.CreateAttr(attr.FullKey(), attr.Value)
		}
	}

	for _, token := range el.Child {
		switch child := token.(type) {
		case *etree.Element:
			if allowed(child.Tag) {
				copied.AddChild(Pick(child))
			}
		case *etree.CharData:
			if child.IsCData() {
				copied.AddChild(etree.NewCData(child.Data))
			} else {
				copied.AddChild(etree.NewText(child.Data))
			}
		}
	}

	return copied
}

// Text creates <name>value</name> under parent.
func Text(parent *etree.Element, name string, value string) *etree.Element {
	el := parent.CreateElement(name)
	el.SetText(value)
	return el
}

// OptionalText creates <name>value</name> only for non empty values.
func OptionalText(parent *etree.Element, name string, value string) {
	if value != "" {
		Text(parent, name, value)
	}
}

// Bool renders booleans the way the service expects them.
func Bool(value bool) string {
	return strconv.FormatBool(value)
}

// Number renders numbers without exponent or trailing zeros.
func Number(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
