package seatmap

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Namespace returns the "{uri}" prefix of el's qualified name, or an empty
// string when el is not namespaced.
func Namespace(el *etree.Element) string {
	if el == nil {
		return ""
	}
	if uri := el.NamespaceURI(); uri != "" {
		return "{" + uri + "}"
	}
	return ""
}

// QualifiedTag returns el's tag in "{uri}local" notation.
func QualifiedTag(el *etree.Element) string {
	return Namespace(el) + el.Tag
}

// scope is the per-document lookup context. Every tag lookup made while
// extracting one document goes through the scope established for it, so
// nothing is shared between concurrent parse calls.
type scope struct {
	ns string
}

func newScope(el *etree.Element) scope {
	return scope{ns: Namespace(el)}
}

// is reports whether el carries the namespace-qualified local name.
func (s scope) is(el *etree.Element, local string) bool {
	return el.Tag == local && Namespace(el) == s.ns
}

// child returns the first direct child named local, or nil.
func (s scope) child(el *etree.Element, local string) *etree.Element {
	for _, c := range el.ChildElements() {
		if s.is(c, local) {
			return c
		}
	}
	return nil
}

// children returns all direct children named local in document order.
func (s scope) children(el *etree.Element, local string) []*etree.Element {
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if s.is(c, local) {
			out = append(out, c)
		}
	}
	return out
}

// iter returns el and all its descendants named local, depth-first in
// document order.
func (s scope) iter(el *etree.Element, local string) []*etree.Element {
	var out []*etree.Element
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		if s.is(e, local) {
			out = append(out, e)
		}
		for _, c := range e.ChildElements() {
			walk(c)
		}
	}
	walk(el)
	return out
}

// requireChild is child that fails with a structural violation when absent.
func (s scope) requireChild(el *etree.Element, local string) (*etree.Element, error) {
	if c := s.child(el, local); c != nil {
		return c, nil
	}
	return nil, NewError(KindStructuralViolation, elementPath(el), "missing element %s", local)
}

// requireAttr returns the value of an unqualified attribute or fails with a
// structural violation when absent.
func requireAttr(el *etree.Element, key string) (string, error) {
	if a := el.SelectAttr(key); a != nil {
		return a.Value, nil
	}
	return "", NewError(KindStructuralViolation, elementPath(el), "missing attribute %s", key)
}

// requireIntAttr is requireAttr for integer attributes.
func requireIntAttr(el *etree.Element, key string) (int64, error) {
	v, err := requireAttr(el, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, &Error{Kind: KindStructuralViolation, Path: elementPath(el),
			Msg: "attribute " + key + " is not an integer", Err: err}
	}
	return n, nil
}

// requireText returns the trimmed text of the child named local.
func (s scope) requireText(el *etree.Element, local string) (string, error) {
	c, err := s.requireChild(el, local)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(c.Text()), nil
}

// elementPath renders el's location as local names with 1-based sibling
// positions, e.g. "Envelope/Body/SeatMapResponse[2]".
func elementPath(el *etree.Element) string {
	var parts []string
	for e := el; e != nil; e = e.Parent() {
		if e.Tag == "" {
			break // document node
		}
		part := e.Tag
		if p := e.Parent(); p != nil {
			pos, total := 0, 0
			for _, sib := range p.ChildElements() {
				if sib.Tag == e.Tag {
					total++
					if sib == e {
						pos = total
					}
				}
			}
			if total > 1 {
				part += "[" + strconv.Itoa(pos) + "]"
			}
		}
		parts = append(parts, part)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}
