package memdoc

import (
	"encoding/xml"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/signadot/ydoc/engine"
	"github.com/signadot/ydoc/ir"
)

// XmlElement is an xml element of a Doc.
type XmlElement struct {
	*branch
}

var _ engine.XmlElement = (*XmlElement)(nil)

// Tag returns the element's tag.  The tag of a root element is its root
// name.
func (e *XmlElement) Tag() string {
	if e.parent == nil {
		return e.name
	}
	return e.tag
}

func (e *XmlElement) Len(tx engine.Txn) int {
	return len(e.items)
}

func (e *XmlElement) InsertElement(t engine.Txn, index int, tag string) (engine.XmlElement, error) {
	tx, err := e.begin(t)
	if err != nil {
		return nil, err
	}
	if tag == "" {
		return nil, fmt.Errorf("xml element: empty tag")
	}
	child, err := e.insertChild(tx, index, engine.XmlElementKind)
	if err != nil {
		return nil, err
	}
	child.tag = tag
	tx.record(Op{Kind: OpInsertContainer, Target: e.id, Index: index, Len: 1, Key: tag, Container: engine.XmlElementKind})
	return child.ref().(*XmlElement), nil
}

func (e *XmlElement) InsertText(t engine.Txn, index int) (engine.XmlText, error) {
	tx, err := e.begin(t)
	if err != nil {
		return nil, err
	}
	child, err := e.insertChild(tx, index, engine.XmlTextKind)
	if err != nil {
		return nil, err
	}
	tx.record(Op{Kind: OpInsertContainer, Target: e.id, Index: index, Len: 1, Container: engine.XmlTextKind})
	return child.ref().(*XmlText), nil
}

func (e *XmlElement) Delete(t engine.Txn, index, length int) error {
	tx, err := e.begin(t)
	if err != nil {
		return err
	}
	return e.deleteItems(tx, index, length)
}

func (e *XmlElement) Get(tx engine.Txn, index int) (engine.Value, error) {
	return e.get(index)
}

func (e *XmlElement) Children(tx engine.Txn) []engine.Value {
	return e.values()
}

func (e *XmlElement) SetAttribute(t engine.Txn, name, value string) error {
	return e.setAttribute(t, name, value)
}

func (e *XmlElement) Attribute(tx engine.Txn, name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

func (e *XmlElement) RemoveAttribute(t engine.Txn, name string) error {
	return e.removeAttribute(t, name)
}

func (e *XmlElement) Attributes(tx engine.Txn) map[string]string {
	return maps.Clone(e.attrs)
}

func (e *XmlElement) String(tx engine.Txn) string {
	return e.xmlString()
}

func (e *XmlElement) ToJSON(tx engine.Txn) *ir.Node {
	return ir.FromString(e.xmlString())
}

// XmlText is rich text inside an XmlElement.
type XmlText struct {
	Text
}

var _ engine.XmlText = (*XmlText)(nil)

func (x *XmlText) SetAttribute(t engine.Txn, name, value string) error {
	return x.setAttribute(t, name, value)
}

func (x *XmlText) Attribute(tx engine.Txn, name string) (string, bool) {
	v, ok := x.attrs[name]
	return v, ok
}

func (x *XmlText) RemoveAttribute(t engine.Txn, name string) error {
	return x.removeAttribute(t, name)
}

func (x *XmlText) Attributes(tx engine.Txn) map[string]string {
	return maps.Clone(x.attrs)
}

func (b *branch) setAttribute(t engine.Txn, name, value string) error {
	tx, err := b.begin(t)
	if err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("%s: empty attribute name", b.kind)
	}
	b.attrs[name] = value
	tx.record(Op{Kind: OpSetAttribute, Target: b.id, Key: name, Values: []*ir.Node{ir.FromString(value)}})
	return nil
}

func (b *branch) removeAttribute(t engine.Txn, name string) error {
	tx, err := b.begin(t)
	if err != nil {
		return err
	}
	if _, ok := b.attrs[name]; !ok {
		return nil
	}
	delete(b.attrs, name)
	tx.record(Op{Kind: OpRemoveAttribute, Target: b.id, Key: name})
	return nil
}

func (b *branch) xmlString() string {
	var sb strings.Builder
	b.writeXML(&sb)
	return sb.String()
}

func (b *branch) writeXML(sb *strings.Builder) {
	if b.kind == engine.XmlTextKind {
		xml.EscapeText(sb, []byte(b.text()))
		return
	}
	tag := b.tag
	if b.parent == nil {
		tag = b.name
	}
	sb.WriteByte('<')
	sb.WriteString(tag)
	for _, k := range slices.Sorted(maps.Keys(b.attrs)) {
		sb.WriteByte(' ')
		sb.WriteString(k)
		sb.WriteString(`="`)
		xml.EscapeText(sb, []byte(b.attrs[k]))
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
	for _, it := range b.items {
		it.br.writeXML(sb)
	}
	sb.WriteString("</")
	sb.WriteString(tag)
	sb.WriteByte('>')
}
