package engine

import "fmt"

// Kind identifies a shared container type.
type Kind int

const (
	TextKind Kind = iota
	ArrayKind
	MapKind
	XmlElementKind
	XmlTextKind
)

func (k Kind) String() string {
	switch k {
	case TextKind:
		return "text"
	case ArrayKind:
		return "array"
	case MapKind:
		return "map"
	case XmlElementKind:
		return "xml element"
	case XmlTextKind:
		return "xml text"
	}
	return fmt.Sprintf("<kind %d>", int(k))
}

// ParseKind parses the names produced by Kind.String, also accepting
// "xmlelement" and "xmltext".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "text":
		return TextKind, nil
	case "array":
		return ArrayKind, nil
	case "map":
		return MapKind, nil
	case "xml element", "xmlelement":
		return XmlElementKind, nil
	case "xml text", "xmltext":
		return XmlTextKind, nil
	}
	return 0, fmt.Errorf("unknown container kind %q", s)
}

// ID identifies a container within one document.
type ID struct {
	Client uint64
	Clock  uint64
}

func (id ID) String() string {
	return fmt.Sprintf("%d:%d", id.Client, id.Clock)
}
