package libdiff

import (
	"fmt"

	"github.com/signadot/ydoc/ir"

	jsonpatch "github.com/evanphx/json-patch"
)

// MergePatch returns the RFC 7386 JSON merge patch turning from into to.
// Both must be objects.
func MergePatch(from, to *ir.Node) ([]byte, error) {
	if from.Type != ir.ObjectType || to.Type != ir.ObjectType {
		return nil, fmt.Errorf("merge patch needs objects, got %s and %s", from.Type, to.Type)
	}
	a, err := from.MarshalJSON()
	if err != nil {
		return nil, err
	}
	b, err := to.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return jsonpatch.CreateMergePatch(a, b)
}

// ApplyMergePatch applies a JSON merge patch to doc.
func ApplyMergePatch(doc *ir.Node, patch []byte) (*ir.Node, error) {
	d, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(d, patch)
	if err != nil {
		return nil, err
	}
	return ir.FromJSON(out)
}
