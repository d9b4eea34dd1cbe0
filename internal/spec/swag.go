package spec

import (
	"context"
	"fmt"

	"github.com/swaggo/swag"
)

// SwagSource reads a document registered with swag, usually by a package
// generated with `swag init`.
type SwagSource struct {
	Instance string
}

func (s SwagSource) Document(ctx context.Context) ([]byte, error) {
	name := s.Instance
	if name == "" {
		name = swag.Name
	}
	doc, err := swag.ReadDoc(name)
	if err != nil {
		return nil, fmt.Errorf("read swag doc %q: %w", name, err)
	}
	return Normalize([]byte(doc))
}
