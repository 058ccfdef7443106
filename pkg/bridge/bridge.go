// Package bridge copies Realtime Database subtrees into Firestore
// documents. The heavy lifting lives in the converter; this package
// only owns the two client calls on either side of it.
package bridge

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/db"

	"github.com/ripixel/firevariant/pkg/convert"
	"github.com/ripixel/firevariant/pkg/variant"
)

// Mover moves data from a Realtime Database into Firestore.
type Mover struct {
	rtdb *db.Client
	fs   *firestore.Client
	conv *convert.Converter
}

func NewMover(rtdb *db.Client, fs *firestore.Client) *Mover {
	return &Mover{rtdb: rtdb, fs: fs, conv: convert.New(fs)}
}

// CopyNode reads the subtree at refPath and writes it as the full
// contents of the document at docPath. The subtree must be an object;
// scalar nodes have no document form.
//
// Note: the Realtime Database wire format is JSON, so integers read
// back as doubles unless the node was written through this module's
// variant JSON loader conventions.
func (m *Mover) CopyNode(ctx context.Context, refPath, docPath string) error {
	var raw interface{}
	if err := m.rtdb.NewRef(refPath).Get(ctx, &raw); err != nil {
		return fmt.Errorf("read rtdb %s: %w", refPath, err)
	}

	fv, err := m.conv.ToFieldValue(variant.FromJSONValue(raw))
	if err != nil {
		return fmt.Errorf("convert %s: %w", refPath, err)
	}

	data, ok := fv.Native().(map[string]interface{})
	if !ok {
		return fmt.Errorf("node %s is not an object", refPath)
	}

	if _, err := m.fs.Doc(docPath).Set(ctx, data); err != nil {
		return fmt.Errorf("write %s: %w", docPath, err)
	}
	return nil
}
