package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ripixel/firevariant/pkg/convert"
	"github.com/ripixel/firevariant/pkg/fieldvalue"
	"github.com/ripixel/firevariant/pkg/variant"
)

type Collection struct {
	ref  *firestore.CollectionRef
	conv *convert.Converter
}

func (c *Collection) Doc(id string) *DocumentRef {
	return &DocumentRef{Ref: c.ref.Doc(id), conv: c.conv}
}

// NewDoc returns a handle with a fresh random document ID.
func (c *Collection) NewDoc() *DocumentRef {
	return &DocumentRef{Ref: c.ref.NewDoc(), conv: c.conv}
}

// Document is one listed document: its ID and decoded contents.
type Document struct {
	ID    string
	Value variant.Variant
}

// Documents reads and decodes every document in the collection.
func (c *Collection) Documents(ctx context.Context) ([]Document, error) {
	var out []Document

	iter := c.ref.Documents(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("iterate %s: %w", c.ref.Path, err)
		}

		v, err := decodeSnapshot(c.conv, snap)
		if err != nil {
			return nil, err
		}
		out = append(out, Document{ID: snap.Ref.ID, Value: v})
	}
}

type DocumentRef struct {
	Ref  *firestore.DocumentRef
	conv *convert.Converter
}

func (d *DocumentRef) ID() string {
	return d.Ref.ID
}

// Set converts v and writes it as the full document contents. The
// top-level variant must be a map with string keys.
func (d *DocumentRef) Set(ctx context.Context, v variant.Variant) error {
	fv, err := d.conv.ToFieldValue(v)
	if err != nil {
		return fmt.Errorf("convert %s: %w", d.Ref.Path, err)
	}

	data, ok := fv.Native().(map[string]interface{})
	if !ok {
		return fmt.Errorf("%s: %w", d.Ref.Path, ErrNotDocument)
	}

	_, err = d.Ref.Set(ctx, data)
	return err
}

// Get reads the document and decodes it into a map variant.
func (d *DocumentRef) Get(ctx context.Context) (variant.Variant, error) {
	snap, err := d.Ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return variant.Variant{}, fmt.Errorf("%s: %w", d.Ref.Path, ErrNotFound)
	}
	if err != nil {
		return variant.Variant{}, fmt.Errorf("get %s: %w", d.Ref.Path, err)
	}
	return decodeSnapshot(d.conv, snap)
}

// Delete removes the document.
func (d *DocumentRef) Delete(ctx context.Context) error {
	_, err := d.Ref.Delete(ctx)
	return err
}

func decodeSnapshot(conv *convert.Converter, snap *firestore.DocumentSnapshot) (variant.Variant, error) {
	fv, err := fieldvalue.FromNative(snap.Data())
	if err != nil {
		return variant.Variant{}, fmt.Errorf("read %s: %w", snap.Ref.Path, err)
	}

	v, err := conv.ToVariant(fv)
	if err != nil {
		return variant.Variant{}, fmt.Errorf("decode %s: %w", snap.Ref.Path, err)
	}
	return v, nil
}
