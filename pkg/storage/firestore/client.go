// Package firestore stores variant trees in Firestore documents,
// running every read and write through the converter so special values
// and nested arrays survive the trip.
package firestore

import (
	"errors"

	"cloud.google.com/go/firestore"

	"github.com/ripixel/firevariant/pkg/convert"
)

var (
	// ErrNotFound is returned by Get when the document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrNotDocument is returned when a top-level value is not a map.
	// Firestore documents are maps of fields; bare scalars and arrays
	// can only live inside one.
	ErrNotDocument = errors.New("top-level value must be a map")
)

type Client struct {
	fs   *firestore.Client
	conv *convert.Converter
}

func NewClient(client *firestore.Client) *Client {
	return &Client{fs: client, conv: convert.New(client)}
}

func (c *Client) Close() error {
	return c.fs.Close()
}

// Converter exposes the underlying converter, wired with this client as
// its document resolver.
func (c *Client) Converter() *convert.Converter {
	return c.conv
}

func (c *Client) Collection(path string) *Collection {
	return &Collection{ref: c.fs.Collection(path), conv: c.conv}
}

func (c *Client) Doc(path string) *DocumentRef {
	return &DocumentRef{Ref: c.fs.Doc(path), conv: c.conv}
}
