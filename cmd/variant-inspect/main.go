// variant-inspect reads a JSON file as a variant tree, converts it to
// Firestore field values and prints what each node became. Useful for
// checking how a Realtime Database export will land in Firestore,
// envelope encodings included.
//
// Usage: variant-inspect [-project id] file.json
//
// Without a project (flag or GOOGLE_CLOUD_PROJECT), document_reference
// envelopes cannot be resolved and report an error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"

	"cloud.google.com/go/firestore"

	"github.com/ripixel/firevariant/pkg/convert"
	"github.com/ripixel/firevariant/pkg/fieldvalue"
	"github.com/ripixel/firevariant/pkg/variant"
)

func main() {
	project := flag.String("project", os.Getenv("GOOGLE_CLOUD_PROJECT"), "GCP project for resolving document references")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: variant-inspect [-project id] file.json")
		os.Exit(2)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		logger.Error("read input", "error", err)
		os.Exit(1)
	}

	v, err := variant.FromJSON(data)
	if err != nil {
		logger.Error("parse input", "error", err)
		os.Exit(1)
	}

	var resolver convert.Resolver
	if *project != "" {
		client, err := firestore.NewClient(context.Background(), *project)
		if err != nil {
			logger.Error("firestore client", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		resolver = client
	}

	conv := convert.New(resolver)
	fv, err := conv.ToFieldValue(v)
	if err != nil {
		logger.Error("convert", "error", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tVARIANT\tFIELD VALUE\tVALUE")
	dump(w, "$", v, fv)
	w.Flush()
}

// dump walks the variant and its converted form together. The shapes
// only diverge at nested arrays, where the field value side inserts an
// envelope map level.
func dump(w *tabwriter.Writer, path string, v variant.Variant, fv fieldvalue.Value) {
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", path, v.Type(), fv.Type(), summary(fv))

	switch {
	case v.IsVector() && fv.Type() == fieldvalue.TypeArray:
		for i, elem := range v.VectorValue() {
			dump(w, fmt.Sprintf("%s[%d]", path, i), elem, fv.ArrayValue()[i])
		}
	case v.IsVector() && fv.Type() == fieldvalue.TypeMap:
		// Nested-array envelope: descend into the wrapped array.
		inner := fv.MapValue()["value"]
		for i, elem := range v.VectorValue() {
			dump(w, fmt.Sprintf("%s[%d]", path, i), elem, inner.ArrayValue()[i])
		}
	case v.IsMap() && fv.Type() == fieldvalue.TypeMap:
		m := fv.MapValue()
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if child, ok := v.MapGet(k); ok {
				dump(w, path+"."+k, child, m[k])
			}
		}
	}
}

func summary(fv fieldvalue.Value) string {
	switch fv.Type() {
	case fieldvalue.TypeBoolean:
		return fmt.Sprintf("%t", fv.BooleanValue())
	case fieldvalue.TypeInteger:
		return fmt.Sprintf("%d", fv.IntegerValue())
	case fieldvalue.TypeDouble:
		return fmt.Sprintf("%g", fv.DoubleValue())
	case fieldvalue.TypeString:
		return fmt.Sprintf("%q", fv.StringValue())
	case fieldvalue.TypeBlob:
		return fmt.Sprintf("%d bytes", len(fv.BlobValue()))
	case fieldvalue.TypeArray:
		return fmt.Sprintf("%d elements", len(fv.ArrayValue()))
	case fieldvalue.TypeMap:
		return fmt.Sprintf("%d fields", len(fv.MapValue()))
	case fieldvalue.TypeTimestamp:
		return fv.TimestampTime().String()
	case fieldvalue.TypeGeoPoint:
		gp := fv.GeoPointValue()
		return fmt.Sprintf("%g,%g", gp.GetLatitude(), gp.GetLongitude())
	case fieldvalue.TypeReference:
		return fv.ReferenceValue().Path
	default:
		return ""
	}
}
