package json

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mrcluk/sprig/feature"
	"github.com/mrcluk/sprig/tree"
)

type jsonTree struct {
	Features []jsonDeclaration `json:"features"`
	Root     json.RawMessage   `json:"root"`
}

var nodes = NewNodeEncodeDecoder()

type jsonDeclaration struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

/*
Encode takes a pointer to a tree.Tree and returns it serialized as JSON.
A tree is serialized as a JSON object with the following fields:
  - "features": an array with the schema of the tree, objects with the
    "name" and "type" ("continuous" or "categorical") of every feature
    in event order
  - "root": the root node serialized as by NewNodeEncodeDecoder
*/
func Encode(t *tree.Tree) ([]byte, error) {
	if t == nil || t.Schema == nil {
		return nil, fmt.Errorf("encoding tree: no schema")
	}
	root, err := nodes.Encode(t.Root)
	if err != nil {
		return nil, err
	}
	jt := &jsonTree{Root: root}
	for _, d := range t.Schema.Declarations() {
		jt.Features = append(jt.Features, jsonDeclaration{d.Name, d.Kind.String()})
	}
	return json.Marshal(jt)
}

/*
Decode takes a slice of bytes with a tree serialized by Encode and returns
the tree or an error. Decision nodes referring to features missing from the
encoded schema are reported as tree.ErrUnknownFeature.
*/
func Decode(data []byte) (*tree.Tree, error) {
	jt := &jsonTree{}
	err := json.Unmarshal(data, jt)
	if err != nil {
		return nil, err
	}
	declarations := make([]feature.Declaration, 0, len(jt.Features))
	for _, jd := range jt.Features {
		var kind feature.Kind
		switch jd.Type {
		case "continuous":
			kind = feature.Continuous
		case "categorical":
			kind = feature.Categorical
		default:
			return nil, fmt.Errorf("decoding tree: unknown type %q for feature %s", jd.Type, jd.Name)
		}
		declarations = append(declarations, feature.Declaration{Name: jd.Name, Kind: kind})
	}
	s, err := feature.NewSchema(declarations...)
	if err != nil {
		return nil, fmt.Errorf("decoding tree: %v", err)
	}
	root, err := nodes.Decode(jt.Root)
	if err != nil {
		return nil, err
	}
	t := tree.New(root, s)
	err = t.Traverse(context.Background(), false, func(_ context.Context, n *tree.Node, _ int) error {
		if n.IsLeaf() {
			return nil
		}
		if _, ok := s.Index(n.Feature()); !ok {
			return fmt.Errorf("decoding tree: feature %q: %w", n.Feature(), tree.ErrUnknownFeature)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// EncodeDecoder encodes trees with Encode and decodes them with Decode.
type EncodeDecoder struct{}

// Encode calls the package level Encode.
func (EncodeDecoder) Encode(t *tree.Tree) ([]byte, error) {
	return Encode(t)
}

// Decode calls the package level Decode.
func (EncodeDecoder) Decode(data []byte) (*tree.Tree, error) {
	return Decode(data)
}

/*
WriteJSONTree takes a context.Context, a pointer to a tree.Tree and an
io.Writer and serializes the given tree as JSON onto the io.Writer.
An error is returned if the tree cannot be serialized or written
onto the io.Writer.
*/
func WriteJSONTree(ctx context.Context, t *tree.Tree, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(t)
	if err != nil {
		return fmt.Errorf("serializing tree as JSON: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

/*
ReadJSONTree takes a context.Context and an io.Reader and unmarshals
a tree from the contents of the io.Reader.
An error is returned if the JSON cannot be read from the io.Reader or
decoded into a tree.
*/
func ReadJSONTree(ctx context.Context, r io.Reader) (*tree.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dec := json.NewDecoder(r)
	raw := json.RawMessage{}
	err := dec.Decode(&raw)
	if err != nil {
		return nil, fmt.Errorf("decoding json tree: %w", err)
	}
	return Decode(raw)
}
