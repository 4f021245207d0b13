package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ecmurnane/noaadata/codec"
	"github.com/ecmurnane/noaadata/schema"
)

// Value files are flat YAML mappings of flattened field names to
// integers, with null meaning unavailable:
//
//	UserID: 1193046
//	day: 28
//	timetoexpire: ~

func readValuesFile(path string) (codec.Values, error) {
	if path == "-" {
		return readValues(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open values: %w", err)
	}
	defer f.Close()

	return readValues(f)
}

func readValues(r io.Reader) (codec.Values, error) {
	var raw map[string]yaml.Node

	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse values: %w", err)
	}

	values := make(codec.Values, len(raw))
	for name, node := range raw {
		v, err := parseValue(&node)
		if err != nil {
			return nil, fmt.Errorf("parse values: field %s: %w", name, err)
		}

		values[name] = v
	}

	return values, nil
}

// parseValue reads the scalar itself rather than decoding into an
// int64, which would cap unsigned 64 bit fields at MaxInt64.
func parseValue(node *yaml.Node) (codec.Value, error) {
	if node.Kind != yaml.ScalarNode {
		return codec.Value{}, fmt.Errorf("expected an integer or null")
	}

	if node.Tag == "!!null" {
		return codec.Unavailable(), nil
	}

	if strings.HasPrefix(node.Value, "-") {
		i, err := strconv.ParseInt(node.Value, 10, 64)
		if err != nil {
			return codec.Value{}, fmt.Errorf("expected an integer: %w", err)
		}

		return codec.Int(i), nil
	}

	u, err := strconv.ParseUint(node.Value, 10, 64)
	if err != nil {
		return codec.Value{}, fmt.Errorf("expected an integer: %w", err)
	}

	return codec.Uint(u), nil
}

// writeValues emits the mapping in wire order, which a plain map
// marshal would lose.
func writeValues(w io.Writer, c *codec.Codec, values codec.Values) error {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, fl := range c.Fields() {
		v, ok := values[fl.Name]
		if !ok {
			continue
		}

		key := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Value: fl.Name,
		}

		val := &yaml.Node{Kind: yaml.ScalarNode}
		switch {
		case v.IsUnavailable():
			val.Tag = "!!null"
			val.Value = "null"
		case fl.Field.Kind == schema.Int:
			val.Value = strconv.FormatInt(v.Int(), 10)
		default:
			val.Value = strconv.FormatUint(v.Uint(), 10)
		}

		node.Content = append(node.Content, key, val)
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()

	return enc.Encode(node)
}

func decodeStream(a *app, data []byte, bits int) (*codec.Decoded, error) {
	if bits > 0 {
		return a.codec.DecodeBits(data, bits)
	}

	return a.codec.Decode(data)
}

func rangeString(f *schema.Field) string {
	if f.Kind == schema.Int {
		min, max := f.IntBounds()

		return fmt.Sprintf("%d..%d", min, max)
	}

	min, max := f.UintBounds()

	return fmt.Sprintf("%d..%d", min, max)
}
