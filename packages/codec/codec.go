// Package codec provides the JSON codec shared by actions and results.
//
// Two implementations are available:
//   - Sonic: bytedance/sonic in standard-library compatible mode (default)
//   - GoJSON: goccy/go-json
package codec

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	gojson "github.com/goccy/go-json"
)

// Codec marshals request payloads and decodes response bodies.
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Valid(data []byte) bool
}

type sonicCodec struct {
	api sonic.API
}

// Sonic returns a codec backed by bytedance/sonic.
func Sonic() Codec {
	return &sonicCodec{api: sonic.ConfigStd}
}

func (c *sonicCodec) Name() string { return "sonic" }

func (c *sonicCodec) Marshal(v any) ([]byte, error) {
	return c.api.Marshal(v)
}

func (c *sonicCodec) Unmarshal(data []byte, v any) error {
	return c.api.Unmarshal(data, v)
}

func (c *sonicCodec) Valid(data []byte) bool {
	return c.api.Valid(data)
}

type goJSONCodec struct{}

// GoJSON returns a codec backed by goccy/go-json.
func GoJSON() Codec {
	return goJSONCodec{}
}

func (goJSONCodec) Name() string { return "gojson" }

func (goJSONCodec) Marshal(v any) ([]byte, error) {
	return gojson.Marshal(v)
}

func (goJSONCodec) Unmarshal(data []byte, v any) error {
	return gojson.Unmarshal(data, v)
}

func (goJSONCodec) Valid(data []byte) bool {
	return gojson.Valid(data)
}

// Default returns the codec used when none is configured.
func Default() Codec {
	return Sonic()
}

// ByName resolves a codec from its configuration name. An empty name
// selects the default.
func ByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sonic":
		return Sonic(), nil
	case "gojson", "go-json":
		return GoJSON(), nil
	default:
		return nil, fmt.Errorf("unknown codec: %s (must be: sonic or gojson)", name)
	}
}
