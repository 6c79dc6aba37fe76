package savefile

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/kylepfurey/FureyLib-sub005/internal/domain"
)

// Codec encodes and decodes the save envelope for one file format.
type Codec interface {
	Ext() string
	Marshal(f domain.SaveFile) ([]byte, error)
	Unmarshal(b []byte, f *domain.SaveFile) error
}

type jsonCodec struct{}

func (jsonCodec) Ext() string { return ".json" }
func (jsonCodec) Marshal(f domain.SaveFile) ([]byte, error) {
	return json.MarshalIndent(f, "", "  ")
}
func (jsonCodec) Unmarshal(b []byte, f *domain.SaveFile) error { return json.Unmarshal(b, f) }

type yamlCodec struct{}

func (yamlCodec) Ext() string                                  { return ".yaml" }
func (yamlCodec) Marshal(f domain.SaveFile) ([]byte, error)    { return yaml.Marshal(f) }
func (yamlCodec) Unmarshal(b []byte, f *domain.SaveFile) error { return yaml.Unmarshal(b, f) }

type tomlCodec struct{}

func (tomlCodec) Ext() string                                  { return ".toml" }
func (tomlCodec) Marshal(f domain.SaveFile) ([]byte, error)    { return toml.Marshal(f) }
func (tomlCodec) Unmarshal(b []byte, f *domain.SaveFile) error { return toml.Unmarshal(b, f) }

var codecs = map[string]Codec{
	"json": jsonCodec{},
	"yaml": yamlCodec{},
	"yml":  yamlCodec{},
	"toml": tomlCodec{},
}

// CodecFor resolves a format name (json|yaml|toml) to its codec.
func CodecFor(format string) (Codec, error) {
	c, ok := codecs[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, fmt.Errorf("unsupported save format %q (expected json|yaml|toml): %w", format, domain.ErrInvalidConfig)
	}
	return c, nil
}

func codecForExt(ext string) (Codec, bool) {
	c, ok := codecs[strings.TrimPrefix(strings.ToLower(ext), ".")]
	return c, ok
}
