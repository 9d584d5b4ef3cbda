package declfile

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/conduit-lang/sugar/runtime/metadata"
)

// DecodeFunc turns the fields of one attribute entry into an attribute. The
// kind key has already been removed from fields.
type DecodeFunc func(fields map[string]any) (metadata.Attribute, error)

// Decoder returns a DecodeFunc that decodes fields into a T by its
// mapstructure tags. Duration fields accept Go duration strings such as "30s".
// Unknown fields are an error.
func Decoder[T metadata.Attribute]() DecodeFunc {
	return func(fields map[string]any) (metadata.Attribute, error) {
		var attr T
		if err := decodeFields(fields, &attr); err != nil {
			return nil, err
		}
		return attr, nil
	}
}

func decodeFields(fields map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	return decoder.Decode(fields)
}
