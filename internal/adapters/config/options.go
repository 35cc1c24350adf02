package config

import (
	"go.trai.ch/same-cargo/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// decodeOptions converts an options mapping into domain.Options, keeping
// passthrough keys in document order.
func decodeOptions(node *yaml.Node) (domain.Options, error) {
	var opts domain.Options

	if node == nil || node.IsZero() || node.ShortTag() == "!!null" {
		return opts, nil
	}
	if node.Kind != yaml.MappingNode {
		return opts, zerr.With(domain.ErrUnsupportedOptionType, "line", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value, err := decodeOptionValue(key, node.Content[i+1])
		if err != nil {
			return domain.Options{}, err
		}
		if err := domain.CheckOption(key, value); err != nil {
			return domain.Options{}, zerr.With(err, "line", node.Content[i+1].Line)
		}
		opts.Set(key, value)
	}

	return opts, nil
}

func decodeOptionValue(key string, node *yaml.Node) (domain.OptionValue, error) {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.ScalarNode {
		err := zerr.With(domain.ErrUnsupportedOptionType, "option", key)
		return domain.Unset(), zerr.With(err, "line", node.Line)
	}

	switch node.ShortTag() {
	case "!!null":
		return domain.Unset(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return domain.Unset(), zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "option", key)
		}
		return domain.Bool(b), nil
	default:
		return domain.String(node.Value), nil
	}
}
