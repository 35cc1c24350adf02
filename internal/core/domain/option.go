package domain

import (
	"strconv"

	"go.trai.ch/zerr"
)

type valueKind uint8

const (
	kindUnset valueKind = iota
	kindBool
	kindString
)

// OptionValue is the value of a single option: unset, a boolean or a string.
// The zero value is unset.
type OptionValue struct {
	kind valueKind
	b    bool
	s    string
}

// Unset returns an OptionValue that carries nothing.
func Unset() OptionValue {
	return OptionValue{}
}

// Bool returns a boolean OptionValue.
func Bool(b bool) OptionValue {
	return OptionValue{kind: kindBool, b: b}
}

// String returns a string OptionValue.
func String(s string) OptionValue {
	return OptionValue{kind: kindString, s: s}
}

// ParseOptionValue interprets a command-line value: "true" and "false" are
// booleans, anything else is a literal string.
func ParseOptionValue(raw string) OptionValue {
	switch raw {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	default:
		return String(raw)
	}
}

// IsSet reports whether the value was given at all, including an explicit false.
func (v OptionValue) IsSet() bool {
	return v.kind != kindUnset
}

// IsBool reports whether the value is a boolean.
func (v OptionValue) IsBool() bool {
	return v.kind == kindBool
}

// IsString reports whether the value is a string.
func (v OptionValue) IsString() bool {
	return v.kind == kindString
}

// True reports whether the value is the boolean true.
func (v OptionValue) True() bool {
	return v.kind == kindBool && v.b
}

// Text returns the string payload, or "" for non-string values.
func (v OptionValue) Text() string {
	if v.kind != kindString {
		return ""
	}
	return v.s
}

// NonEmpty reports whether the value is a string with content.
func (v OptionValue) NonEmpty() bool {
	return v.kind == kindString && v.s != ""
}

// GoString renders the value for test failure output.
func (v OptionValue) GoString() string {
	switch v.kind {
	case kindBool:
		return strconv.FormatBool(v.b)
	case kindString:
		return strconv.Quote(v.s)
	default:
		return "<unset>"
	}
}

// Option is a passthrough key and its value.
type Option struct {
	Key   string
	Value OptionValue
}

// Options is the merged option bag for one invocation.
// Recognized keys have fixed fields; everything else is kept in Extra in the
// order it was supplied.
type Options struct {
	Bin     OptionValue
	Release OptionValue
	Target  OptionValue
	Profile OptionValue
	Extra   []Option
}

// Recognized option keys, in their canonical camel-style form.
const (
	OptionBin     = "bin"
	OptionRelease = "release"
	OptionTarget  = "target"
	OptionProfile = "profile"
)

// IsRecognized reports whether key has fixed semantics.
func IsRecognized(key string) bool {
	switch key {
	case OptionBin, OptionRelease, OptionTarget, OptionProfile:
		return true
	default:
		return false
	}
}

// CheckOption enforces the value type of keys with fixed semantics:
// release takes a boolean, bin, target and profile take strings.
// Unset values and passthrough keys are always accepted.
func CheckOption(key string, v OptionValue) error {
	if !v.IsSet() {
		return nil
	}

	var ok bool
	var expected string
	switch key {
	case OptionRelease:
		ok, expected = v.IsBool(), "boolean"
	case OptionBin, OptionTarget, OptionProfile:
		ok, expected = v.IsString(), "string"
	default:
		return nil
	}

	if ok {
		return nil
	}
	err := zerr.With(ErrInvalidOptionValue, "option", key)
	return zerr.With(err, "expected", expected)
}

// Set assigns key. Recognized keys go to their field; others replace an
// existing passthrough entry in place or are appended.
func (o *Options) Set(key string, v OptionValue) {
	switch key {
	case OptionBin:
		o.Bin = v
	case OptionRelease:
		o.Release = v
	case OptionTarget:
		o.Target = v
	case OptionProfile:
		o.Profile = v
	default:
		for i := range o.Extra {
			if o.Extra[i].Key == key {
				o.Extra[i].Value = v
				return
			}
		}
		o.Extra = append(o.Extra, Option{Key: key, Value: v})
	}
}

// Get returns the value stored for key.
func (o Options) Get(key string) OptionValue {
	switch key {
	case OptionBin:
		return o.Bin
	case OptionRelease:
		return o.Release
	case OptionTarget:
		return o.Target
	case OptionProfile:
		return o.Profile
	}
	for _, opt := range o.Extra {
		if opt.Key == key {
			return opt.Value
		}
	}
	return Unset()
}

// Merge returns a copy of o with every set value of override applied on top.
// Unset values in override never clear values in o.
func (o Options) Merge(override Options) Options {
	merged := Options{
		Bin:     o.Bin,
		Release: o.Release,
		Target:  o.Target,
		Profile: o.Profile,
		Extra:   make([]Option, len(o.Extra), len(o.Extra)+len(override.Extra)),
	}
	copy(merged.Extra, o.Extra)

	for _, key := range []string{OptionBin, OptionRelease, OptionTarget, OptionProfile} {
		if v := override.Get(key); v.IsSet() {
			merged.Set(key, v)
		}
	}
	for _, opt := range override.Extra {
		if opt.Value.IsSet() {
			merged.Set(opt.Key, opt.Value)
		}
	}
	return merged
}
