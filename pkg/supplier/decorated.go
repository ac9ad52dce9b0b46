package supplier

import (
	"fmt"

	"github.com/spf13/cast"
)

// decorated adds affixes or quoting to another supplier's stringified output
type decorated struct {
	wrapped ValueSupplier
	prefix  string
	suffix  string
	quote   string
}

// Next implements ValueSupplier
func (s *decorated) Next(iteration int) interface{} {
	value := s.wrapped.Next(iteration)
	return fmt.Sprintf("%s%s%v%s%s", s.quote, s.prefix, value, s.suffix, s.quote)
}

// Decorated wraps a supplier with optional prefix, suffix and surrounding
// quote strings, composed as quote+prefix+value+suffix+quote
func Decorated(wrapped ValueSupplier, prefix, suffix, quote string) ValueSupplier {
	return &decorated{wrapped: wrapped, prefix: prefix, suffix: suffix, quote: quote}
}

// Decoration config keys
const (
	PrefixKey = "prefix"
	SuffixKey = "suffix"
	QuoteKey  = "quote"
)

// IsDecorated reports whether the config carries any decoration key
func IsDecorated(config map[string]interface{}) bool {
	for _, key := range []string{PrefixKey, SuffixKey, QuoteKey} {
		if _, ok := config[key]; ok {
			return true
		}
	}
	return false
}

// DecoratedFromConfig wraps the supplier using the prefix, suffix and quote
// entries found in config, if any
func DecoratedFromConfig(wrapped ValueSupplier, config map[string]interface{}) ValueSupplier {
	if !IsDecorated(config) {
		return wrapped
	}
	return Decorated(wrapped,
		cast.ToString(config[PrefixKey]),
		cast.ToString(config[SuffixKey]),
		cast.ToString(config[QuoteKey]))
}
