package keys

import (
	"strings"
)

const (
	// PfxTokenInfo is used for prefixing cached erc20 token info
	PfxTokenInfo = "tokenInfo"
)

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// CacheKey is used to join the cache key by componets
func CacheKey(components ...string) string {
	return CustomKey(":", components...)
}
