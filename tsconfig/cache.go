package tsconfig

import "github.com/tsbuildhq/tsbuild/tspath"

// Cache memoizes parsed manifests by resolved path for the duration of
// one build session. Parse failures are not cached, so a manifest that
// appears mid-session is picked up on the next request.
type Cache struct {
	host    Host
	parse   ParseFunc
	configs *tspath.FileMap[*ParsedConfig]
}

// NewCache creates a cache parsing through parse, or through Parse when
// parse is nil.
func NewCache(host Host, parse ParseFunc) *Cache {
	if parse == nil {
		parse = Parse
	}
	return &Cache{
		host:    host,
		parse:   parse,
		configs: tspath.NewFileMap[*ParsedConfig](),
	}
}

// ParseConfigFile returns the parsed manifest for path, parsing on
// first request. The second result is false when the manifest cannot be
// read or parsed.
func (c *Cache) ParseConfigFile(path tspath.ResolvedConfigPath) (*ParsedConfig, bool) {
	if cfg, ok := c.configs.Get(string(path)); ok {
		return cfg, true
	}

	cfg, err := c.parse(c.host, path)
	if err != nil {
		return nil, false
	}
	cfg.ConfigPath = path
	c.configs.Set(string(path), cfg)
	return cfg, true
}
