package opensearch

// Config holds OpenSearch client connection parameters with environment variable mapping.
// Load it with github.com/dmitrymomot/sluggable/pkg/config.
type Config struct {
	Addresses    []string `env:"OPENSEARCH_ADDRESSES,required"`
	Username     string   `env:"OPENSEARCH_USERNAME,notEmpty"`
	Password     string   `env:"OPENSEARCH_PASSWORD,notEmpty"`
	MaxRetries   int      `env:"OPENSEARCH_MAX_RETRIES" envDefault:"3"`
	DisableRetry bool     `env:"OPENSEARCH_DISABLE_RETRY" envDefault:"false"`
	IndexPrefix  string   `env:"OPENSEARCH_INDEX_PREFIX"` // IndexPrefix is prepended to index names derived from kinds.
}

// StoreOptions returns the store options implied by the config.
func (c Config) StoreOptions() []StoreOption {
	if c.IndexPrefix == "" {
		return nil
	}
	return []StoreOption{WithIndexPrefix(c.IndexPrefix)}
}
