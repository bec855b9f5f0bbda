// Package opensearch checks slug existence against OpenSearch indices using
// github.com/opensearch-project/opensearch-go/v2.
//
// Store issues a _count request per check, with terminate_after=1 and a bool
// query that filters on the slug and scope fields:
//
//	{"query":{"bool":{
//	    "filter":[{"term":{"slug":"hello"}},{"term":{"blog_id":1}}],
//	    "must_not":[{"term":{"_id":42}}]}}}
//
// Index and field names are derived in snake_case. Map slug and scope fields
// as keyword so term queries match exactly.
//
// New builds a client from Config and verifies it with Healthcheck. Open does
// the same and returns a Store configured from Config.
//
// # Usage
//
//	var cfg opensearch.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
//	store, _, err := opensearch.Open(ctx, cfg)
//	if err != nil {
//		return err
//	}
//
//	s := sluggable.New(store)
//
// # Error Handling
//
// ErrNoAddresses, ErrConnectionFailed and ErrHealthcheckFailed cover connectivity,
// ErrQueryFailed transport failures and error responses of the count API.
package opensearch
