// Package sluggable derives URL-safe, unique, length-bounded identifiers
// ("slugs") for records from one or more of their attributes and keeps them
// stable once assigned.
//
// Every record type is configured once at startup. The configuration names
// the source attributes, the target field and the uniqueness scope; Assign
// then runs the pipeline for a single record right before it is persisted:
//
//  1. Build normalizes each source value, joins the parts with the separator,
//     falls back to a generated candidate when everything is blank and
//     truncates the result to the length limit.
//  2. Resolve asks the Store whether the candidate is taken within the
//     record's scope and appends "-2", "-3", ... until it finds a gap.
//  3. The result is written to the target field.
//
// Basic Usage:
//
//	type Post struct {
//		ID     int64
//		BlogID int64
//		Title  string
//		Slug   string
//	}
//
//	s := sluggable.New(store, sluggable.WithLogger(log))
//	if _, err := s.Register(Post{},
//		sluggable.From("Title"),
//		sluggable.Scope("BlogID"),
//		sluggable.LimitLength(64),
//	); err != nil {
//		return err // *ConfigurationError
//	}
//
//	post := &Post{BlogID: 1, Title: "Hello, World!"}
//	if _, err := s.Assign(ctx, post); err != nil {
//		return err
//	}
//	// post.Slug == "hello-world", or "hello-world-2" when taken in blog 1
//
// Assign never overwrites an existing slug unless Force(true) is given;
// Reassign is the shorthand for that.
//
// Source attributes may be exported fields, zero-argument methods, values
// exposed through AttributeReader, or computed SourceFunc providers. The
// target is an exported string field, a Set<Name>(string) method or an
// AttributeWriter.
//
// Customization:
//
// Embed DefaultStrategy and override any of BeforeAssign, AfterAssign,
// Normalize, Concat, Blank or Duplicate. The choreography of build and
// resolve stays the same.
//
// Stores:
//
// Store is the existence check. MemoryStore serves tests, CachedStore keeps
// positive answers in an LRU, and pkg/pg, pkg/mongo, pkg/redis and
// pkg/opensearch back it with real databases.
//
// Concurrency:
//
// A Slugger is safe for concurrent use. Two processes assigning the same
// slug at the same time can both pass the existence check; a unique
// constraint in storage (see pkg/pg Ledger) is the backstop and its error is
// returned to the caller unchanged.
package sluggable
