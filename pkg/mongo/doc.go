// Package mongo backs slug existence checks with MongoDB using the official
// mongo-driver/v2.
//
// Store counts matching documents with a limit of one, so a check never scans
// more than the first hit:
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "")
//	if err != nil {
//		return err
//	}
//	s := sluggable.New(mongo.NewStore(db, mongo.WithCollection("Post", "posts")))
//
// A query for kind "Post" with fields Slug and BlogID filters the "posts"
// collection on {slug: ..., blog_id: ...}. The record exclusion becomes a
// $ne condition, with the attribute "ID" mapped to "_id".
//
// New and NewWithDatabase connect with retries; Healthcheck wraps Ping for
// readiness probes. Config is read from MONGODB_* environment variables.
package mongo
