// Package redis keeps an index of issued slugs in Redis using go-redis/v9.
//
// Each kind and scope gets one hash, keyed as "<prefix><kind>:<scope>" where
// scope is the encoded scope fields of the query ("slugs:Post:BlogID=1").
// Hash fields are slugs, values are the owners they were reserved for.
//
//   - ExistsMatching reads the owner with HGET. A slug owned by the excluded
//     record is reported as free.
//   - Reserve uses HSETNX so a second writer gets ErrSlugTaken.
//   - Release deletes the field with HDEL.
//   - Slugs lists a scope with HSCAN.
//
// # Usage
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	index := redis.NewIndexWithConfig(client, cfg)
//	s := sluggable.New(index)
//
// Healthcheck wraps Ping for liveness probes.
//
// # Errors
//
// Driver errors are joined with ErrQueryFailed, connection errors with
// ErrRedisNotReady or ErrFailedToParseRedisConnString.
package redis
