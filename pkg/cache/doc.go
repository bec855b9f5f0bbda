// Package cache provides a generic, thread-safe LRU cache with an optional
// entry lifetime.
//
// The cache evicts the least recently used entry once it holds more than its
// capacity. With WithTTL an entry also stops being returned once its
// lifetime has passed; expired entries are dropped lazily on Get.
//
//	c := cache.NewLRUCache[string, struct{}](1024, cache.WithTTL(time.Minute))
//	c.Put("Post|BlogID=1|hello", struct{}{})
//	_, ok := c.Get("Post|BlogID=1|hello")
//
// sluggable.CachedStore uses it to remember taken slugs.
package cache
