package service

// CatalogCache is a process-local key-value cache for catalog reads.
// Entries never expire on their own; writers drop whole namespaces.
type CatalogCache interface {
	Get(namespace, key string) (any, bool)

	// Generation reports how many times namespace has been invalidated.
	// Readers take it before loading and hand it back to Set.
	Generation(namespace string) uint64

	// Set stores value unless namespace was invalidated after generation was taken.
	Set(namespace, key string, value any, generation uint64)

	// Invalidate drops every entry of the given namespaces.
	Invalidate(namespaces ...string)
}

// Catalog cache namespaces.
const (
	CacheNamespaceCategories = "categories"
	CacheNamespaceProducts   = "products"
)
