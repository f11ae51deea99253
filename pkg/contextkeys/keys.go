package contextkeys

// Custom type to avoid context key collisions.
type contextKey string

// DBContextKey is the key under which the *gorm.DB (pool or transaction) is
// stored in the request context.
const DBContextKey = contextKey("db")
