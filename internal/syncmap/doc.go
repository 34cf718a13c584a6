// Package syncmap offers a lightweight, generic, concurrency-safe map with
// basic Get/Set/Has/Delete/Keys/List operations guarded by a sync.RWMutex.
// It is intentionally minimal and tuned to the needs of the service registry.
package syncmap
