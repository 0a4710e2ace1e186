package backend

// ModelLocator is an optional interface for backends that can locate
// the actual weights file inside a downloaded artifact directory.
type ModelLocator interface {
	// ResolveModelPath resolves the real model path inside the base downloaded directory.
	ResolveModelPath(basePath string) (string, error)
}
