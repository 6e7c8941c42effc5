package redis

const (
	// KeyCatalog holds the full catalog as one JSON array.
	KeyCatalog = "toolhub:catalog"
	// KeyPrefixTranscript is the prefix for chat transcript lists.
	KeyPrefixTranscript = "toolhub:chat:"
)

// CatalogKey returns the Redis key holding the serialized catalog.
func CatalogKey() string {
	return KeyCatalog
}

// TranscriptKey returns the Redis key for a chat session transcript.
func TranscriptKey(sessionID string) string {
	return KeyPrefixTranscript + sessionID
}
