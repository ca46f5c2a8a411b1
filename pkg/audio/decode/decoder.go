// ABOUTME: Decoder interface definition
// ABOUTME: Common interface for PCM byte stream decoders
package decode

// Decoder decodes a raw byte stream into 16-bit PCM samples
type Decoder interface {
	// Decode converts raw audio bytes to PCM samples
	Decode(data []byte) ([]int16, error)

	// Close releases decoder resources
	Close() error
}
