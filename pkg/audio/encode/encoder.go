// ABOUTME: Encoder interface definition
// ABOUTME: Common interface for PCM byte stream encoders
package encode

// Encoder encodes int16 PCM samples to a byte stream
type Encoder interface {
	// Encode converts PCM samples to raw audio bytes
	Encode(samples []int16) ([]byte, error)

	// Close releases encoder resources
	Close() error
}
