// Package encoding maps cache content types between their logical tags and
// the media-type strings exchanged with the management server.
//
// The package covers:
//
//   - ContentType tags and their wire representation (Codec)
//   - Protobuf schema primitive names and kinds to ContentType
//   - Detection of caches whose keys or values are stored as protostream
//   - Flags, the cache-operation modifiers sent with entry requests
//
// # Example Usage
//
//	codec := encoding.NewCodec(encoding.WithCodecLogger(logger))
//	header := codec.ToWire(encoding.ContentTypeInteger)
//	// application/x-java-object;type=java.lang.Integer
//
//	enc, err := encoding.DetectProtobufCache(configJSON)
//	if err != nil {
//	    // malformed configuration
//	}
//
// # Thread Safety
//
// Codec and all package functions are safe for concurrent use.
package encoding
