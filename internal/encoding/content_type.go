package encoding

import (
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/pradeshm/infinispan-console/internal/observability"
)

// ContentType is the logical content kind of a cache key or value.
type ContentType string

// Content type tags. The tag value is also the java.lang class suffix for
// the java-object media types.
const (
	ContentTypeString  ContentType = "String"
	ContentTypeJSON    ContentType = "Json"
	ContentTypeXML     ContentType = "Xml"
	ContentTypeInteger ContentType = "Integer"
	ContentTypeDouble  ContentType = "Double"
	ContentTypeFloat   ContentType = "Float"
	ContentTypeLong    ContentType = "Long"
	ContentTypeBoolean ContentType = "Boolean"
	ContentTypeBytes   ContentType = "Bytes"
	ContentTypeBase64  ContentType = "Base64"
	ContentTypeHex     ContentType = "Hex"
)

// Wire media types.
const (
	JavaObjectPrefix     = "application/x-java-object;type=java.lang."
	MediaTypeOctetStream = "application/octet-stream"
	MediaTypeOctetHex    = "application/octet-stream; encoding=hex"
	MediaTypeJSON        = "application/json"
	MediaTypeXML         = "application/xml"
	MediaTypeProtostream = "application/x-protostream"
)

var allContentTypes = []ContentType{
	ContentTypeString,
	ContentTypeJSON,
	ContentTypeXML,
	ContentTypeInteger,
	ContentTypeDouble,
	ContentTypeFloat,
	ContentTypeLong,
	ContentTypeBoolean,
	ContentTypeBytes,
	ContentTypeBase64,
	ContentTypeHex,
}

// AllContentTypes returns every content type tag.
func AllContentTypes() []ContentType {
	out := make([]ContentType, len(allContentTypes))
	copy(out, allContentTypes)
	return out
}

// Valid reports whether ct is one of the known tags.
func (ct ContentType) Valid() bool {
	for _, known := range allContentTypes {
		if ct == known {
			return true
		}
	}
	return false
}

// String returns the tag value.
func (ct ContentType) String() string {
	return string(ct)
}

// Codec converts between ContentType tags and wire media types.
type Codec struct {
	logger  observability.Logger
	metrics *observability.Metrics
}

// CodecOption is a functional option for configuring the codec.
type CodecOption func(*Codec)

// WithCodecLogger sets the logger used for unmapped content type warnings.
func WithCodecLogger(logger observability.Logger) CodecOption {
	return func(c *Codec) {
		c.logger = logger
	}
}

// WithCodecMetrics sets the metrics recorder.
func WithCodecMetrics(metrics *observability.Metrics) CodecOption {
	return func(c *Codec) {
		c.metrics = metrics
	}
}

// NewCodec creates a new content type codec.
func NewCodec(opts ...CodecOption) *Codec {
	c := &Codec{
		logger: observability.NopLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ToWire returns the media type the server expects for ct. Content types
// without a wire form yield an empty string.
func (c *Codec) ToWire(ct ContentType) string {
	switch ct {
	case ContentTypeString,
		ContentTypeDouble,
		ContentTypeInteger,
		ContentTypeLong,
		ContentTypeBoolean:
		return JavaObjectPrefix + string(ct)
	case ContentTypeBase64:
		return MediaTypeOctetStream
	case ContentTypeHex:
		return MediaTypeOctetHex
	case ContentTypeJSON:
		return MediaTypeJSON
	case ContentTypeXML:
		return MediaTypeXML
	default:
		c.logger.Warn("content type not mapped", observability.String("content_type", string(ct)))
		c.metrics.RecordUnmappedContentType(string(ct))
		return ""
	}
}

// FromWire translates a media type header into a ContentType. A nil header
// yields the first fallback, or String when none is given.
func (c *Codec) FromWire(header *string, fallback ...ContentType) ContentType {
	if header == nil {
		if len(fallback) > 0 && fallback[0] != "" {
			return fallback[0]
		}
		return ContentTypeString
	}
	return c.FromWireString(*header)
}

// FromWireString translates a present media type header into a ContentType.
func (c *Codec) FromWireString(header string) ContentType {
	if strings.HasPrefix(header, JavaObjectPrefix) {
		ct := ContentType(strings.TrimPrefix(header, JavaObjectPrefix))
		if !ct.Valid() {
			c.logger.Debug("unknown java-object content type, using String",
				observability.String("header", header))
			return ContentTypeString
		}
		return ct
	}

	switch header {
	case MediaTypeOctetStream:
		return ContentTypeBase64
	case MediaTypeOctetHex:
		return ContentTypeHex
	case MediaTypeJSON:
		return ContentTypeJSON
	case MediaTypeXML:
		return ContentTypeXML
	default:
		return ContentTypeString
	}
}

// schemaKinds indexes the protobuf scalar kinds by their schema type name.
var schemaKinds = func() map[string]protoreflect.Kind {
	kinds := []protoreflect.Kind{
		protoreflect.BoolKind,
		protoreflect.Int32Kind,
		protoreflect.Sint32Kind,
		protoreflect.Uint32Kind,
		protoreflect.Int64Kind,
		protoreflect.Sint64Kind,
		protoreflect.Uint64Kind,
		protoreflect.Sfixed32Kind,
		protoreflect.Fixed32Kind,
		protoreflect.FloatKind,
		protoreflect.Sfixed64Kind,
		protoreflect.Fixed64Kind,
		protoreflect.DoubleKind,
		protoreflect.StringKind,
		protoreflect.BytesKind,
	}
	m := make(map[string]protoreflect.Kind, len(kinds))
	for _, k := range kinds {
		m[k.String()] = k
	}
	return m
}()

// FromSchemaPrimitive maps a protobuf scalar type name to a ContentType.
// Unknown names map to String.
func FromSchemaPrimitive(primitive string) ContentType {
	kind, ok := schemaKinds[primitive]
	if !ok {
		return ContentTypeString
	}
	return FromProtoKind(kind)
}

// IsSchemaPrimitive reports whether name is a protobuf scalar type name.
func IsSchemaPrimitive(name string) bool {
	_, ok := schemaKinds[name]
	return ok
}

// FromProtoKind maps a protobuf field kind to a ContentType.
func FromProtoKind(kind protoreflect.Kind) ContentType {
	switch kind {
	case protoreflect.FloatKind:
		return ContentTypeFloat
	case protoreflect.DoubleKind:
		return ContentTypeDouble
	case protoreflect.Int32Kind, protoreflect.Uint32Kind, protoreflect.Sint32Kind,
		protoreflect.Fixed32Kind, protoreflect.Sfixed32Kind:
		return ContentTypeInteger
	case protoreflect.Int64Kind, protoreflect.Uint64Kind, protoreflect.Sint64Kind,
		protoreflect.Fixed64Kind, protoreflect.Sfixed64Kind:
		return ContentTypeLong
	case protoreflect.BoolKind:
		return ContentTypeBoolean
	default:
		return ContentTypeString
	}
}
