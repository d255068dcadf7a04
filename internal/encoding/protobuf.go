package encoding

import (
	"encoding/json"
	"fmt"

	"github.com/pradeshm/infinispan-console/internal/util"
)

// cacheTopologies lists the top-level cache configuration keys in the order
// they are checked.
var cacheTopologies = []string{
	"distributed-cache",
	"replicated-cache",
	"invalidation-cache",
	"local-cache",
}

// CacheEncoding tells whether the keys and values of a cache are stored as
// protostream.
type CacheEncoding struct {
	Key   bool
	Value bool
}

// DetectProtobufCache inspects a cache's JSON configuration. Malformed JSON is
// an error; an unknown topology or a missing encoding block is not.
func DetectProtobufCache(configJSON string) (CacheEncoding, error) {
	var doc any
	if err := json.Unmarshal([]byte(configJSON), &doc); err != nil {
		return CacheEncoding{}, fmt.Errorf("parse cache configuration: %w: %w", util.ErrInvalidInput, err)
	}

	root, _ := doc.(map[string]any)

	var head any
	found := false
	for _, topology := range cacheTopologies {
		if node, ok := root[topology]; ok {
			head = node
			found = true
			break
		}
	}
	if !found {
		return CacheEncoding{}, nil
	}

	return CacheEncoding{
		Key:   isProtostream(head, "key"),
		Value: isProtostream(head, "value"),
	}, nil
}

func isProtostream(head any, side string) bool {
	mediaType, ok := lookupString(head, "encoding", side, "media-type")
	return ok && mediaType == MediaTypeProtostream
}

// lookupString walks nested JSON objects and returns the string at path.
func lookupString(node any, path ...string) (string, bool) {
	for _, key := range path {
		obj, ok := node.(map[string]any)
		if !ok {
			return "", false
		}
		if node, ok = obj[key]; !ok {
			return "", false
		}
	}
	s, ok := node.(string)
	return s, ok
}

// IsJSONObject reports whether value is a JSON object carrying a truthy
// "_type" field, which is how the server tags protostream entities rendered
// as JSON.
func IsJSONObject(value string) bool {
	var obj map[string]any
	if err := json.Unmarshal([]byte(value), &obj); err != nil {
		return false
	}
	return truthy(obj["_type"])
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	default:
		return true
	}
}
