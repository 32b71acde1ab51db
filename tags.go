package typedjson

// Reserved wrapper keys. A JSON object with exactly one key, and that key one
// of these, is a tagged wrapper. The strings are frozen: files written with
// them must keep loading.
const (
	TagOrderedMap = "py/collections.OrderedDict"
	TagRecord     = "py/collections.namedtuple"
	TagMap        = "py/dict"
	TagTuple      = "py/tuple"
	TagSet        = "py/set"
	TagArray      = "py/numpy.ndarray"
)

// Payload field names inside record and array wrappers.
const (
	recordTypeKey   = "type"
	recordFieldsKey = "fields"
	recordValuesKey = "values"

	arrayValuesKey = "values"
	arrayDTypeKey  = "dtype"
)

// restoreOrder is the fixed order in which Restore checks tag keys.
var restoreOrder = [...]string{TagMap, TagTuple, TagSet, TagRecord, TagArray, TagOrderedMap}

// IsTag reports whether key is one of the reserved wrapper keys.
func IsTag(key string) bool {
	for _, t := range restoreOrder {
		if t == key {
			return true
		}
	}
	return false
}

// Tags lists the reserved wrapper keys in Restore order.
func Tags() []string {
	return restoreOrder[:]
}
