// Package typedjson round-trips structured data through JSON (or another
// carrier format) while keeping the types plain JSON cannot express: ordered
// mappings, records, tuples, sets, mappings with non-string keys and typed
// numeric arrays.
//
// Values JSON can hold natively pass through untouched. Everything else is
// written as a single-key object whose key is a reserved tag:
//
//	*OrderedMap     {"py/collections.OrderedDict": [[k, v], ...]}
//	Record          {"py/collections.namedtuple": {"type": T, "fields": [...], "values": [...]}}
//	*Map            {"py/dict": [[k, v], ...]}      (only when a key is not a string)
//	Tuple           {"py/tuple": [...]}
//	*Set            {"py/set": [...]}
//	*Array          {"py/numpy.ndarray": {"values": [[...]], "dtype": "int32"}}
//
// The tag strings are kept compatible with files written by the earlier
// Python tool.
//
// Components:
//   - Serialize: value -> JSON-native tree.
//   - Restore: per-object decode hook, applied bottom-up by the carrier.
//   - Codec: Serialize + Restore bound to a codec.Format and a record Registry.
//   - Equal / Fingerprint: canonical identity (deterministic CBOR, BLAKE2b-256).
//
// Round trip:
//
//	b, _ := typedjson.Marshal(v)
//	w, _ := typedjson.Unmarshal(b)
//	typedjson.Equal(v, w) // true
package typedjson
