// Package keycodec maps numeric values and multi-field records onto unsigned
// sort keys whose natural numeric order matches the order of the source values.
//
// Radix sorting works on unsigned digits only. Encoding a value into a sort key
// once, sorting the keys together with an index slice, and then reading the
// records through the permuted index is usually far cheaper than sorting the
// records themselves with a comparator.
//
// # Scalars
//
//   - Signed integers are rebased by flipping the sign bit, so two's-complement
//     order becomes unsigned order.
//   - IEEE floats with the sign bit clear get the sign bit set. Negative floats
//     have all bits complemented, so larger magnitudes map to smaller keys.
//     -0.0 encodes to the key directly below +0.0 and therefore sorts first.
//     NaN bit patterns are accepted but have no defined order.
//
// Every encoder has an exact inverse.
//
// # Composite keys
//
// PackComposite concatenates fields most-significant first. A field marked
// Descending is complemented within its width, so an ascending sort of the
// packed key yields descending order for that field:
//
//	date, _ := keycodec.Millennial(r.ReleaseDate)
//	key, err := keycodec.PackComposite(
//	    keycodec.Field{Key: uint64(date), Bits: 32, Descending: true},
//	    keycodec.Field{Key: uint64(keycodec.EncodeFloat32(float32(r.Price))), Bits: 32},
//	)
package keycodec
