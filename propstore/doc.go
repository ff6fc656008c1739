// Package propstore parses snapshots of the Android property area and
// answers integrity questions about the build properties found there.
//
// # Overview
//
// A property area is a binary file under /dev/__properties__/ whose layout
// changes between OS releases. This package treats it as untrusted input:
// every offset read from the file is bounds-checked, and work per parse is
// capped regardless of what the header claims.
//
// # Strategy Chain
//
// Parsing runs up to three strategies and stops at the first one that yields
// at least one "ro." property:
//
//  1. Structured: locate the "PROP" header, validate it, and walk its table
//     of (name, value, size) entries relative to the data region.
//  2. Targeted search: look for a fixed set of device-identity keys written
//     as "key=value" anywhere in the buffer.
//  3. Generic scan: walk (name, value) offset pairs from the header's TOC
//     field treated as an absolute offset.
//
// Only keys in the "ro." namespace are kept, whatever the strategy.
//
// # Opening a Store
//
//	st, err := propstore.Open("", propstore.DefaultOptions())
//	if err != nil {
//	    // st is still usable: it is empty and reports tampering.
//	}
//	fmt.Println(st.DeviceModel(), st.Fingerprint())
//
// # Tamper Checks
//
// CheckForTampering flags a store whose critical build keys are missing,
// empty or "unknown". IsPropertyTampered compares one key against a value
// observed elsewhere (a live getprop, a stored baseline). A failed parse is
// treated as tampered by both.
//
// # Thread Safety
//
// A Store is immutable once returned and safe for concurrent readers. A
// Parser is not safe for concurrent use.
package propstore
