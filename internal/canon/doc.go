// Package canon provides the canonical JSON form used for golden files,
// stored runs and content hashes.
//
// The encoding follows RFC 8785:
//   - Object keys sorted by UTF-16 code units
//   - Strings NFC normalized, no HTML escaping
//   - No floats and no null
//
// Hashes are SHA-256 with a domain prefix so identical bytes hashed for
// different purposes never collide.
package canon
