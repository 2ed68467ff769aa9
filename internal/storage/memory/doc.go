// Package memory provides an in-memory record store for dialauth.
//
// It implements the same contract as the durable engines and is intended
// for tests and local development. Records still round-trip through JSON so
// serialization bugs surface the same way they would on disk.
package memory
