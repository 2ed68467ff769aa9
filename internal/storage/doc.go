// Package storage provides the record store for dialauth.
//
// A record store is a durable mapping from (collection, key) to a structured
// record with existence-conflict semantics: Create fails if the key is
// present, Read/Update/Delete fail if it is absent. Records round-trip
// through JSON.
//
// Two engines implement the contract: FileStore keeps one JSON file per
// record (the default), BadgerStore keeps records in a Badger key-value
// database. Package memory adds a third engine for tests.
package storage
