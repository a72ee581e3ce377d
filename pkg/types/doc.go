// Package types defines the Record and Snapshot data model, the query
// vocabulary, the persistence Backend contract, and the standard errors for
// the Larder document store.
package types
