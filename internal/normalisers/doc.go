// Package normalisers provides the components that turn untrusted input
// records into canonical domain.Event values. Each normaliser knows one
// input shape; feedjson handles the harvester's JSON artifact.
package normalisers
