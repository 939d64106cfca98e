// Package pkgconfig provides a small abstraction for reading configuration values.
//
// Values come from a YAML file, environment variables prefixed with GOFTA_,
// and an optional .env file loaded into the environment beforehand. Business
// code depends on the Config interface so it stays easy to test and does not
// care where values come from.
package pkgconfig
