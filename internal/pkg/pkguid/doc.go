// Package pkguid provides helpers for generating unique identifiers.
//
// String IDs (UUID v7) tag requests and events; numeric IDs (Snowflake) key
// import records so they sort by creation time.
package pkguid
