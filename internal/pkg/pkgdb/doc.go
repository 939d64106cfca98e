// Package pkgdb opens the SQL database used by persistent stores.
package pkgdb
