// Package migrations holds the helmet store schema. Each file registers its
// changes from init(); cmd/helmet imports the package for that side effect.
package migrations
