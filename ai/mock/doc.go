// Package mock provides deterministic test doubles for the ai package
// interfaces, with injectable behavior and call counting.
package mock
