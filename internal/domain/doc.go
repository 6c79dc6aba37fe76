// Package domain holds the small set of types shared across FureyLib packages:
// the error taxonomy, workspace configuration, save data and vector math.
//
// The domain does not depend on YAML parsing, the network or the filesystem.
// Infra adapters map into/from these types.
package domain
