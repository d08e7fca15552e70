// Package config loads the shared agent configuration: company identity,
// greeting lines, FAQ entries, and storage locations. A missing file is
// never an error — defaults are synthesized and written back so operators
// have something to edit.
package config
