// Package runtime embeds the fixed Python prelude text emitted ahead of
// every compiled program.
package runtime

import _ "embed"

//go:embed prelude.py
var Prelude string
