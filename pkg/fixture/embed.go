package fixture

import "embed"

// builtinFixturesFS embeds the worked examples shipped with the solver.
//
//go:embed fixtures/*.yml
var builtinFixturesFS embed.FS
