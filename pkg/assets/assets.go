package assets

import (
	_ "embed"
)

//go:embed icon.png
var IconBytes []byte
