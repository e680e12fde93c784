// Package asciiart provides the KubeDrift logo for CLI output.
package asciiart

import (
	"fmt"
	"io"
)

// Logo is the block letter KubeDrift logo.
const Logo = ` _  __        _            ____         _   __  _
| |/ / _   _ | |__    ___ |  _ \  _ __ (_) / _|| |_
| ' / | | | || '_ \  / _ \| | | || '__|| || |_ | __|
| . \ | |_| || |_) ||  __/| |_| || |   | ||  _|| |_
|_|\_\ \__,_||_.__/  \___||____/ |_|   |_||_|   \__|`

// Tagline is the one-line description printed under the logo.
const Tagline = "Spot drift between your manifests and your cluster"

// PrintKubeDriftLogo writes the logo and tagline to the provided writer.
func PrintKubeDriftLogo(writer io.Writer) {
	fmt.Fprintln(writer, Logo)
	fmt.Fprintln(writer)
	fmt.Fprintln(writer, Tagline)
	fmt.Fprintln(writer)
}
