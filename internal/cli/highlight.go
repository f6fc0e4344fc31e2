package cli

import (
	"fmt"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/mattn/go-isatty"
)

// printJSON writes src to stdout, syntax-highlighted when stdout is a
// terminal and plain when piped.
func printJSON(src string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Println(src)
		return nil
	}

	if err := quick.Highlight(os.Stdout, src, "json", "terminal256", "dracula"); err != nil {
		fmt.Println(src)
		return nil
	}
	fmt.Println()
	return nil
}
