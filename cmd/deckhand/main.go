// Command deckhand runs the component demo and its helper subcommands.
package main

import "github.com/berth-dev/deckhand/internal/cli"

func main() {
	cli.Execute()
}
