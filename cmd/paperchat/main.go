// Command paperchat ingests PDF documents into a local vector store and
// answers questions grounded in their content.
package main

import (
	"fmt"
	"os"

	"github.com/paperchat/paperchat/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
