package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sunnya97/cosmos-kit/cmd/walletkit/cmd"
)

func main() {
	if err := cmd.Execute(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
