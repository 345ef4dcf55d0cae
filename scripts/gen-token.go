package main

import (
	"fmt"
	"os"

	"github.com/openclaw/libresync/internal/util"
)

// Generates a random API_TOKEN value.
func main() {
	token, err := util.GenerateToken()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
