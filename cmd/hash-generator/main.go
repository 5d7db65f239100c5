// Command hash-generator prints a bcrypt hash for each password given on
// the command line. Useful for seeding users directly in SQL fixtures.
package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s password [password...]\n", os.Args[0])
		os.Exit(1)
	}

	for _, password := range os.Args[1:] {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hashing %q: %v\n", password, err)
			os.Exit(1)
		}
		fmt.Printf("%s\t%s\n", password, hash)
	}
}
