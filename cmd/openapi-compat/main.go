// Command openapi-compat checks that a revised OpenAPI document keeps every
// path, method and response code of a base document.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"simplesocial/internal/apidoc"
)

func main() {
	basePath := flag.String("base", "", "base OpenAPI yaml path")
	revisionPath := flag.String("revision", "", "revision OpenAPI yaml path (defaults to the embedded document)")
	flag.Parse()

	if strings.TrimSpace(*basePath) == "" {
		fmt.Fprintln(os.Stderr, "usage: openapi-compat -base <path> [-revision <path>]")
		os.Exit(2)
	}

	base, err := loadFile(*basePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load base spec: %v\n", err)
		os.Exit(1)
	}

	var revision apidoc.Spec
	if strings.TrimSpace(*revisionPath) == "" {
		revision, err = apidoc.Embedded()
	} else {
		revision, err = loadFile(*revisionPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load revision spec: %v\n", err)
		os.Exit(1)
	}

	issues := apidoc.Compare(base, revision)
	if len(issues) > 0 {
		fmt.Fprintln(os.Stderr, "backward compatibility check failed:")
		for _, issue := range issues {
			fmt.Fprintf(os.Stderr, "- %s\n", issue)
		}
		os.Exit(1)
	}

	fmt.Println("openapi compatibility check passed")
}

func loadFile(path string) (apidoc.Spec, error) {
	// #nosec G304: path comes from CLI flags in a dev tool
	raw, err := os.ReadFile(path)
	if err != nil {
		return apidoc.Spec{}, err
	}
	return apidoc.Load(raw)
}
