//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Build mg.Namespace

const binary = "bin/caselist"

// Compiles the caselist binary into bin/.
func (Build) Binary() error {
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	fmt.Println("Building", binary, version)
	return sh.RunV("go", "build", "-ldflags", "-X main.version="+version, "-o", binary, "./cmd/caselist")
}

// Runs go mod tidy.
func (Build) Tidy() error {
	return sh.RunV("go", "mod", "tidy")
}
