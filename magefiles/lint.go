//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binLint = "golangci-lint"

// lintPackages are the module's own packages; magefiles build separately.
var lintPackages = []string{"./cmd/...", "./internal/...", "./pkg/..."}

// Vet runs go vet over the module packages.
func Vet() error {
	return sh.RunV(binGo, append([]string{"vet"}, lintPackages...)...)
}

// Lint runs go vet, then golangci-lint over the module packages.
func Lint() error {
	mg.Deps(Vet)
	return sh.RunV(binLint, append([]string{"run"}, lintPackages...)...)
}
