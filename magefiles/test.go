//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test groups the test targets.
type Test mg.Namespace

// featurePattern selects the godog suites.
const featurePattern = "Features$"

// All runs every test.
func (Test) All() error {
	return sh.RunV(binGo, "test", "./...")
}

// Unit runs package tests and skips the feature suites.
func (Test) Unit() error {
	return sh.RunV(binGo, "test", "-skip", featurePattern, "./...")
}

// Features runs the godog feature suites.
func (Test) Features() error {
	return sh.RunV(binGo, "test", "-run", featurePattern, "./internal/...")
}

// Race runs every test with the race detector.
func (Test) Race() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Golden regenerates golden files for the session transcripts.
func (Test) Golden() error {
	return sh.RunV(binGo, "test", "./internal/session/...", "-update")
}
