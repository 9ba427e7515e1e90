//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the tableside project using Mage.
//
// Usage:
//
//	mage build          Compile tableside binary to bin/
//	mage test:all       Run every test
//	mage test:unit      Run package tests without the feature suites
//	mage test:features  Run the godog feature suites
//	mage test:race      Run every test with the race detector
//	mage test:golden    Regenerate golden files
//	mage vet            Run go vet
//	mage lint           Run go vet and golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install tableside to GOPATH/bin
//	mage stats          Print Go LOC for production and test code
package main
