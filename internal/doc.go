// Package internal provides the core functionality of the speclint linting
// tool.
//
// This package implements a linting engine for Ruby test suites that use
// factory_bot. It parses each file into an immutable syntax tree, applies
// the registered lint rules concurrently, and filters the resulting issues
// through speclint:disable suppression comments.
//
// Key components:
//
// Engine: The main linting engine that coordinates the linting process.
// It manages a collection of lint rules and applies them to the given source files.
//
// LintRule: An interface that defines the contract for all lint rules.
// Each lint rule must implement the Check method to analyze the code and return issues.
//
// Issue: Represents a single lint issue found in the code, including its
// location, description, and optional autocorrection span.
package internal
