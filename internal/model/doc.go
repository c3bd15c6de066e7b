// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model is the entry point that turns tracked nodes into a validated,
// lowered statistical model.
//
// # Core Concepts
//
//   - Build: discovers every node connected to the seeds, classifies and
//     partitions them, validates each component and lowers the result into
//     the caller's session. Any failure aborts the build; no partial Model
//     is ever returned.
//
//   - Model: the immutable artifact of one build. It keeps the discovered
//     nodes, their roles and components, the seeds, every node visible in
//     the registry (used for labels only) and the lowered executable.
//
// Why a separate model package?
//
// The builder and lowering packages are independent phases that know
// nothing about registries, options or presentation. This package wires
// them together, resolves the build options against the hardware and offers
// the read-only surface (summaries, diagrams) callers need afterwards.
package model
