// Package mocks provides hand-rolled test doubles for the store and service
// interfaces. Each mock exposes function fields to override behavior per
// test, with a map-backed default implementation that mirrors the real
// store's semantics.
package mocks
