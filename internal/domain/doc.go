// Package domain defines the core business entities and their invariants:
// users, the tasks they own, and the validation errors shared across layers.
package domain
