// Package service provides the application-level services for task lists and
// tasks. Services own the business rules: ownership checks, status handling,
// assignment validation, and the assignment notification side effect. They
// depend on the store interfaces and never on the HTTP layer.
package service
