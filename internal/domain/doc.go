// Package domain defines the core business entities of the task manager:
// users, task lists, and tasks, together with their validation rules and
// the closed status/priority sets.
package domain
