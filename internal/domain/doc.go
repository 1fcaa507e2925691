// Package domain holds the task manager entities, their validation rules and
// the Optional type used to tell absent JSON fields from explicit nulls.
package domain
