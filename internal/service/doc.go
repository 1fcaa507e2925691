// Package service contains the application use cases for the task manager.
// It orchestrates domain objects and the stores defined in internal/store.
//
// Key components:
//
// 1. Resource services:
//   - UserService, TaskStatusService, LabelService and TaskService each
//     implement the generic Resource interface (list, get, create, partial
//     update, delete)
//   - TaskService also supports filtered listing
//
// 2. Partial updates:
//   - Update payloads use domain.Optional so an absent field is left unchanged
//     while an explicit null clears a nullable field
//   - Updates read the current entity, merge the payload and write it back in
//     a single transaction
//
// 3. Error Handling:
//   - Validation failures surface as *domain.ValidationError
//   - Store sentinel errors (not found, duplicate, in use) are wrapped with
//     context and stay reachable through errors.Is
//
// Services depend on store interfaces, never on a specific database
// implementation.
package service
