package ogm

import "errors"

var (
	// ErrModelExists is returned when registering a model under a name that
	// is already taken.
	ErrModelExists = errors.New("model already registered")

	// ErrModelNotFound is returned when a model name cannot be resolved.
	ErrModelNotFound = errors.New("model not registered")

	// ErrNotRegistered is returned when an operation needs registry lookups
	// but the model was never registered.
	ErrNotRegistered = errors.New("model is not attached to a registry")

	// ErrRelationshipNotFound is returned when a relationship name is not
	// declared on the model.
	ErrRelationshipNotFound = errors.New("relationship not declared on model")

	// ErrWrongRole is returned when an instance is bound to a relationship
	// under a role its model does not hold in the definition.
	ErrWrongRole = errors.New("role does not match relationship definition")

	// ErrInvalidOperator is returned for filter operators outside the
	// supported set.
	ErrInvalidOperator = errors.New("unsupported filter operator")

	// ErrNoTraversal is returned when a relationship filter is applied to a
	// query that does not traverse a relationship.
	ErrNoTraversal = errors.New("query does not traverse a relationship")
)
