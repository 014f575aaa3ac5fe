// Package ogm maps typed domain models onto the bulk loading containers.
//
// Models are registered explicitly on a Registry; each Model describes one
// node type (labels, merge keys, update policies) and the relationships it
// takes part in. Instances carry concrete property values and satisfy the
// bulk adapter interfaces, so they can be added to node and relationship
// sets directly. A small immutable query builder reads instances back.
package ogm
