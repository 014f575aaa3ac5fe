package bulk

import "fmt"

// Properties is the property mapping of a single node, relationship or
// endpoint match.
type Properties = map[string]any

// PropertyProvider is implemented by typed objects that expose their full
// property mapping. It is consulted when an object is added as a node body.
type PropertyProvider interface {
	NodeProperties() Properties
}

// MatchProvider is implemented by typed objects that expose only their
// merge-key values. It is consulted first when an object is used as a
// relationship endpoint.
type MatchProvider interface {
	MatchProperties() Properties
}

// resolveProperties reduces a node record to its property mapping. Plain
// maps pass through; typed objects must implement PropertyProvider.
func resolveProperties(record any) (Properties, error) {
	switch r := record.(type) {
	case Properties:
		return r, nil
	case PropertyProvider:
		return r.NodeProperties(), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedRecord, record)
}

// resolveMatch reduces a relationship endpoint to its match mapping. Typed
// objects are tried as MatchProvider first and PropertyProvider second.
func resolveMatch(endpoint any) (Properties, error) {
	switch e := endpoint.(type) {
	case Properties:
		return e, nil
	case MatchProvider:
		return e.MatchProperties(), nil
	case PropertyProvider:
		return e.NodeProperties(), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedRecord, endpoint)
}
