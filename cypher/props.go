package cypher

// Property names a node property used to match a relationship endpoint.
// The Array marker signals that the stored property is an array and endpoint
// matching must test membership instead of equality.
type Property struct {
	Key   string
	Array bool
}

// Prop declares a plain endpoint property matched by equality.
func Prop(key string) Property {
	return Property{Key: key}
}

// ArrayProp declares an array endpoint property matched by containment.
func ArrayProp(key string) Property {
	return Property{Key: key, Array: true}
}

// Props declares a list of plain endpoint properties.
func Props(keys ...string) []Property {
	out := make([]Property, 0, len(keys))
	for _, k := range keys {
		out = append(out, Prop(k))
	}
	return out
}

// Keys returns the property names of ps in declaration order.
func Keys(ps []Property) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Key)
	}
	return out
}

func (p Property) String() string {
	return p.Key
}
