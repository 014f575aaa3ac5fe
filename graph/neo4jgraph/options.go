package neo4jgraph

import "github.com/neo4j/neo4j-go-driver/v5/neo4j"

// Option is a function type for configuring a Store.
type Option func(*options)

type options struct {
	connectionURL string
	username      string
	password      string
	driver        neo4j.DriverWithContext
}

func defaultOptions() *options {
	return &options{
		connectionURL: "bolt://localhost:7687",
		username:      "neo4j",
		password:      "password",
	}
}

// WithConnectionURL sets the Neo4j connection URL.
func WithConnectionURL(url string) Option {
	return func(o *options) {
		o.connectionURL = url
	}
}

// WithCredentials sets the authentication credentials.
func WithCredentials(username, password string) Option {
	return func(o *options) {
		o.username = username
		o.password = password
	}
}

// WithDriver uses an existing driver instead of creating one. The caller
// keeps ownership of the driver; Close becomes a no-op.
func WithDriver(driver neo4j.DriverWithContext) Option {
	return func(o *options) {
		o.driver = driver
	}
}
