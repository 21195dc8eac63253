// ABOUTME: Dependency container injected into the core services
// ABOUTME: Bundles the infrastructure contracts a service needs at construction

package interfaces

// Dependencies holds the external collaborators the core services are built
// with. Passed by value at construction; services pick the fields they use.
type Dependencies struct {
	// Cache holds extracted content snapshots between recrawls
	Cache Cache

	// HTTPClient fetches source pages
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger
}
