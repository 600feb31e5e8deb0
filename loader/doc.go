// Package loader provides the document-loading collaborators the
// expansion core depends on for dereferencing remote contexts. The core
// itself never performs network or filesystem I/O; it calls a Loader and
// waits.
//
// HTTP is the production loader. Static serves fixed documents and backs
// tests. Caching and Retrying wrap any loader with memoization and
// exponential backoff respectively:
//
//	l := loader.NewCaching(loader.NewRetrying(loader.NewHTTP()))
package loader
