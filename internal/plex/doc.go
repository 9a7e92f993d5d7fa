// Package plex talks to a self-hosted Plex-style media server whose music
// library holds audiobooks as albums.
//
// The client is read/merge only: it lists albums from a configured library
// section and optionally reports listening progress back through the timeline
// endpoint. Authentication flows and library search belong to the server's
// own tooling and are not implemented here. The LibrarySource interface keeps
// the pace and stats calculators independent of this package's lifecycle.
package plex
