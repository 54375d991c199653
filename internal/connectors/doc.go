// Package connectors holds the clients for remote document hosts.
// Each connector implements the RepositoryHost and FileTransport ports for
// one provider (currently GitHub).
package connectors
