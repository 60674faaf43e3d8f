// Package grpc exposes the standard gRPC health checking protocol for the
// debug service, so the same process can be probed by gRPC-aware load
// balancers and orchestrators.
package grpc
