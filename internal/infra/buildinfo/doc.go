// Package buildinfo identifies the running synckit build.
//
// The release pipeline stamps Version, Commit and BuildTime through
// linker -X flags; a plain `go build` leaves the defaults, except the
// commit, which init recovers from the toolchain's embedded VCS
// metadata. Get bundles the values with the running Go version into
// the Info shape the diagnostics endpoints serve.
//
//	go build -ldflags "-X github.com/yndnr/synckit-go/internal/infra/buildinfo.Version=v1.2.0"
//
// @design DS-0501
package buildinfo
