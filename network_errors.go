package client

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// isNetworkUnreachable reports whether err means the server could not be
// reached at all: DNS resolution failures, refused or reset connections and
// unreachable hosts. Context cancellation, deadline exceeded and timeouts are
// not, since the request may simply not have been sent in time.
func isNetworkUnreachable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return false
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
