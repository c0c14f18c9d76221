package config

import (
	"fmt"
	"time"
)

// Mode is the execution mode selected once at startup. It is either Scheduled (one run per
// trigger message, relaying to a protected sink) or Local (timer loop, unauthenticated sink).
type Mode interface {
	fmt.Stringer

	// Endpoint is the relay sink URL.
	Endpoint() string

	// IdentityToken returns the audience for the identity token attached to relay requests,
	// or false if relay requests are sent without one.
	IdentityToken() (string, bool)
}

type Scheduled struct {
	RelayURL string
	Audience string
}

type Local struct {
	RelayURL string
	Interval time.Duration
}

func (m Scheduled) String() string {
	return ModeScheduled
}

func (m Scheduled) Endpoint() string {
	return m.RelayURL
}

func (m Scheduled) IdentityToken() (string, bool) {
	if m.Audience == "" {
		return m.RelayURL, true
	}

	return m.Audience, true
}

func (m Local) String() string {
	return ModeLocal
}

func (m Local) Endpoint() string {
	return m.RelayURL
}

func (m Local) IdentityToken() (string, bool) {
	return "", false
}
