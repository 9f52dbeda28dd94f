// Package browser implements the engine's Connector, Session, and Actor
// interfaces on top of go-rod.
//
// A Connector launches (or attaches to) a Chromium instance, opens an
// incognito page on the target's front-door URL to inject the session, and
// verifies a post-login marker before handing the session to the
// orchestrator. The Actor exposes the primitive setup-page interactions:
// navigation with tolerant load heuristics, label-based clicks, input and
// checkbox writes, dropdown selection, toast and modal handling.
package browser
