// Package guard contains the navigation-facing consumers of a session
// controller: a Navigator that vetoes pushes onto login screens and decides
// hardware back presses, and a Gate that authorizes screen mounts.
//
// Both fail open on their own wiring: a nil controller or a missing exiter
// never traps the user, it just disables the corresponding protection.
package guard
