// Package ui is the interactive terminal player for a running mixtape daemon.
//
// Every piece of displayed state comes from the daemon's notification stream;
// key presses only issue RPCs. Several terminals can drive one daemon and stay
// in sync.
package ui
