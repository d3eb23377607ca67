// Package games holds design notes for game modes.
package games

// One player is secretly the impostor: everyone else is shown the same word,
// and the impostor must bluff their way through the discussion without it
// The host is the moderator: they pick the word each round, so they never play

// How to play
// - The host creates a room, picks the player count, and shares the 6-char code
// - Players join by code with a display name; seats fill in join order
// - Once the room is full, the host enters a word and starts the round
// - One seat is drawn at random as the impostor; the rest see the word
// - Players take turns describing the word without saying it outright
// - When the group votes, the host ends the round, revealing word and impostor
// - The host can start further rounds with new words, or hand off hosting

// Implementation details:
// - Rooms live entirely in memory; the host leaving destroys the room
// - Seat indices stay contiguous (0..n-1), renumbered on every change
// - The impostor draw is uniform over seats, per round, repeats allowed
// - Chat and WebRTC signaling are relayed per-room, untouched
