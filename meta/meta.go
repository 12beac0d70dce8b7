// meta/meta.go
package meta

// GAMES defines the number of self-play games per matchup.
const GAMES = 25

// RADIUS defines the default board radius for self-play.
const RADIUS = 4

// SEED defines the base seed for agent move choice.
const SEED = 1

// MAX_MOVES caps the actions played in one game. Covers a full board of the
// largest radius.
const MAX_MOVES = 200000

// WORKERS defines the number of games played concurrently.
const WORKERS = 8
