package game

// GameObserver is notified with the new snapshot after every state change.
// It is kept as a single-method function type rather than an interface
// with implementations scattered across the codebase, since the only thing
// any observer ever does is accept one GameState.
type GameObserver func(GameState)
