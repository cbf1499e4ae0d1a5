package session

// transitions is the set of legal status edges. Commit paths consult the
// table through canTransition before mutating the session, which is how a
// stale in-flight result gets discarded instead of overwriting newer state.
//
//	anonymous         -> authenticating (password op, restore)
//	anonymous         -> awaiting_provider (third-party consent started)
//	authenticating    -> authenticated | anonymous | error
//	awaiting_provider -> authenticating (provider yielded a token)
//	awaiting_provider -> anonymous (cancelled, failed, logout)
//	authenticated     -> authenticating | awaiting_provider (re-auth) | anonymous (logout)
//	error             -> authenticating | awaiting_provider (retry) | anonymous (logout)
var transitions = map[Status][]Status{
	StatusAnonymous:        {StatusAuthenticating, StatusAwaitingProvider},
	StatusAuthenticating:   {StatusAuthenticated, StatusAnonymous, StatusError},
	StatusAwaitingProvider: {StatusAuthenticating, StatusAnonymous},
	StatusAuthenticated:    {StatusAuthenticating, StatusAwaitingProvider, StatusAnonymous},
	StatusError:            {StatusAuthenticating, StatusAwaitingProvider, StatusAnonymous},
}

// canTransition reports whether moving from one status to another is legal.
func canTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// isBusy reports whether an authentication operation is logically in flight.
// Both the network-call window and the out-of-process consent round trip
// count; a second operation started in either window is rejected.
func isBusy(status Status) bool {
	return status == StatusAuthenticating || status == StatusAwaitingProvider
}
