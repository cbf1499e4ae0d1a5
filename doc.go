// Package clientkit is the client-side session toolkit for the CampusConnect
// mobile and kiosk applications.
//
// It owns the full authentication lifecycle against the CampusConnect
// identity service: email/password signup and login, Google sign-in through
// an external consent flow, credential persistence across restarts, and a
// subscribable session state machine the UI renders from.
//
// The facade assembles everything from environment variables:
//
//	manager, err := clientkit.New(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	unsubscribe := manager.Subscribe(func(s session.Session) {
//		render(s)
//	})
//	defer unsubscribe()
//
//	if err := manager.Restore(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// Applications that need finer control wire the pieces directly from
// pkg/session, pkg/identity, pkg/credstore and pkg/provider.
package clientkit
