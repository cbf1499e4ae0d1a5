// Package session owns the client's authentication state.
//
// Manager is the sole owner and mutator of the Session value: it mediates
// every authentication-affecting interaction between UI collaborators and
// the identity service, the credential store, and the third-party consent
// flow. UI code never talks to those collaborators directly; it invokes
// Manager operations and re-renders from the Session snapshots the manager
// publishes.
//
//	client := identity.New(identityCfg)
//	store, _ := credstore.NewFileStore(path)
//	manager := session.New(client, store,
//		session.WithConsentFlow(google),
//		session.WithLogger(log),
//	)
//
//	unsubscribe := manager.Subscribe(func(s session.Session) {
//		// re-render from s
//	})
//	defer unsubscribe()
//
//	manager.Restore(ctx)
//
// Every status change is validated against an explicit transition table;
// an in-flight result whose commit is no longer legal (a logout raced it)
// is discarded rather than overwriting newer state. At most one
// authentication operation
// is in flight at a time: operations issued while the session is
// authenticating, or while a third-party consent round trip is pending,
// are rejected with KindBusy before any network call is made.
package session
