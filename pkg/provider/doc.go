// Package provider coordinates the third-party identity consent flow.
//
// The flow is split in two because the consent round trip happens out of
// process (system browser, OS account picker): Begin produces the consent
// URL and registers a one-shot CSRF state; the collaborator owning the
// redirect hands the outcome back as a Result via Callback. SessionManager
// then exchanges the identity token with the CampusConnect backend.
//
//	authURL, err := google.Begin(ctx)
//	// ... user completes consent in the browser ...
//	result := google.Callback(state, idToken)
//	manager.CompleteThirdPartyAuth(ctx, result)
//
// States are single use and expire after StateTTL, so a replayed or forged
// redirect cannot complete the flow.
package provider
