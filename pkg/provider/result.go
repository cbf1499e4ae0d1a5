package provider

// ResultKind classifies the outcome of the external consent flow.
type ResultKind string

const (
	// ResultSuccess means the provider yielded an identity token.
	ResultSuccess ResultKind = "success"
	// ResultCancelled means the user dismissed the consent flow.
	ResultCancelled ResultKind = "cancelled"
	// ResultError means the flow failed before producing a token.
	ResultError ResultKind = "error"
)

// Result is the outcome the redirect-owning collaborator hands back to the
// session manager once the external flow resolves.
type Result struct {
	Kind          ResultKind
	IdentityToken string
	Err           error
}

// Success wraps an identity token in a successful result.
func Success(identityToken string) Result {
	return Result{Kind: ResultSuccess, IdentityToken: identityToken}
}

// Cancelled reports a user-dismissed consent flow.
func Cancelled() Result {
	return Result{Kind: ResultCancelled}
}

// Failure reports a consent flow that errored before yielding a token.
func Failure(err error) Result {
	return Result{Kind: ResultError, Err: err}
}
